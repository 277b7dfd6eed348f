// Package token implements the token authority: issuing, validating,
// refreshing and revoking the signed tokens that carry caller identity.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind is the value of the "type" claim.
type Kind string

const (
	KindAccess       Kind = "ACCESS"
	KindRefresh      Kind = "REFRESH"
	KindReset        Kind = "RESET"
	KindVerification Kind = "VERIFICATION"
)

// MinSecretLen is the minimum accepted signing key length in bytes. Shorter
// keys are rejected at construction, not per call.
const MinSecretLen = 32

// Claims is the validated view of a token's claim set.
type Claims struct {
	Subject   string
	Kind      Kind
	Role      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Raw       jwt.MapClaims
}

// Authority signs and verifies tokens with a shared symmetric key. It is
// immutable after construction and safe for concurrent use; the only side
// effects are reads and writes against the optional revocation store.
type Authority struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      RevocationStore
}

// New builds an Authority. A nil store disables refresh-token revocation
// tracking: refresh tokens then validate on signature and claims alone.
func New(secret []byte, issuer string, accessTTL, refreshTTL time.Duration, store RevocationStore) (*Authority, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("token: signing key must be at least %d bytes, got %d", MinSecretLen, len(secret))
	}
	if issuer == "" {
		return nil, errors.New("token: issuer must not be empty")
	}
	return &Authority{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
	}, nil
}

// Issue signs a token of the given kind for subject. Extra claims are merged
// into the claim set; reserved claims (sub, iss, iat, exp, type, jti) cannot
// be overridden.
func (a *Authority) Issue(subject string, kind Kind, ttl time.Duration, extra map[string]any) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iss"] = a.issuer
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	claims["type"] = string(kind)
	claims["jti"] = uuid.New().String()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.secret)
}

// IssuePair issues an access+refresh token pair for subject. The refresh
// token's id is recorded in the revocation store (when configured) so it can
// be rotated and revoked later.
func (a *Authority) IssuePair(ctx context.Context, subject string, extra map[string]any) (access, refresh string, err error) {
	access, err = a.Issue(subject, KindAccess, a.accessTTL, extra)
	if err != nil {
		return "", "", err
	}
	refresh, err = a.Issue(subject, KindRefresh, a.refreshTTL, extra)
	if err != nil {
		return "", "", err
	}
	if a.store != nil {
		claims, vErr := a.Validate(refresh)
		if vErr != nil {
			return "", "", vErr
		}
		if err = a.store.Save(ctx, claims.TokenID, subject, a.refreshTTL); err != nil {
			return "", "", err
		}
	}
	return access, refresh, nil
}

// Validate verifies signature, expiry and issuer, returning the claim view.
// Failures are always *TokenError; validation is deterministic given the
// current time.
func (a *Authority) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &TokenError{Reason: ReasonMalformed, Err: errors.New("unexpected claims type")}
	}

	claims := &Claims{Raw: mapClaims}
	claims.Subject, _ = mapClaims["sub"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	claims.TokenID, _ = mapClaims["jti"].(string)
	if kind, ok := mapClaims["type"].(string); ok {
		claims.Kind = Kind(kind)
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// ValidateKind validates the token and additionally requires its "type"
// claim to match kind.
func (a *Authority) ValidateKind(tokenString string, kind Kind) (*Claims, error) {
	claims, err := a.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, &TokenError{
			Reason: ReasonWrongType,
			Err:    fmt.Errorf("expected %s token, got %s", kind, claims.Kind),
		}
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token and a
// rotated refresh token. With a revocation store configured, the presented
// token must still be on record (Redis TTL handles natural expiry); the old
// record is removed and the rotated token stored in its place.
func (a *Authority) Refresh(ctx context.Context, refreshToken string) (access, rotated string, err error) {
	claims, err := a.ValidateKind(refreshToken, KindRefresh)
	if err != nil {
		return "", "", err
	}

	if a.store != nil {
		found, err := a.store.Exists(ctx, claims.TokenID)
		if err != nil {
			return "", "", err
		}
		if !found {
			return "", "", &TokenError{Reason: ReasonRevoked}
		}
		if err := a.store.Delete(ctx, claims.TokenID); err != nil {
			return "", "", err
		}
	}

	extra := map[string]any{}
	if claims.Role != "" {
		extra["role"] = claims.Role
	}
	return a.IssuePair(ctx, claims.Subject, extra)
}

// Revoke removes a refresh token from the revocation store. Already-issued
// access tokens stay valid until natural expiry; short access TTLs are the
// mitigation.
func (a *Authority) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := a.ValidateKind(refreshToken, KindRefresh)
	if err != nil {
		return err
	}
	if a.store == nil {
		return nil
	}
	return a.store.Delete(ctx, claims.TokenID)
}

func classifyParseError(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Reason: ReasonExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return &TokenError{Reason: ReasonWrongIssuer, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &TokenError{Reason: ReasonBadSignature, Err: err}
	default:
		return &TokenError{Reason: ReasonMalformed, Err: err}
	}
}
