package token

import "fmt"

// Reason classifies why a token failed validation.
type Reason int

const (
	ReasonExpired Reason = iota
	ReasonMalformed
	ReasonBadSignature
	ReasonWrongIssuer
	ReasonWrongType
	ReasonRevoked
)

func (r Reason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonMalformed:
		return "malformed"
	case ReasonBadSignature:
		return "bad signature"
	case ReasonWrongIssuer:
		return "wrong issuer"
	case ReasonWrongType:
		return "wrong token type"
	case ReasonRevoked:
		return "revoked or not found"
	default:
		return "invalid"
	}
}

// TokenError is returned for every validation failure.
type TokenError struct {
	Reason Reason
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("token %s", e.Reason)
}

func (e *TokenError) Unwrap() error { return e.Err }
