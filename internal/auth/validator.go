package auth

import (
	"unicode"

	"roomchat/backend/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterInput is the validated shape of a registration request.
type RegisterInput struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8,max=72"`
	PasswordConfirm string `validate:"required"`
}

// ValidateRegister checks field formats, the password confirmation and
// password complexity. All failures are validation errors.
func ValidateRegister(in RegisterInput) error {
	if err := validate.Struct(in); err != nil {
		return apperrors.Validation("invalid email or password format")
	}
	if in.Password != in.PasswordConfirm {
		return apperrors.Validation("password confirmation does not match")
	}
	if !isPasswordComplex(in.Password) {
		return apperrors.Validation("password must contain upper, lower and numeric characters")
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var hasUpper, hasLower, hasNumber bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasNumber = true
		}
	}
	return hasUpper && hasLower && hasNumber
}
