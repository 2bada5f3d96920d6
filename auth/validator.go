package auth

import (
	"quickchat/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type SignupRequest struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=72"`
	Bio      string `validate:"required"`
}

// ValidateSignup mirrors the account creation rules of the product: every
// profile field is mandatory, the password only has a length constraint.
func ValidateSignup(req SignupRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.ErrMissingDetails
	}
	return nil
}
