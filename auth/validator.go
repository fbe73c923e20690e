package auth

import (
	"fmt"
	"strings"

	"komunikator/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoginRequest only checks shape; password rules belong to the provider.
type LoginRequest struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=72"`
}

func ValidateLogin(req LoginRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCredentials, err)
	}
	return nil
}
