package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
)

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return zerr.With(zerr.With(zerr.Wrap(ErrInvalidConfig, verrs[0].Error()),
				"field", verrs[0].Namespace()), "rule", verrs[0].Tag())
		}
		return zerr.Wrap(ErrInvalidConfig, err.Error())
	}

	if err := c.Compat.Weights.Validate(); err != nil {
		return zerr.Wrap(ErrInvalidConfig, err.Error())
	}

	if c.IsProduction() {
		if c.Auth.JWTSecret == devJWTSecret || len(c.Auth.JWTSecret) < 32 {
			return zerr.With(zerr.Wrap(ErrInvalidConfig, "production requires a JWT secret of at least 32 characters"), "field", "auth.jwt_secret")
		}
		if c.Database.URL == devDatabaseURL {
			return zerr.With(zerr.Wrap(ErrInvalidConfig, "production requires DATABASE_URL"), "field", "database.url")
		}
	}
	return nil
}
