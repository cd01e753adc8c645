package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

type requestValidator struct {
	validate *validator.Validate
}

func NewValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return constants.NewBadRequest(err.Error())
	}
	return nil
}
