package api

import (
	"github.com/labstack/echo/v4"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

// requestBinder decodes with the default binder and then runs struct
// validation, so handlers receive fully validated requests.
type requestBinder struct {
	base echo.DefaultBinder
}

func NewBinder() *requestBinder {
	return &requestBinder{}
}

func (b *requestBinder) Bind(i interface{}, c echo.Context) error {
	if err := b.base.Bind(i, c); err != nil {
		return constants.NewBadRequest("malformed request body")
	}
	return c.Validate(i)
}
