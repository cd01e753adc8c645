package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

type issueKeyRequest struct {
	Plan  domain.APIPlan `json:"plan"`
	Label string         `json:"label" validate:"max=80"`
}

func (c *Controller) IssueKey(ctx echo.Context) error {
	req := new(issueKeyRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	record, err := c.keysService.Issue(ctx.Request().Context(), req.Plan, req.Label)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"message": "API key created",
		"key":     record,
	})
}

func (c *Controller) ListKeys(ctx echo.Context) error {
	listings, err := c.keysService.List(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{"keys": listings})
}
