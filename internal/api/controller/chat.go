package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

func (c *Controller) Chat(ctx echo.Context) error {
	req := new(domain.ChatRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	resp, ok := c.chatService.Reply(ctx.Request().Context(), req)
	if !ok {
		return ctx.JSON(http.StatusServiceUnavailable, resp)
	}

	return ctx.JSON(http.StatusOK, resp)
}
