package controller

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/service/billing"
)

const headerWebhookSignature = "x-webhook-signature"

func (c *Controller) BillingWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return constants.NewBadRequest("unreadable body")
	}

	if err := billing.VerifySignature(body, ctx.Request().Header.Get(headerWebhookSignature)); err != nil {
		return err
	}

	if err := c.billingService.HandleEvent(ctx.Request().Context(), body); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"ok": true})
}
