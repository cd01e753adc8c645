package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

func (c *Controller) Signup(ctx echo.Context) error {
	req := new(domain.SignupRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	resp, err := c.authService.Signup(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	setAuthCookie(ctx, resp.AuthToken)

	return ctx.JSON(http.StatusCreated, resp)
}

func (c *Controller) Login(ctx echo.Context) error {
	req := new(domain.LoginRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	resp, err := c.authService.Login(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	setAuthCookie(ctx, resp.AuthToken)

	return ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) Me(ctx echo.Context) error {
	profile, err := c.authService.Profile(ctx.Request().Context(), userID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, profile)
}

func setAuthCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeyAuthToken,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func userID(ctx echo.Context) string {
	id, _ := ctx.Get(constants.CtxKeyUserID).(string)
	return id
}
