package api

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/utils"
)

// AuthMiddleware accepts the session JWT from the auth cookie or a bearer
// header and stores the user id on the request context.
func (svc *APIService) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw := ""
		if cookie, err := ctx.Cookie(constants.CookieKeyAuthToken); err == nil {
			raw = cookie.Value
		}
		if raw == "" {
			raw = bearerToken(ctx)
		}
		if raw == "" {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(raw)
		if err != nil {
			return err
		}

		ctx.Set(constants.CtxKeyUserID, token.UserID)

		return next(ctx)
	}
}

// APIKeyMiddleware authorizes the public surface: the bearer value is a raw
// API key whose record lands on the context for rate limiting.
func (svc *APIService) APIKeyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		record, err := svc.keysService.Resolve(ctx.Request().Context(), bearerToken(ctx))
		if err != nil {
			return err
		}

		ctx.Set(constants.CtxKeyAPIClient, record)

		return next(ctx)
	}
}

// AdminMiddleware compares the admin header against the configured token.
// An unset token rejects everything instead of opening the surface.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		configured := viper.GetString(constants.ViperAdminToken)
		provided := ctx.Request().Header.Get(constants.HeaderAdminToken)
		if configured == "" || provided == "" {
			return constants.ErrAdminForbidden
		}
		if subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) != 1 {
			return constants.ErrAdminForbidden
		}

		return next(ctx)
	}
}

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
