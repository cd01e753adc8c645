package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
)

func configured(viperKey string) string {
	if viper.GetString(viperKey) != "" {
		return "configured"
	}
	return "missing"
}

func (c *Controller) dbStatus(ctx echo.Context) map[string]string {
	status := "ok"
	if err := c.store.Ping(ctx.Request().Context()); err != nil {
		status = "error"
	}
	return map[string]string{"provider": "postgres", "status": status}
}

func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "EcoScan AI",
		"version": "1.1.0",
		"api": map[string][]string{
			"internal": {"/api/analyze", "/api/chat", "/api/health"},
			"public":   {"/api/v1/analyze", "/api/v1/plan", "/api/v1/keys", "/api/v1/health"},
		},
		"ai": map[string]string{
			"groq":        configured(constants.ViperGroqAPIKey),
			"huggingface": configured(constants.ViperHFAPIKey),
		},
		"billing": map[string]string{
			"webhookSecret": configured(constants.ViperBillingWebhookSecret),
		},
		"db":        c.dbStatus(ctx),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (c *Controller) HealthV1(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "EcoScan AI Public API",
		"version":   "v1",
		"auth":      "Bearer API key",
		"endpoints": []string{"/api/v1/analyze", "/api/v1/plan", "/api/v1/keys", "/api/v1/health"},
		"ai": map[string]string{
			"groq":        configured(constants.ViperGroqAPIKey),
			"huggingface": configured(constants.ViperHFAPIKey),
		},
		"db":        c.dbStatus(ctx),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
