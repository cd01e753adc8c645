package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/ElamanNis/ecoscanAI/internal/api/controller"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/logger"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/providers"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ratelimit"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store"
	"github.com/ElamanNis/ecoscanAI/internal/service/analysis"
	"github.com/ElamanNis/ecoscanAI/internal/service/auth"
	"github.com/ElamanNis/ecoscanAI/internal/service/billing"
	"github.com/ElamanNis/ecoscanAI/internal/service/chat"
	"github.com/ElamanNis/ecoscanAI/internal/service/keys"
	"github.com/ElamanNis/ecoscanAI/internal/service/plan"
)

type APIService struct {
	router      *echo.Echo
	keysService *keys.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(st store.Store, limiter ratelimit.Limiter, prov *providers.Set, aiClient *ai.Client) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.HTTPErrorHandler = httpErrorHandler

	corsOrigin := viper.GetString(constants.ViperCORSOrigin)
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders:     []string{"Content-Type", "Authorization", constants.HeaderAdminToken},
		AllowCredentials: true,
	}))

	svc.keysService = keys.NewService(st)

	cntrl := controller.NewController(
		analysis.NewService(st, prov, aiClient),
		auth.NewService(st),
		chat.NewService(aiClient),
		plan.NewService(aiClient),
		svc.keysService,
		billing.NewService(st),
		st,
		limiter,
	)

	api := svc.router.Group("/api")
	api.GET("/health", cntrl.Health)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", cntrl.Signup)
	authGroup.POST("/login", cntrl.Login)

	api.POST("/analyze", cntrl.Analyze, svc.AuthMiddleware)
	api.GET("/history", cntrl.History, svc.AuthMiddleware)
	api.GET("/me", cntrl.Me, svc.AuthMiddleware)
	api.POST("/chat", cntrl.Chat, svc.AuthMiddleware)

	api.POST("/billing/webhook", cntrl.BillingWebhook)

	v1 := api.Group("/v1")
	v1.GET("/health", cntrl.HealthV1)
	v1.POST("/analyze", cntrl.AnalyzeV1, svc.APIKeyMiddleware)
	v1.POST("/plan", cntrl.PlanV1, svc.APIKeyMiddleware)
	v1.GET("/keys", cntrl.ListKeys, svc.AdminMiddleware)
	v1.POST("/keys", cntrl.IssueKey, svc.AdminMiddleware)

	return svc, nil
}
