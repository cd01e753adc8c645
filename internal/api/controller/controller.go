package controller

import (
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ratelimit"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/store"
	"github.com/ElamanNis/ecoscanAI/internal/service/analysis"
	"github.com/ElamanNis/ecoscanAI/internal/service/auth"
	"github.com/ElamanNis/ecoscanAI/internal/service/billing"
	"github.com/ElamanNis/ecoscanAI/internal/service/chat"
	"github.com/ElamanNis/ecoscanAI/internal/service/keys"
	"github.com/ElamanNis/ecoscanAI/internal/service/plan"
)

type Controller struct {
	analysisService *analysis.Service
	authService     *auth.Service
	chatService     *chat.Service
	planService     *plan.Service
	keysService     *keys.Service
	billingService  *billing.Service
	store           store.Store
	limiter         ratelimit.Limiter
}

func NewController(
	analysisService *analysis.Service,
	authService *auth.Service,
	chatService *chat.Service,
	planService *plan.Service,
	keysService *keys.Service,
	billingService *billing.Service,
	st store.Store,
	limiter ratelimit.Limiter,
) *Controller {
	return &Controller{
		analysisService: analysisService,
		authService:     authService,
		chatService:     chatService,
		planService:     planService,
		keysService:     keysService,
		billingService:  billingService,
		store:           st,
		limiter:         limiter,
	}
}
