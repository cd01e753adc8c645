package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/constants"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ratelimit"
)

type v1Meta struct {
	APIVersion         string         `json:"apiVersion"`
	Plan               domain.APIPlan `json:"plan"`
	RemainingPerMinute int            `json:"remainingPerMinute"`
}

func apiClient(ctx echo.Context) *domain.APIKeyRecord {
	record, _ := ctx.Get(constants.CtxKeyAPIClient).(*domain.APIKeyRecord)
	return record
}

// consumeLimit charges one request against the key's per-minute window.
// keySuffix separates sub-resource buckets (":plan") from the main one.
func (c *Controller) consumeLimit(ctx echo.Context, keySuffix string) (*domain.APIKeyRecord, ratelimit.Result, error) {
	record := apiClient(ctx)
	if record == nil {
		return nil, ratelimit.Result{}, constants.ErrMissingAPIKey
	}

	res, err := c.limiter.Consume(ctx.Request().Context(), record.KeyID+keySuffix, record.RequestLimitPerMinute)
	if err != nil {
		return nil, ratelimit.Result{}, fmt.Errorf("ratelimit.Consume: %w", err)
	}
	return record, res, nil
}

func rateLimited(ctx echo.Context, res ratelimit.Result) error {
	return ctx.JSON(http.StatusTooManyRequests, map[string]interface{}{
		"error":         "rate limit exceeded",
		"retryAfterSec": res.RetryAfterSec,
	})
}

func setRateHeaders(ctx echo.Context, record *domain.APIKeyRecord, res ratelimit.Result) {
	ctx.Response().Header().Set("x-rate-limit-remaining", strconv.Itoa(res.Remaining))
	ctx.Response().Header().Set("x-api-plan", string(record.Plan))
}

// AnalyzeV1 is the key-authenticated analysis endpoint. No user quota
// applies; the per-minute window is the only gate.
func (c *Controller) AnalyzeV1(ctx echo.Context) error {
	record, rate, err := c.consumeLimit(ctx, "")
	if err != nil {
		return err
	}
	if !rate.OK {
		return rateLimited(ctx, rate)
	}

	req := new(domain.AnalysisRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	result, err := c.analysisService.Analyze(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	setRateHeaders(ctx, record, rate)

	return ctx.JSON(http.StatusOK, struct {
		*domain.AnalysisResult
		Meta v1Meta `json:"meta"`
	}{
		AnalysisResult: result,
		Meta:           v1Meta{APIVersion: "v1", Plan: record.Plan, RemainingPerMinute: rate.Remaining},
	})
}

// PlanV1 charges a separate sub-resource bucket so plan generation cannot
// starve analysis calls on the same key.
func (c *Controller) PlanV1(ctx echo.Context) error {
	record, rate, err := c.consumeLimit(ctx, ":plan")
	if err != nil {
		return err
	}
	if !rate.OK {
		return rateLimited(ctx, rate)
	}

	req := new(domain.PlanRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	planResp := c.planService.Generate(ctx.Request().Context(), req)

	setRateHeaders(ctx, record, rate)

	return ctx.JSON(http.StatusOK, struct {
		*domain.PlanResponse
		Meta v1Meta `json:"meta"`
	}{
		PlanResponse: planResp,
		Meta:         v1Meta{APIVersion: "v1", Plan: record.Plan, RemainingPerMinute: rate.Remaining},
	})
}
