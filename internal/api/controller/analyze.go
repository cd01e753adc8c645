package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
)

func (c *Controller) Analyze(ctx echo.Context) error {
	req := new(domain.AnalysisRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	result, err := c.analysisService.AnalyzeForUser(ctx.Request().Context(), userID(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}

func (c *Controller) History(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	items, err := c.analysisService.ListHistory(ctx.Request().Context(), userID(ctx), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{"scans": items})
}
