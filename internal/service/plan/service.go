// Package plan turns a finished analysis into a 3/6/12-month action plan.
// The LLM drafts the plan; a deterministic fallback takes over whenever the
// model is unavailable or returns an unusable shape.
package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
)

type Service struct {
	ai *ai.Client
}

func NewService(aiClient *ai.Client) *Service {
	return &Service{ai: aiClient}
}

// normalizeMonths snaps the horizon to one of the supported values.
func normalizeMonths(months int) int {
	switch months {
	case 3, 6, 12:
		return months
	default:
		return 6
	}
}

// riskToLevel grades the starting risk from NDVI and the observed change.
func riskToLevel(ndvi, changePercent float64) domain.RiskLevel {
	switch {
	case ndvi < 0.2 || changePercent < -12:
		return domain.RiskCritical
	case ndvi < 0.35 || changePercent < -6:
		return domain.RiskHigh
	case ndvi < 0.5 || changePercent < -2:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

// nextMonths labels the upcoming count months starting with the next one,
// formatted "January 2006".
func nextMonths(now time.Time, count int) []string {
	months := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		d := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		months = append(months, d.Format("January 2006"))
	}
	return months
}

var actionsByRisk = map[domain.RiskLevel][]string{
	domain.RiskLow: {
		"Keep current irrigation schedule",
		"Continue monthly NDVI monitoring",
		"Optimize fertilizer timing based on rain forecast",
	},
	domain.RiskModerate: {
		"Increase field scouting frequency",
		"Apply variable-rate nutrients in stressed zones",
		"Review irrigation uniformity with moisture checks",
	},
	domain.RiskHigh: {
		"Start urgent stress-mitigation irrigation",
		"Deploy anti-erosion practices on exposed areas",
		"Prioritize re-vegetation in low-NDVI zones",
	},
	domain.RiskCritical: {
		"Activate emergency drought response",
		"Stop intensive operations on degraded parcels",
		"Run weekly satellite reassessment and field sampling",
	},
}

// fallbackPlan builds the plan without any model involvement. Later months
// relax toward Moderate unless the starting risk is Critical.
func fallbackPlan(analysis *domain.AnalysisResult, months int, goal string, now time.Time) *domain.PlanResponse {
	baseRisk := riskToLevel(analysis.NDVI, analysis.ChangePercent)
	objective := goal
	if objective == "" {
		objective = "Stabilize vegetation and increase soil productivity"
	}

	labels := nextMonths(now, months)
	plans := make([]domain.MonthlyActionPlan, 0, months)
	for i, month := range labels {
		risk := baseRisk
		if i > months/2 && baseRisk != domain.RiskCritical {
			risk = domain.RiskModerate
		}

		item := domain.MonthlyActionPlan{
			Month:     month,
			Objective: "Consolidate improvements and reduce risk exposure",
			Actions:   actionsByRisk[risk][:3],
			KPI:       "Stable NDVI trend and lower high-risk area share",
			RiskLevel: risk,
		}
		if i == 0 {
			item.Objective = objective
			item.KPI = "NDVI +0.02 and no additional vegetation loss"
		}
		plans = append(plans, item)
	}

	return &domain.PlanResponse{
		Region:        analysis.Region,
		GeneratedAt:   now,
		HorizonMonths: months,
		Summary: fmt.Sprintf("%d-month plan generated for %s. Focus: %s. Current NDVI is %.3f (%s).",
			months, analysis.Region, objective, analysis.NDVI, analysis.NDVICategory),
		Plans: plans,
	}
}

func alertMessages(alerts []domain.Alert) string {
	if len(alerts) == 0 {
		return "none"
	}
	msgs := make([]string, 0, len(alerts))
	for _, a := range alerts {
		msgs = append(msgs, a.Message)
	}
	return strings.Join(msgs, "; ")
}

func (s *Service) Generate(ctx context.Context, req *domain.PlanRequest) *domain.PlanResponse {
	analysis := req.Analysis
	months := normalizeMonths(req.Months)
	goal := strings.TrimSpace(req.Goal)
	now := time.Now().UTC()

	promptGoal := goal
	if promptGoal == "" {
		promptGoal = "increase resilience and crop productivity"
	}

	prompt := fmt.Sprintf(`You are an agronomy and satellite-analytics planner.
Create a practical %d-month action plan based on this analysis:
- Region: %s
- NDVI: %v (%s)
- Change: %v%%
- Land use: forest %d%%, agriculture %d%%, urban %d%%, water %d%%, bare %d%%
- Alerts: %s
- User goal: %s

Respond ONLY valid JSON:
{
  "summary":"text",
  "plans":[
    {
      "month":"Month YYYY",
      "objective":"text",
      "actions":["a","b","c"],
      "kpi":"text",
      "riskLevel":"Low|Moderate|High|Critical"
    }
  ]
}
Return exactly %d plan items.`,
		months, analysis.Region, analysis.NDVI, analysis.NDVICategory, analysis.ChangePercent,
		analysis.LandUse.Forest, analysis.LandUse.Agriculture, analysis.LandUse.Urban,
		analysis.LandUse.Water, analysis.LandUse.Bare,
		alertMessages(analysis.Alerts), promptGoal, months)

	res := s.ai.GenerateJSON(ctx, prompt)
	if !res.OK {
		return fallbackPlan(analysis, months, goal, now)
	}

	items, ok := res.Data["plans"].([]interface{})
	if !ok || len(items) == 0 {
		return fallbackPlan(analysis, months, goal, now)
	}

	// Month labels are always server-generated so the model cannot emit
	// stale years.
	labels := nextMonths(now, months)
	if len(items) > months {
		items = items[:months]
	}

	plans := make([]domain.MonthlyActionPlan, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]interface{})
		plans = append(plans, domain.MonthlyActionPlan{
			Month:     labels[i],
			Objective: textOr(obj["objective"], "Improve ecosystem stability"),
			Actions:   actionList(obj["actions"]),
			KPI:       textOr(obj["kpi"], "Improve NDVI and reduce stressed area"),
			RiskLevel: levelOr(obj["riskLevel"]),
		})
	}

	summary := textOr(res.Data["summary"], fmt.Sprintf("%d-month operational plan generated for %s.", months, analysis.Region))

	return &domain.PlanResponse{
		Region:        analysis.Region,
		GeneratedAt:   now,
		HorizonMonths: months,
		Summary:       summary,
		Plans:         plans,
	}
}

func textOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

func actionList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{"Monitor NDVI weekly", "Adjust irrigation", "Optimize nutrient usage"}
	}

	out := make([]string, 0, 3)
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return []string{"Monitor NDVI weekly", "Adjust irrigation", "Optimize nutrient usage"}
	}
	return out
}

func levelOr(v interface{}) domain.RiskLevel {
	if s, ok := v.(string); ok {
		switch level := domain.RiskLevel(s); level {
		case domain.RiskLow, domain.RiskModerate, domain.RiskHigh, domain.RiskCritical:
			return level
		}
	}
	return domain.RiskModerate
}
