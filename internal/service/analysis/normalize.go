package analysis

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/ElamanNis/ecoscanAI/internal/domain"
	"github.com/ElamanNis/ecoscanAI/internal/pkg/ai"
)

// NormalizeAdvisory coerces whatever the LLM returned into a fully-populated
// advisory. Pure function: same input, same output, never panics, never
// leaves a field unset where the schema expects a default.
func NormalizeAdvisory(res ai.JSONResult) domain.AIAdvisory {
	obj := res.Data
	if obj == nil {
		obj = map[string]interface{}{}
	}

	headlineDefault := "AI unavailable"
	model := "none"
	if res.OK {
		headlineDefault = "AI report"
		model = res.Provider
	}

	advisory := domain.AIAdvisory{
		Available:             res.OK,
		Model:                 model,
		Headline:              asText(obj["headline"], headlineDefault),
		Summary:               asText(obj["summary"], ""),
		Insights:              asStringArray(obj["insights"]),
		Recommendations:       asRecommendations(obj["recommendations"]),
		AgriAdvisory:          asAgriAdvisory(obj["agriAdvisory"]),
		ClimateContext:        asText(obj["climateContext"], ""),
		Forecast7dSummary:     asText(obj["forecast7dSummary"], ""),
		WaterResourcesSummary: asText(obj["waterResourcesSummary"], ""),
	}

	if !res.OK {
		advisory.Error = res.Err
		if advisory.Error == "" {
			advisory.Error = "AI unavailable"
		}
	}

	return advisory
}

// asText coerces a decoded JSON value to a string: strings pass through,
// numbers and booleans are formatted, composites are re-marshalled as a last
// resort.
func asText(v interface{}, fallback string) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return fallback
	default:
		raw, err := sonic.Marshal(t)
		if err != nil {
			return fallback
		}
		return string(raw)
	}
}

// asStringArray maps array entries through asText, dropping empties. A bare
// non-empty string becomes a one-element list.
func asStringArray(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := asText(item, ""); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

var allowedPriorities = map[string]bool{"critical": true, "high": true, "medium": true, "low": true}

func asRecommendations(v interface{}) []domain.Recommendation {
	items, ok := v.([]interface{})
	if !ok {
		return []domain.Recommendation{}
	}

	out := make([]domain.Recommendation, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]interface{})
		priority := strings.ToLower(asText(obj["priority"], "medium"))
		if !allowedPriorities[priority] {
			priority = "medium"
		}
		out = append(out, domain.Recommendation{
			Priority:  priority,
			Category:  asText(obj["category"], "general"),
			Action:    asText(obj["action"], ""),
			Timeframe: asText(obj["timeframe"], "n/a"),
		})
	}
	return out
}

func asAgriAdvisory(v interface{}) *domain.AgriAdvisory {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}

	irrigation, _ := obj["irrigationNeeded"].(bool)
	return &domain.AgriAdvisory{
		SoilCondition:    asText(obj["soilCondition"], ""),
		IrrigationNeeded: irrigation,
		IrrigationAmount: asText(obj["irrigationAmount"], "n/a"),
		BestCrops:        asStringArray(obj["bestCrops"]),
		AvoidCrops:       asStringArray(obj["avoidCrops"]),
		PlantingWindow:   asText(obj["plantingWindow"], "n/a"),
		HarvestOutlook:   asText(obj["harvestOutlook"], "n/a"),
		FertilizerAdvice: asText(obj["fertilizerAdvice"], "n/a"),
		PestRisk:         asText(obj["pestRisk"], "n/a"),
	}
}
