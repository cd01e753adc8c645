package domain

import "time"

type MonthlyActionPlan struct {
	Month     string    `json:"month"`
	Objective string    `json:"objective"`
	Actions   []string  `json:"actions"`
	KPI       string    `json:"kpi"`
	RiskLevel RiskLevel `json:"riskLevel"`
}

type PlanResponse struct {
	Region        string              `json:"region"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	HorizonMonths int                 `json:"horizonMonths"`
	Summary       string              `json:"summary"`
	Plans         []MonthlyActionPlan `json:"plans"`
}

type PlanRequest struct {
	Analysis *AnalysisResult `json:"analysis" validate:"required"`
	Months   int             `json:"months"`
	Goal     string          `json:"goal,omitempty" validate:"max=250"`
}
