package domain

// Coordinates is a resolved geographic point. Lat/lon must be finite and
// inside the usual ranges; validation happens at binding time for explicit
// input and again after geocoding.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type AnalysisRequest struct {
	Region       string       `json:"region" validate:"required,min=2"`
	Coordinates  *Coordinates `json:"coordinates,omitempty" validate:"omitempty"`
	AnalysisType string       `json:"analysisType" validate:"required,oneof=vegetation deforestation urban water agriculture fire soil carbon"`
	TimeRange    string       `json:"timeRange" validate:"required,oneof=7d 30d 90d 180d 365d"`
	Satellite    string       `json:"satellite" validate:"required,oneof=sentinel2 landsat8 sentinel1 modis"`
	Notes        string       `json:"notes,omitempty" validate:"max=500"`
}

type ChatRequest struct {
	Message string        `json:"message" validate:"required,min=1"`
	Context string        `json:"context"`
	History []ChatMessage `json:"history,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"error"`
	Code    int    `json:"code,omitempty"`
}
