package domain

import "time"

// ScanRecord is one persisted analysis, payload held as an opaque JSON blob.
type ScanRecord struct {
	ID           int64     `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	Region       string    `db:"region" json:"region"`
	NDVI         float64   `db:"ndvi" json:"ndvi"`
	NDVICategory string    `db:"ndvi_category" json:"ndviCategory"`
	AnalysisType string    `db:"analysis_type" json:"analysisType"`
	Payload      []byte    `db:"payload" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ScanListItem is the history view, payload excluded.
type ScanListItem struct {
	ID           int64     `db:"id" json:"id"`
	Region       string    `db:"region" json:"region"`
	NDVI         float64   `db:"ndvi" json:"ndvi"`
	NDVICategory string    `db:"ndvi_category" json:"ndviCategory"`
	AnalysisType string    `db:"analysis_type" json:"analysisType"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
