package domain

import "time"

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Location is the reverse-geocoded identity of the analyzed point.
type Location struct {
	DisplayName string   `json:"displayName"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Elevation   *float64 `json:"elevation"`
	Timezone    string   `json:"timezone"`
}

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// ClimateHistory carries the reduced historical series. Nil means the metric
// had no valid samples, never zero.
type ClimateHistory struct {
	Period      Period `json:"period"`
	Temperature struct {
		Avg     *float64 `json:"avg"`
		Max     *float64 `json:"max"`
		Min     *float64 `json:"min"`
		Anomaly *float64 `json:"anomaly"`
	} `json:"temperature"`
	Precipitation struct {
		Total      *float64 `json:"total"`
		DailyAvg   *float64 `json:"daily_avg"`
		AnomalyPct *float64 `json:"anomaly_pct"`
	} `json:"precipitation"`
	Solar struct {
		Avg  *float64 `json:"avg"`
		Unit string   `json:"unit"`
	} `json:"solar"`
	Humidity struct {
		Avg  *float64 `json:"avg"`
		Unit string   `json:"unit"`
	} `json:"humidity"`
	Wind struct {
		Avg  *float64 `json:"avg"`
		Max  *float64 `json:"max"`
		Unit string   `json:"unit"`
	} `json:"wind"`
	DewPoint   *float64 `json:"dewPoint"`
	Pressure   *float64 `json:"pressure"`
	DataSource string   `json:"dataSource"`
	APISuccess bool     `json:"apiSuccess"`
}

type CurrentConditions struct {
	Temperature        *float64 `json:"temperature"`
	FeelsLike          *float64 `json:"feelsLike"`
	Humidity           *float64 `json:"humidity"`
	WindSpeed          *float64 `json:"windSpeed"`
	WindDirection      *float64 `json:"windDirection"`
	Pressure           *float64 `json:"pressure"`
	CloudCover         *float64 `json:"cloudCover"`
	WeatherCode        *float64 `json:"weatherCode"`
	WeatherDescription string   `json:"weatherDescription"`
	Precipitation      *float64 `json:"precipitation"`
	SoilMoisture       *float64 `json:"soilMoisture"`
	SoilTemp           *float64 `json:"soilTemp"`
	DataSource         string   `json:"dataSource"`
	APISuccess         bool     `json:"apiSuccess"`
}

type ForecastDay struct {
	Date              string   `json:"date"`
	TempMax           *float64 `json:"tempMax"`
	TempMin           *float64 `json:"tempMin"`
	PrecipSum         *float64 `json:"precipSum"`
	PrecipProbability *float64 `json:"precipProbability"`
	ET0               *float64 `json:"et0"`
	SoilMoisture      *float64 `json:"soilMoisture"`
	SunshineHours     *float64 `json:"sunshineHours"`
	WindMax           *float64 `json:"windMax"`
}

type Forecast struct {
	Days        []ForecastDay `json:"days"`
	WeeklyTotal struct {
		Precipitation float64  `json:"precipitation"`
		AvgTemp       *float64 `json:"avgTemp"`
		TotalET0      float64  `json:"totalET0"`
	} `json:"weeklyTotal"`
	DataSource string `json:"dataSource"`
	APISuccess bool   `json:"apiSuccess"`
}

type SatelliteScene struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	CloudCoverPct   *float64 `json:"cloudCoverPct"`
	OrbitDirection  string   `json:"orbitDirection"`
	ProcessingLevel string   `json:"processingLevel"`
	Mission         string   `json:"mission"`
}

type SatelliteCatalog struct {
	Scenes        []SatelliteScene `json:"scenes"`
	TotalScenes   int              `json:"totalScenes"`
	LatestDate    string           `json:"latestDate,omitempty"`
	AvgCloudCover *float64         `json:"avgCloudCover"`
	BestScene     string           `json:"bestScene,omitempty"`
	DataSource    string           `json:"dataSource"`
	APISuccess    bool             `json:"apiSuccess"`
}

type NDVIHealth struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ClimateIndices are algebraic proxies derived from weather inputs, not from
// spectral imagery. Every value is clamped and rounded at computation time.
type ClimateIndices struct {
	NDVI         float64    `json:"ndvi"`
	NDVIHealth   NDVIHealth `json:"ndviHealth"`
	EVI          float64    `json:"evi"`
	SAVI         float64    `json:"savi"`
	NDWI         float64    `json:"ndwi"`
	DroughtIndex float64    `json:"droughtIndex"`
	LSTProxy     float64    `json:"lstProxy"`
	CarbonProxy  float64    `json:"carbonProxy"`
	FireRisk     float64    `json:"fireRisk"`
	FloodRisk    float64    `json:"floodRisk"`
	Methodology  string     `json:"methodology"`
}

// LandUse is a placeholder breakdown: the values are fixed constants, only
// OSMDataAvailable reflects the live Overpass outcome.
type LandUse struct {
	Forest           int  `json:"forest"`
	Agriculture      int  `json:"agriculture"`
	Urban            int  `json:"urban"`
	Water            int  `json:"water"`
	Bare             int  `json:"bare"`
	Grassland        int  `json:"grassland"`
	Wetland          int  `json:"wetland"`
	OSMDataAvailable bool `json:"osmDataAvailable"`
}

type RiskFactor struct {
	Level  RiskLevel `json:"level"`
	Score  int       `json:"score"`
	Detail string    `json:"detail"`
}

type RiskAssessment struct {
	Overall struct {
		Level RiskLevel `json:"level"`
		Score int       `json:"score"`
	} `json:"overall"`
	Factors struct {
		Drought         RiskFactor `json:"drought"`
		Heat            RiskFactor `json:"heat"`
		Flood           RiskFactor `json:"flood"`
		Fire            RiskFactor `json:"fire"`
		Frost           RiskFactor `json:"frost"`
		Erosion         RiskFactor `json:"erosion"`
		WaterStress     RiskFactor `json:"waterStress"`
		SoilDegradation RiskFactor `json:"soilDegradation"`
	} `json:"factors"`
}

type Recommendation struct {
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	Timeframe string `json:"timeframe"`
}

type AgriAdvisory struct {
	SoilCondition    string   `json:"soilCondition"`
	IrrigationNeeded bool     `json:"irrigationNeeded"`
	IrrigationAmount string   `json:"irrigationAmount"`
	BestCrops        []string `json:"bestCrops"`
	AvoidCrops       []string `json:"avoidCrops"`
	PlantingWindow   string   `json:"plantingWindow"`
	HarvestOutlook   string   `json:"harvestOutlook"`
	FertilizerAdvice string   `json:"fertilizerAdvice"`
	PestRisk         string   `json:"pestRisk"`
}

// AIAdvisory is the normalized LLM output. Every field is populated with a
// default when the provider omits or mangles it.
type AIAdvisory struct {
	Available             bool             `json:"available"`
	Error                 string           `json:"error,omitempty"`
	Model                 string           `json:"model"`
	Headline              string           `json:"headline"`
	Summary               string           `json:"summary"`
	Insights              []string         `json:"insights"`
	Recommendations       []Recommendation `json:"recommendations"`
	AgriAdvisory          *AgriAdvisory    `json:"agriAdvisory"`
	ClimateContext        string           `json:"climateContext"`
	Forecast7dSummary     string           `json:"forecast7dSummary"`
	WaterResourcesSummary string           `json:"waterResourcesSummary"`
}

type SourceStatus struct {
	Success bool   `json:"success"`
	Latency int64  `json:"latency"`
	Error   string `json:"error,omitempty"`
}

type DataSources struct {
	NasaPower        SourceStatus `json:"nasaPower"`
	OpenMeteo        SourceStatus `json:"openMeteo"`
	OpenMeteoArchive SourceStatus `json:"openMeteoArchive"`
	CopernicusStac   SourceStatus `json:"copernicusStac"`
	OpenElevation    SourceStatus `json:"openElevation"`
	Nominatim        SourceStatus `json:"nominatim"`
	AIProvider       SourceStatus `json:"aiProvider"`
}

// FullReport is the detailed representation assembled once per analysis and
// never mutated afterwards.
type FullReport struct {
	ID           string            `json:"id"`
	Timestamp    time.Time         `json:"timestamp"`
	ProcessingMs int64             `json:"processingMs"`
	Location     Location          `json:"location"`
	Climate      ClimateHistory    `json:"climate"`
	Current      CurrentConditions `json:"current"`
	Forecast     Forecast          `json:"forecast"`
	Satellite    SatelliteCatalog  `json:"satellite"`
	Indices      ClimateIndices    `json:"indices"`
	LandUse      LandUse           `json:"landUse"`
	Risks        RiskAssessment    `json:"risks"`
	Gemini       AIAdvisory        `json:"gemini"`
	DataSources  DataSources       `json:"dataSources"`
	Confidence   int               `json:"confidence"`
}

type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type SpectralBand struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type LandUseSummary struct {
	Forest      int `json:"forest"`
	Agriculture int `json:"agriculture"`
	Urban       int `json:"urban"`
	Water       int `json:"water"`
	Bare        int `json:"bare"`
}

type AdditionalIndices struct {
	EVI  float64 `json:"evi"`
	SAVI float64 `json:"savi"`
	NDWI float64 `json:"ndwi"`
	BSI  float64 `json:"bsi"`
}

// SoilEstimate is a downstream-plan-friendly soil projection derived from the
// computed NDVI, not measured.
type SoilEstimate struct {
	Moisture      float64 `json:"moisture"`
	OrganicMatter float64 `json:"organicMatter"`
	PH            float64 `json:"ph"`
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	Salinity      float64 `json:"salinity"`
}

type ModelInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Accuracy int    `json:"accuracy"`
	Source   string `json:"source"`
}

type SceneRef struct {
	ID         string   `json:"id"`
	Datetime   string   `json:"datetime"`
	Collection string   `json:"collection"`
	CloudCover *float64 `json:"cloudCover,omitempty"`
	Platform   string   `json:"platform"`
}

type DataSourceInfo struct {
	Provider      string     `json:"provider"`
	UsedLiveData  bool       `json:"usedLiveData"`
	SceneCount    int        `json:"sceneCount"`
	AvgCloudCover *float64   `json:"avgCloudCover,omitempty"`
	LatestSceneAt string     `json:"latestSceneAt,omitempty"`
	FreshnessDays *int       `json:"freshnessDays,omitempty"`
	QualityScore  int        `json:"qualityScore"`
	Scenes        []SceneRef `json:"scenes"`
}

// AnalysisResult is the flattened summary view returned to clients; the full
// report rides along under "full".
type AnalysisResult struct {
	ID                    string            `json:"id"`
	Region                string            `json:"region"`
	Coordinates           Coordinates       `json:"coordinates"`
	Timestamp             time.Time         `json:"timestamp"`
	AnalysisType          string            `json:"analysisType"`
	Satellite             string            `json:"satellite"`
	NDVI                  float64           `json:"ndvi"`
	NDVICategory          string            `json:"ndviCategory"`
	LandUse               LandUseSummary    `json:"landUse"`
	ChangePercent         float64           `json:"changePercent"`
	Confidence            int               `json:"confidence"`
	ProcessingTime        float64           `json:"processingTime"`
	Alerts                []Alert           `json:"alerts"`
	SpectralBands         []SpectralBand    `json:"spectralBands"`
	ModelInfo             ModelInfo         `json:"modelInfo"`
	GeminiSummary         string            `json:"geminiSummary"`
	GeminiInsights        []string          `json:"geminiInsights"`
	GeminiRecommendations []string          `json:"geminiRecommendations"`
	RiskScore             int               `json:"riskScore"`
	RiskLevel             RiskLevel         `json:"riskLevel"`
	AdditionalIndices     AdditionalIndices `json:"additionalIndices"`
	Soil                  SoilEstimate      `json:"soil"`
	DataSource            DataSourceInfo    `json:"dataSource"`
	Full                  *FullReport       `json:"full"`
}
