package providers

import (
	"context"
	"fmt"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
)

// Forecast is the Open-Meteo forecast response: current conditions plus a
// 7-day daily block. Pointer fields distinguish "absent" from zero.
type Forecast struct {
	Timezone string          `json:"timezone"`
	Current  ForecastCurrent `json:"current"`
	Daily struct {
		Time                        []string   `json:"time"`
		TemperatureMax              []*float64 `json:"temperature_2m_max"`
		TemperatureMin              []*float64 `json:"temperature_2m_min"`
		PrecipitationSum            []*float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		ET0                         []*float64 `json:"et0_fao_evapotranspiration"`
		SoilMoistureMean            []*float64 `json:"soil_moisture_0_to_10cm_mean"`
		SunshineDuration            []*float64 `json:"sunshine_duration"`
		WindSpeedMax                []*float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

type ForecastCurrent struct {
	Temperature        *float64 `json:"temperature_2m"`
	RelativeHumidity   *float64 `json:"relative_humidity_2m"`
	WindSpeed          *float64 `json:"wind_speed_10m"`
	WindDirection      *float64 `json:"wind_direction_10m"`
	Precipitation      *float64 `json:"precipitation"`
	WeatherCode        *float64 `json:"weather_code"`
	SurfacePressure    *float64 `json:"surface_pressure"`
	CloudCover         *float64 `json:"cloud_cover"`
	SoilMoisture0To1cm *float64 `json:"soil_moisture_0_to_1cm"`
	SoilTemperature0cm *float64 `json:"soil_temperature_0cm"`
}

type ForecastClient struct {
	BaseURL string
}

func (c *ForecastClient) Fetch(ctx context.Context, lat, lon float64) httpx.TimedResult[Forecast] {
	url := fmt.Sprintf(
		"%s/v1/forecast?latitude=%f&longitude=%f&current=temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,precipitation,weather_code,surface_pressure,cloud_cover,soil_moisture_0_to_1cm,soil_temperature_0cm&daily=temperature_2m_max,temperature_2m_min,precipitation_sum,et0_fao_evapotranspiration,precipitation_probability_max,wind_speed_10m_max,soil_moisture_0_to_10cm_mean,sunshine_duration&forecast_days=7&timezone=auto&models=best_match",
		c.BaseURL, lat, lon,
	)
	return httpx.Get[Forecast](ctx, url)
}

// Archive is the historical counterpart. The engine only records its
// success/failure today; the daily block is decoded for completeness.
type Archive struct {
	Daily struct {
		Time                 []string   `json:"time"`
		TemperatureMean      []*float64 `json:"temperature_2m_mean"`
		PrecipitationSum     []*float64 `json:"precipitation_sum"`
		ET0                  []*float64 `json:"et0_fao_evapotranspiration"`
		WindSpeedMax         []*float64 `json:"wind_speed_10m_max"`
		ShortwaveRadiationSum []*float64 `json:"shortwave_radiation_sum"`
	} `json:"daily"`
}

type ArchiveClient struct {
	BaseURL string
}

func (c *ArchiveClient) Fetch(ctx context.Context, lat, lon float64, startISO, endISO string) httpx.TimedResult[Archive] {
	url := fmt.Sprintf(
		"%s/v1/archive?latitude=%f&longitude=%f&start_date=%s&end_date=%s&daily=temperature_2m_mean,precipitation_sum,et0_fao_evapotranspiration,wind_speed_10m_max,shortwave_radiation_sum&timezone=auto",
		c.BaseURL, lat, lon, startISO, endISO,
	)
	return httpx.Get[Archive](ctx, url)
}
