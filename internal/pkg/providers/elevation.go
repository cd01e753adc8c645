package providers

import (
	"context"
	"fmt"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
)

type ElevationLookup struct {
	Results []struct {
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

type ElevationClient struct {
	BaseURL string
}

func (c *ElevationClient) Lookup(ctx context.Context, lat, lon float64) httpx.TimedResult[ElevationLookup] {
	url := fmt.Sprintf("%s/api/v1/lookup?locations=%f,%f", c.BaseURL, lat, lon)
	return httpx.Get[ElevationLookup](ctx, url)
}
