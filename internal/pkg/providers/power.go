package providers

import (
	"context"
	"fmt"

	"github.com/ElamanNis/ecoscanAI/internal/pkg/httpx"
)

// PowerDaily is the NASA POWER daily-point response. Parameter maps a metric
// name (T2M, PRECTOTCORR, ...) to date-keyed values; missing days carry the
// -999 sentinel the reducer filters out.
type PowerDaily struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

type PowerClient struct {
	BaseURL string
}

func (c *PowerClient) Daily(ctx context.Context, lat, lon float64, startCompact, endCompact string) httpx.TimedResult[PowerDaily] {
	url := fmt.Sprintf(
		"%s/api/temporal/daily/point?parameters=T2M,PRECTOTCORR,WS10M,RH2M,ALLSKY_SFC_SW_DWN,T2M_MAX,T2M_MIN,T2MDEW,PS&community=AG&longitude=%f&latitude=%f&start=%s&end=%s&format=JSON",
		c.BaseURL, lon, lat, startCompact, endCompact,
	)
	return httpx.Get[PowerDaily](ctx, url)
}
