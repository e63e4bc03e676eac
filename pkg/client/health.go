package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// ServiceHealth is the result of one service health check.
type ServiceHealth struct {
	Service Service `json:"service"`
	URL     string  `json:"url"`
	Status  string  `json:"status"`
	Healthy bool    `json:"healthy"`
	Error   string  `json:"error,omitempty"`
}

// Health checks every service concurrently. A down service is reported in
// its entry, not as an error; results keep the order of Services.
func (g *Gateway) Health(ctx context.Context) []ServiceHealth {
	results := make([]ServiceHealth, len(Services))
	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range Services {
		eg.Go(func() error {
			results[i] = g.checkHealth(ctx, s)
			return nil
		})
	}
	eg.Wait() //nolint:errcheck // checks never return errors
	return results
}

func (g *Gateway) checkHealth(ctx context.Context, s Service) ServiceHealth {
	h := ServiceHealth{Service: s, URL: g.endpoints.Health(s)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		h.Error = err.Error()
		return h
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		h.Error = fmt.Sprintf("cannot connect: %v", err)
		return h
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	var body struct {
		Status string `json:"status"`
	}
	if resp.StatusCode != http.StatusOK {
		h.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return h
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		h.Error = fmt.Sprintf("invalid response: %v", err)
		return h
	}
	h.Status = body.Status
	h.Healthy = body.Status == "healthy"
	return h
}

// AllHealthy reports whether every check succeeded.
func AllHealthy(results []ServiceHealth) bool {
	for _, r := range results {
		if !r.Healthy {
			return false
		}
	}
	return true
}
