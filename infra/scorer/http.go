// Package scorer provides the external scoring collaborator used by the
// learned search strategy.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/evroute/core/logger"
	"github.com/kilianp07/evroute/core/model"
	infralogger "github.com/kilianp07/evroute/infra/logger"
)

// Config defines the remote scoring endpoint.
type Config struct {
	// Endpoint is the URL of the scoring service. Empty disables the
	// learned strategy.
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

// HTTPScorer queries a remote model for remaining-cost estimates. Scores are
// advisory: the search falls back to its admissible bound when a request
// fails, so a broken endpoint degrades quality, not availability.
type HTTPScorer struct {
	endpoint string
	client   *http.Client
	log      logger.Logger
}

// NewHTTPScorer creates a scorer client for the configured endpoint.
func NewHTTPScorer(cfg Config) *HTTPScorer {
	cfg.SetDefaults()
	return &HTTPScorer{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:      infralogger.New("scorer"),
	}
}

type scoreRequest struct {
	From    model.Coordinate     `json:"from"`
	To      model.Coordinate     `json:"to"`
	Vehicle model.VehicleProfile `json:"vehicle"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

// Score posts the position pair to the endpoint and returns the estimated
// remaining cost.
func (s *HTTPScorer) Score(ctx context.Context, from, to model.Coordinate, vehicle model.VehicleProfile) (float64, error) {
	body, err := json.Marshal(scoreRequest{From: from, To: to, Vehicle: vehicle})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.log.Errorf("close score response: %v", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scorer returned status %d", resp.StatusCode)
	}
	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Score, nil
}
