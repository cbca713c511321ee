package publisher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jgoulah/ecomonitor/internal/config"
)

// HAClient pushes sensor states to the Home Assistant REST API
type HAClient struct {
	rc           *resty.Client
	entityPrefix string
}

// HAState matches the body of POST /api/states/<entity_id>
type HAState struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// NewHAClient validates the config and builds a client
func NewHAClient(cfg config.HAConfig) (*HAClient, error) {
	if cfg.URL == "" {
		return nil, errors.New("Home Assistant URL is required when enabled")
	}
	if cfg.Token == "" {
		return nil, errors.New("Home Assistant token is required when enabled")
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetAuthToken(cfg.Token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &HAClient{rc: rc, entityPrefix: cfg.GetEntityPrefix()}, nil
}

// Publish sets one sensor per appliance total plus an insights sensor
func (c *HAClient) Publish(s Summary) error {
	timestamp := s.GeneratedAt.Format(time.RFC3339)

	for _, t := range s.Totals {
		entityID := fmt.Sprintf("%s_%s", c.entityPrefix, Slug(t.Appliance))
		state := HAState{
			State: fmt.Sprintf("%.2f", t.KWh),
			Attributes: map[string]any{
				"unit_of_measurement": "kWh",
				"device_class":        "energy",
				"friendly_name":       t.Appliance + " energy usage",
				"readings":            t.Readings,
				"last_analyzed":       timestamp,
			},
		}
		if err := c.setState(entityID, state); err != nil {
			return err
		}
	}

	return c.setState(c.entityPrefix+"_insights", HAState{
		State: fmt.Sprintf("%d", len(s.Insights)),
		Attributes: map[string]any{
			"friendly_name": "Energy insights",
			"insights":      s.Insights,
			"last_analyzed": timestamp,
		},
	})
}

func (c *HAClient) setState(entityID string, state HAState) error {
	resp, err := c.rc.R().
		SetBody(state).
		Post("/api/states/" + entityID)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error for %s: status %d, response: %s", entityID, resp.StatusCode(), resp.String())
	}

	return nil
}
