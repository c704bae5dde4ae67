package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/seattle-home-game/internal/entity"
	"github.com/pfrederiksen/seattle-home-game/internal/event"
	"github.com/pfrederiksen/seattle-home-game/internal/logger"
)

// HomeAssistantNotifier publishes entity states through the Home Assistant REST API
type HomeAssistantNotifier struct {
	client   *http.Client
	baseURL  string
	token    string
	registry entity.Registry
}

// haState is the body of POST /api/states/<entity_id>
type haState struct {
	State      string                 `json:"state"`
	Attributes map[string]interface{} `json:"attributes"`
}

// NewHomeAssistantNotifier creates a notifier for the instance at baseURL
// (e.g. "http://homeassistant.local:8123") authenticated with a long-lived token.
func NewHomeAssistantNotifier(baseURL, token string, timeout time.Duration, registry entity.Registry) (*HomeAssistantNotifier, error) {
	if baseURL == "" || token == "" {
		return nil, fmt.Errorf("missing Home Assistant URL or token")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HomeAssistantNotifier{
		client:   &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		registry: registry,
	}, nil
}

// Name implements Notifier
func (n *HomeAssistantNotifier) Name() string {
	return "home_assistant"
}

// Notify posts every sensor state for the snapshot. The refresh switch is
// owned by NotifyToggle. It keeps going after a failed entity and returns all
// failures joined.
func (n *HomeAssistantNotifier) Notify(ctx context.Context, snap *event.Snapshot) error {
	var errs []error
	for _, s := range n.registry.Sensors(snap) {
		if err := n.postState(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifyToggle posts the refresh switch state
func (n *HomeAssistantNotifier) NotifyToggle(ctx context.Context, on bool) error {
	return n.postState(ctx, n.registry.RefreshSwitch(on))
}

func (n *HomeAssistantNotifier) postState(ctx context.Context, s entity.State) error {
	body := haState{
		State:      s.State,
		Attributes: make(map[string]interface{}, len(s.Attributes)+3),
	}
	for k, v := range s.Attributes {
		body.Attributes[k] = v
	}
	body.Attributes["friendly_name"] = s.Name
	if s.Icon != "" {
		body.Attributes["icon"] = s.Icon
	}
	if s.DeviceClass != "" {
		body.Attributes["device_class"] = s.DeviceClass
	}
	if !s.Available {
		body.State = entity.StateUnavailable
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding state for %s: %w", s.EntityID, err)
	}

	url := fmt.Sprintf("%s/api/states/%s", n.baseURL, s.EntityID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", s.EntityID, err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting state for %s: %w", s.EntityID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("posting state for %s: unexpected status code: %d", s.EntityID, resp.StatusCode)
	}

	logger.Debug("Published entity state", logger.Fields{
		"entity_id": s.EntityID,
		"state":     body.State,
	})
	return nil
}
