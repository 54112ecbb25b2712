package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const oneSignalEndpoint = "https://onesignal.com/api/v1/notifications"

// Notifier broadcasts a push notification to all subscribed devices.
// Implementations must be safe for concurrent use.
type Notifier interface {
	NotifyAll(ctx context.Context, heading, message string) error
}

// Config holds OneSignal credentials and link target
type Config struct {
	AppID   string
	APIKey  string
	SiteURL string // URL the notification opens when tapped
}

// OneSignalNotifier sends notifications through the OneSignal REST API
type OneSignalNotifier struct {
	config Config
	client *http.Client
	logger zerolog.Logger
}

// NewOneSignalNotifier creates a OneSignal-backed Notifier
func NewOneSignalNotifier(config Config, logger zerolog.Logger) *OneSignalNotifier {
	return &OneSignalNotifier{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type notificationPayload struct {
	AppID            string            `json:"app_id"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	IncludedSegments []string          `json:"included_segments"`
	URL              string            `json:"url,omitempty"`
}

// NotifyAll pushes a notification to the All segment.
func (n *OneSignalNotifier) NotifyAll(ctx context.Context, heading, message string) error {
	if n.config.AppID == "" || n.config.APIKey == "" {
		n.logger.Warn().Msg("OneSignal credentials not configured - push notification skipped")
		return nil
	}

	payload := notificationPayload{
		AppID:            n.config.AppID,
		Headings:         map[string]string{"en": heading},
		Contents:         map[string]string{"en": message},
		IncludedSegments: []string{"All"},
		URL:              n.config.SiteURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, oneSignalEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+n.config.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call OneSignal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("OneSignal returned status %d: %s", resp.StatusCode, string(respBody))
	}

	n.logger.Debug().Str("heading", heading).Msg("Push notification accepted by OneSignal")
	return nil
}
