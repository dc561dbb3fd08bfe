package analytics

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/ports"
)

const captureTimeout = 5 * time.Second

type capturePayload struct {
	APIKey     string         `json:"api_key"`
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Properties map[string]any `json:"properties"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Client posts events to a capture endpoint in the background.
// Delivery failures are logged and otherwise ignored.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	distinctID string

	wg sync.WaitGroup
}

// New returns an HTTP capture client for baseURL, or a log-only sink when
// baseURL is empty. distinctID identifies this install; empty generates one.
func New(baseURL, apiKey, distinctID string) ports.Analytics {
	if baseURL == "" {
		return LogSink{}
	}
	if distinctID == "" {
		distinctID = uuid.NewString()
	}
	return &Client{
		httpClient: &http.Client{Timeout: captureTimeout},
		endpoint:   strings.TrimRight(baseURL, "/") + "/capture/",
		apiKey:     apiKey,
		distinctID: distinctID,
	}
}

// Capture sends event without blocking the caller
func (c *Client) Capture(event string, properties map[string]any) {
	payload := capturePayload{
		APIKey:     c.apiKey,
		Event:      event,
		DistinctID: c.distinctID,
		Properties: properties,
		Timestamp:  time.Now().UTC(),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.send(payload)
	}()
}

// Flush waits for in-flight events, up to timeout
func (c *Client) Flush(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.Debug().Msg("analytics flush timed out")
	}
}

func (c *Client) send(payload capturePayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Debug().Err(err).Str("event", payload.Event).Msg("analytics encode failed")
		return
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Debug().Err(err).Str("event", payload.Event).Msg("analytics capture failed")
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Debug().Int("statusCode", resp.StatusCode).Str("event", payload.Event).Msg("analytics capture rejected")
	}
}

// LogSink records events in the debug log only
type LogSink struct{}

func (LogSink) Capture(event string, properties map[string]any) {
	log.Debug().Str("event", event).Interface("properties", properties).Msg("analytics event")
}

var (
	_ ports.Analytics = (*Client)(nil)
	_ ports.Analytics = LogSink{}
)
