package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"dumbwaiter/src/types"
)

const clientTimeout = 2 * time.Second

// Client talks to a remote controller service. It satisfies floor.Requester, so a floor
// sensor loop can run on a different machine than the controller.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient takes the service base url, e.g. "http://localhost:9090".
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: clientTimeout},
		log:     log.With().Str("component", "client").Logger(),
	}
}

// Status fetches the controller status.
func (c *Client) Status(ctx context.Context) (types.Status, error) {
	var status types.Status
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/status"), nil)
	if err != nil {
		return status, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return status, fmt.Errorf("get status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("get status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, fmt.Errorf("decoding status: %w", err)
	}
	return status, nil
}

// RequestFloor asks the controller to move the car to floor.
func (c *Client) RequestFloor(ctx context.Context, floor int) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/requested/%d", floor))
}

// ReportFloor tells the controller the car was seen at floor.
func (c *Client) ReportFloor(ctx context.Context, floor int) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/lastseen/%d", floor))
}

// RequestStop asks the controller to stop the car.
func (c *Client) RequestStop(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/stop")
}

func (c *Client) SetRequestedFloor(floor int) {
	if err := c.RequestFloor(context.Background(), floor); err != nil {
		c.log.Error().Err(err).Int("floor", floor).Msg("Sending floor request failed")
	}
}

func (c *Client) SetLastSeenFloor(floor int) {
	if err := c.ReportFloor(context.Background(), floor); err != nil {
		c.log.Error().Err(err).Int("floor", floor).Msg("Sending floor arrival failed")
	}
}

func (c *Client) SetStopRequested() {
	if err := c.RequestStop(context.Background()); err != nil {
		c.log.Error().Err(err).Msg("Sending stop request failed")
	}
}

func (c *Client) send(ctx context.Context, method, path string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, e.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	return nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + ServiceName + path
}
