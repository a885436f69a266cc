package pose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/poslyzer/posture-backend-go/internal/apperrors"
	"github.com/poslyzer/posture-backend-go/internal/logging"
)

// Client calls a pose-inference sidecar over HTTP. The sidecar holds a single
// model session that is not reentrant, so calls are serialized with a mutex.
// One Client is created at startup and shared by all requests.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger

	mu sync.Mutex
}

// NewClient creates a detector client for the sidecar at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logging.WithComponent("pose"),
	}
}

// detectResponse matches the sidecar's JSON output.
type detectResponse struct {
	Detected  bool `json:"detected"`
	Landmarks []struct {
		Name       string  `json:"name"`
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Visibility float64 `json:"visibility"`
	} `json:"landmarks"`
}

// Detect sends the encoded image to the sidecar and returns the named
// landmarks, or nil if no body was found.
func (c *Client) Detect(ctx context.Context, image []byte) (Landmarks, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/detect", bytes.NewReader(image))
	if err != nil {
		return nil, apperrors.New(apperrors.KindInternal, "building detector request failed", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.New(apperrors.KindInternal, "pose detector unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error().Int("status", resp.StatusCode).Bytes("body", body).Msg("detector returned error")
		return nil, apperrors.New(apperrors.KindInternal,
			fmt.Sprintf("pose detector returned status %d", resp.StatusCode), nil)
	}

	var decoded detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.New(apperrors.KindInternal, "decoding detector response failed", err)
	}

	if !decoded.Detected {
		return nil, nil
	}

	lm := make(Landmarks, len(decoded.Landmarks))
	for _, l := range decoded.Landmarks {
		lm[Landmark(l.Name)] = Keypoint{X: l.X, Y: l.Y, Visibility: l.Visibility}
	}
	return lm, nil
}
