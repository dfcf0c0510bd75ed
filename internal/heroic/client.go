package heroic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/02loveslollipop/heroic-planner/internal/models"
)

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// MaxResponseBytes caps how much of a backend response body is read.
const MaxResponseBytes = 32 << 20

// ErrResponseTooLarge is returned when a response body exceeds the client's cap.
var ErrResponseTooLarge = errors.New("response body too large")

// Client talks to the HEROIC REST API rooted at BaseURL.
type Client struct {
	http     *http.Client
	baseURL  string
	maxBytes int64
}

// NewClient returns a client for baseURL (for example "https://heroic.example.org/api/").
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, baseURL: strings.TrimRight(baseURL, "/") + "/", maxBytes: MaxResponseBytes}
}

// URL joins path onto the client's base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + strings.TrimLeft(path, "/")
}

// Send issues one JSON request. An OK response without a body yields a nil result.
// A cancelled ctx is reported as the context's error so callers can tell it apart
// from backend failures.
func (c *Client) Send(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	if int64(len(raw)) > c.maxBytes {
		return nil, fmt.Errorf("read %s response: %w (limit %d bytes)", path, ErrResponseTooLarge, c.maxBytes)
	}
	raw = bytes.TrimSpace(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       errorBody(raw, resp.Status),
		}
	}

	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("decode %s response: invalid JSON", path)
	}
	return json.RawMessage(raw), nil
}

func errorBody(raw []byte, status string) json.RawMessage {
	if len(raw) > 0 && json.Valid(raw) {
		return json.RawMessage(raw)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = status
	}
	wrapped, _ := json.Marshal(map[string]string{"error": text})
	return wrapped
}

// FetchTelescopes retrieves the telescope catalog from path.
func (c *Client) FetchTelescopes(ctx context.Context, path string) ([]models.Telescope, error) {
	raw, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch telescopes: %w", err)
	}
	return DecodeTelescopes(raw)
}

// DecodeTelescopes accepts a bare list, a paginated page or an object keyed by id.
func DecodeTelescopes(raw json.RawMessage) ([]models.Telescope, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []models.Telescope{}, nil
	}

	switch raw[0] {
	case '[':
		var list []models.Telescope
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode telescope list: %w", err)
		}
		return list, nil
	case '{':
		var page models.TelescopePage
		if err := json.Unmarshal(raw, &page); err == nil && page.Results != nil {
			return page.Results, nil
		}
		var byID map[string]models.Telescope
		if err := json.Unmarshal(raw, &byID); err != nil {
			return nil, fmt.Errorf("decode telescope map: %w", err)
		}
		out := make([]models.Telescope, 0, len(byID))
		for id, rec := range byID {
			if rec.ID == "" {
				rec.ID = id
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return nil, errors.New("decode telescopes: unexpected payload")
	}
}
