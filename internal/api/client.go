package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	vlog "github.com/ytget/videogen/internal/log"
	"github.com/ytget/videogen/internal/model"
)

// Endpoint paths
const (
	GeneratePath = "/generate"
	ProgressPath = "/progress"
)

// Operation names used in TransportError
const (
	OpGenerate = "generate"
	OpProgress = "progress"
)

// ProgressTimeout bounds a single progress request so a stuck poll cannot pile up
const ProgressTimeout = 5 * time.Second

// Result is a successful generate response
type Result struct {
	Data        []byte
	ContentType string
}

// Client talks to the video-generation server
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client for the given server base URL.
// httpClient may be nil, in which case a client without a timeout is used:
// generation can take minutes and is never aborted.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     vlog.WithComponent("api"),
	}
}

// BaseURL returns the server base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate posts the form and returns the video bytes
func (c *Client) Generate(ctx context.Context, form *Form) (*Result, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, &TransportError{Op: OpGenerate, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, body)
	if err != nil {
		return nil, &TransportError{Op: OpGenerate, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug().Str(vlog.FieldEndpoint, GeneratePath).Msg("sending generate request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: OpGenerate, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := readAPIError(resp.Body)
		c.logger.Warn().
			Int(vlog.FieldStatusCode, resp.StatusCode).
			Str("error", message).
			Msg("generate request failed")
		return nil, &GenerationError{StatusCode: resp.StatusCode, Message: message}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: OpGenerate, Err: fmt.Errorf("read body: %w", err)}
	}

	return &Result{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

// Progress fetches the current generation progress
func (c *Client) Progress(ctx context.Context) (model.ProgressSnapshot, error) {
	var snapshot model.ProgressSnapshot

	ctx, cancel := context.WithTimeout(ctx, ProgressTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ProgressPath, nil)
	if err != nil {
		return snapshot, &TransportError{Op: OpProgress, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return snapshot, &TransportError{Op: OpProgress, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return snapshot, &TransportError{Op: OpProgress, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return snapshot, &TransportError{Op: OpProgress, Err: fmt.Errorf("decode body: %w", err)}
	}
	return snapshot, nil
}

// readAPIError extracts the "error" field of a JSON error body. Any value
// other than null, false, 0 or "" is shown as is.
func readAPIError(body io.Reader) string {
	var parsed map[string]any
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return DefaultGenerateError
	}

	switch value := parsed["error"].(type) {
	case nil:
		return DefaultGenerateError
	case string:
		if value == "" {
			return DefaultGenerateError
		}
		return value
	case bool:
		if !value {
			return DefaultGenerateError
		}
		return "true"
	case float64:
		if value == 0 {
			return DefaultGenerateError
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return DefaultGenerateError
		}
		return string(encoded)
	}
}
