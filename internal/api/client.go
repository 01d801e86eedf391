package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Service is the remote surface the synchronization layer consumes. It is
// implemented by *Client and by test doubles.
type Service interface {
	ListSkydivers(ctx context.Context) ([]Skydiver, error)
	CreateSkydiver(ctx context.Context, s Skydiver) (CreatedRef, error)
	DeleteSkydiver(ctx context.Context, id int64) error
	BlockSkydiver(ctx context.Context, id int64) error
	UnblockSkydiver(ctx context.Context, id int64) error

	ListPassengers(ctx context.Context) ([]Passenger, error)
	CreatePassenger(ctx context.Context, p Passenger) (CreatedRef, error)
	DeletePassenger(ctx context.Context, id int64) error
	BlockPassenger(ctx context.Context, id int64) error
	UnblockPassenger(ctx context.Context, id int64) error

	ListParachutes(ctx context.Context) ([]Parachute, error)
	CreateParachute(ctx context.Context, p Parachute) (CreatedRef, error)
	DeleteParachute(ctx context.Context, id int64) error
	BlockParachute(ctx context.Context, id int64) error
	UnblockParachute(ctx context.Context, id int64) error

	ListExitPlans(ctx context.Context) ([]ExitPlan, error)
	CreateExitPlan(ctx context.Context, req ExitPlanRequest) (CreatedRef, error)
	UpdateExitPlan(ctx context.Context, id int64, req ExitPlanRequest) error
	DeleteExitPlan(ctx context.Context, id int64) error
	DispatchExitPlan(ctx context.Context, id int64) error
	UndoDispatchExitPlan(ctx context.Context, id int64) error
}

var _ Service = (*Client)(nil)

// Client talks to the dropzone manifest HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL        = "http://127.0.0.1:5030/api"
	defaultUserAgent      = "manifest/0.1"
	defaultRequestTimeout = 5 * time.Second
)

// NewClient builds a client for the given base URL ("host:port" or a full
// URL, with or without the /api prefix). A non-positive timeout falls back
// to the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListSkydivers retrieves every registered skydiver.
func (c *Client) ListSkydivers(ctx context.Context) ([]Skydiver, error) {
	var out []Skydiver
	if err := c.do(ctx, http.MethodGet, "/skydiver", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSkydiver registers a skydiver and returns the allocated id.
func (c *Client) CreateSkydiver(ctx context.Context, s Skydiver) (CreatedRef, error) {
	var ref CreatedRef
	if err := c.do(ctx, http.MethodPost, "/skydiver", s, &ref); err != nil {
		return CreatedRef{}, err
	}
	return ref, nil
}

// DeleteSkydiver removes a skydiver.
func (c *Client) DeleteSkydiver(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/skydiver/"+itoa(id), nil, nil)
}

// BlockSkydiver toggles the manual block on.
func (c *Client) BlockSkydiver(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/skydiver/"+itoa(id)+"/block", nil, nil)
}

// UnblockSkydiver toggles the manual block off.
func (c *Client) UnblockSkydiver(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/skydiver/"+itoa(id)+"/unblock", nil, nil)
}

// ListPassengers retrieves every registered passenger.
func (c *Client) ListPassengers(ctx context.Context) ([]Passenger, error) {
	var out []Passenger
	if err := c.do(ctx, http.MethodGet, "/passenger", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePassenger registers a passenger.
func (c *Client) CreatePassenger(ctx context.Context, p Passenger) (CreatedRef, error) {
	var ref CreatedRef
	if err := c.do(ctx, http.MethodPost, "/passenger", p, &ref); err != nil {
		return CreatedRef{}, err
	}
	return ref, nil
}

// DeletePassenger removes a passenger.
func (c *Client) DeletePassenger(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/passenger/"+itoa(id), nil, nil)
}

// BlockPassenger toggles the manual block on.
func (c *Client) BlockPassenger(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/passenger/"+itoa(id)+"/block", nil, nil)
}

// UnblockPassenger toggles the manual block off.
func (c *Client) UnblockPassenger(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/passenger/"+itoa(id)+"/unblock", nil, nil)
}

// ListParachutes retrieves every registered parachute.
func (c *Client) ListParachutes(ctx context.Context) ([]Parachute, error) {
	var out []Parachute
	if err := c.do(ctx, http.MethodGet, "/parachute", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateParachute registers a parachute.
func (c *Client) CreateParachute(ctx context.Context, p Parachute) (CreatedRef, error) {
	var ref CreatedRef
	if err := c.do(ctx, http.MethodPost, "/parachute", p, &ref); err != nil {
		return CreatedRef{}, err
	}
	return ref, nil
}

// DeleteParachute removes a parachute.
func (c *Client) DeleteParachute(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/parachute/"+itoa(id), nil, nil)
}

// BlockParachute toggles the manual block on.
func (c *Client) BlockParachute(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/parachute/"+itoa(id)+"/block", nil, nil)
}

// UnblockParachute toggles the manual block off.
func (c *Client) UnblockParachute(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, "/parachute/"+itoa(id)+"/unblock", nil, nil)
}

// ListExitPlans retrieves every exit plan.
func (c *Client) ListExitPlans(ctx context.Context) ([]ExitPlan, error) {
	var out []ExitPlan
	if err := c.do(ctx, http.MethodGet, "/exitplan", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExitPlan retrieves a single plan.
func (c *Client) GetExitPlan(ctx context.Context, id int64) (*ExitPlan, error) {
	var out ExitPlan
	if err := c.do(ctx, http.MethodGet, "/exitplan/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateExitPlan commits a new plan and returns the allocated id.
func (c *Client) CreateExitPlan(ctx context.Context, req ExitPlanRequest) (CreatedRef, error) {
	var ref CreatedRef
	if err := c.do(ctx, http.MethodPost, "/exitplan", req, &ref); err != nil {
		return CreatedRef{}, err
	}
	return ref, nil
}

// UpdateExitPlan replaces an existing plan.
func (c *Client) UpdateExitPlan(ctx context.Context, id int64, req ExitPlanRequest) error {
	return c.do(ctx, http.MethodPut, "/exitplan/"+itoa(id), req, nil)
}

// DeleteExitPlan removes a plan in either status.
func (c *Client) DeleteExitPlan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/exitplan/"+itoa(id), nil, nil)
}

// DispatchExitPlan transitions a plan to Dispatched.
func (c *Client) DispatchExitPlan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/exitplan/"+itoa(id)+"/dispatch", nil, nil)
}

// UndoDispatchExitPlan transitions a dispatched plan back to Draft.
func (c *Client) UndoDispatchExitPlan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/exitplan/"+itoa(id)+"/undo-dispatch", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: "network error: " + err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, payload)
	}
	if dest == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/api"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
