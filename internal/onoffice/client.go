package onoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/innobrain/onoffice-structure/internal/payload"
)

const (
	// DefaultURL is the endpoint of the stable API version.
	DefaultURL = "https://api.onoffice.de/api/stable/api.php"

	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 30 * time.Second

	ActionGet      = "urn:onoffice-de-ns:smart:2.5:smartml:action:get"
	ResourceFields = "fields"

	hmacVersion = "2"
)

// Client sends actions to the onOffice API.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
	identifier func() string
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the API endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogger sets the logger requests are logged to.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock replaces the clock used for action timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a client for DefaultURL.
func NewClient(opts ...Option) *Client {
	c := &Client{
		url:        DefaultURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
		now:        time.Now,
		identifier: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FieldsRequest selects the modules and label language of a fields call.
type FieldsRequest struct {
	Modules  []string
	Language Language
}

type envelope struct {
	Token   string  `json:"token"`
	Request request `json:"request"`
}

type request struct {
	Actions []action `json:"actions"`
}

type action struct {
	ActionID     string         `json:"actionid"`
	ResourceID   string         `json:"resourceid"`
	Identifier   string         `json:"identifier"`
	ResourceType string         `json:"resourcetype"`
	Timestamp    int64          `json:"timestamp"`
	HMAC         string         `json:"hmac"`
	HMACVersion  string         `json:"hmac_version"`
	Parameters   map[string]any `json:"parameters"`
}

// Fields fetches the field configuration of req.Modules and returns the
// module records keyed by module id, in the order the API sent them. Each
// record keeps its "id", "type" and "elements" entries.
func (c *Client) Fields(ctx context.Context, creds Credentials, req FieldsRequest) (*payload.Object, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}
	modules := req.Modules
	if modules == nil {
		modules = []string{}
	}

	params := map[string]any{
		"modules":                modules,
		"labels":                 true,
		"language":               language.String(),
		"showfieldfilters":       true,
		"showfielddependencies":  true,
		"showFieldMeasureFormat": true,
	}

	c.logger.Debug("requesting field configuration",
		zap.Strings("modules", modules),
		zap.String("language", language.String()),
	)

	result, err := c.call(ctx, creds, ActionGet, ResourceFields, params)
	if err != nil {
		return nil, err
	}

	records := recordsOf(result)
	c.logger.Debug("received field configuration", zap.Int("modules", records.Len()))
	return records, nil
}

// DecodeFieldsResponse extracts the module records from a complete fields
// response body, such as one saved to a file. Error statuses inside the
// body are reported as *APIError.
func DecodeFieldsResponse(body []byte) (*payload.Object, error) {
	result, err := decodeResult(http.StatusOK, body)
	if err != nil {
		return nil, err
	}
	return recordsOf(result), nil
}

// recordsOf keys the records of a fields result by their id.
func recordsOf(result *payload.Object) *payload.Object {
	records := payload.NewObject()
	data, _ := result.Object("data")
	list, _ := data.Value("records").([]any)
	for _, item := range list {
		record, ok := item.(*payload.Object)
		if !ok {
			continue
		}
		id := payload.String(record.Value("id"))
		if id == "" {
			continue
		}
		records.Set(id, record)
	}
	return records
}

// call sends one signed action and returns its result object.
func (c *Client) call(ctx context.Context, creds Credentials, actionID, resourceType string, params map[string]any) (*payload.Object, error) {
	timestamp := c.now().Unix()
	ts := strconv.FormatInt(timestamp, 10)

	body, err := json.Marshal(envelope{
		Token: creds.Token,
		Request: request{Actions: []action{{
			ActionID:     actionID,
			ResourceID:   "",
			Identifier:   c.identifier(),
			ResourceType: resourceType,
			Timestamp:    timestamp,
			HMAC:         Sign(creds.Secret, ts, creds.Token, resourceType, actionID),
			HMACVersion:  hmacVersion,
			Parameters:   params,
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("onoffice response",
		zap.String("resource_type", resourceType),
		zap.Int("http_status", resp.StatusCode),
		zap.Int("bytes", len(respBody)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{HTTPStatus: resp.StatusCode, Message: truncateForError(respBody)}
	}

	return decodeResult(resp.StatusCode, respBody)
}

// decodeResult checks the request and action status of body and returns the
// first action result.
func decodeResult(httpStatus int, body []byte) (*payload.Object, error) {
	doc, err := payload.DecodeObject(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	status, _ := doc.Object("status")
	if code := payload.Int(status.Value("code")); code != http.StatusOK {
		return nil, &APIError{
			HTTPStatus: httpStatus,
			Code:       code,
			ErrorCode:  payload.Int(status.Value("errorcode")),
			Message:    payload.String(status.Value("message")),
		}
	}

	response, _ := doc.Object("response")
	results, _ := response.Value("results").([]any)
	if len(results) == 0 {
		return nil, &APIError{HTTPStatus: httpStatus, Code: http.StatusOK, Message: "no action results in response"}
	}
	result, ok := results[0].(*payload.Object)
	if !ok {
		return nil, &APIError{HTTPStatus: httpStatus, Code: http.StatusOK, Message: "malformed action result"}
	}

	actionStatus, _ := result.Object("status")
	if errorCode := payload.Int(actionStatus.Value("errorcode")); errorCode != 0 {
		return nil, &APIError{
			HTTPStatus: httpStatus,
			Code:       http.StatusOK,
			ErrorCode:  errorCode,
			Message:    payload.String(actionStatus.Value("message")),
		}
	}

	return result, nil
}
