// Package plaud is a minimal client for the Plaud web API: login, the
// recording inventory and file tags.
package plaud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/neilberkman/recrider/internal/core/models"
)

const (
	DefaultBaseURL  = "https://api.plaud.ai"
	DefaultClientID = "web"

	listRecordingsPath = "/file/simple/web?skip=0&limit=99999&sort_by=start_time&is_desc=true"
)

// ErrAuthentication is returned when Plaud rejects the credentials
var ErrAuthentication = errors.New("plaud authentication failed")

// APIError is a non-2xx response from the Plaud API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("plaud API error (status %d): %s", e.StatusCode, e.Message)
}

// Options configures a Client
type Options struct {
	BaseURL    string
	ClientID   string
	Username   string
	Password   string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client talks to the Plaud API. It logs in lazily on the first call
// that needs a token. Not safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	username   string
	password   string
	token      string
	logger     *log.Logger
}

// NewClient creates a Plaud API client
func NewClient(opts Options) (*Client, error) {
	if opts.Username == "" || opts.Password == "" {
		return nil, errors.New("username and password are required")
	}

	c := &Client{
		httpClient: opts.HTTPClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		clientID:   opts.ClientID,
		username:   opts.Username,
		password:   opts.Password,
		logger:     logger.Or(opts.Logger),
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.clientID == "" {
		c.clientID = DefaultClientID
	}
	return c, nil
}

// Login exchanges the username and password for an access token
func (c *Client) Login(ctx context.Context) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for _, field := range [][2]string{
		{"username", c.username},
		{"password", c.password},
		{"client_id", c.clientID},
	} {
		if err := form.WriteField(field[0], field[1]); err != nil {
			return err
		}
	}
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/access-token", &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("logging in to plaud", "base_url", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", ErrAuthentication, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: invalid username or password", ErrAuthentication)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %w", ErrAuthentication, responseError(resp))
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: response carried no access token", ErrAuthentication)
	}

	c.token = token.AccessToken
	return nil
}

type remoteFile struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Duration  int64  `json:"duration"`
	StartTime int64  `json:"start_time"`
}

// ListRecordings fetches the full recording inventory, newest first
func (c *Client) ListRecordings(ctx context.Context) ([]models.RemoteRecording, error) {
	var resp struct {
		DataFileList []remoteFile `json:"data_file_list"`
	}
	if err := c.do(ctx, http.MethodGet, listRecordingsPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}

	recs := make([]models.RemoteRecording, 0, len(resp.DataFileList))
	for _, f := range resp.DataFileList {
		recs = append(recs, models.RemoteRecording{
			ID:               f.ID,
			Filename:         f.Filename,
			DurationSeconds:  f.Duration,
			StartTimeEpochMs: f.StartTime,
		})
	}
	return recs, nil
}

// ListTags returns every file tag on the account
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/filetag/", nil, &raw); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tags, err := decodeTagList(raw)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// decodeTagList accepts a bare array or an object carrying
// data_filetag_list or data
func decodeTagList(raw json.RawMessage) ([]models.Tag, error) {
	var tags []models.Tag
	if err := json.Unmarshal(raw, &tags); err == nil {
		return tags, nil
	}

	var wrapped struct {
		List []models.Tag `json:"data_filetag_list"`
		Data []models.Tag `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode tag list: %w", err)
	}
	if wrapped.List != nil {
		return wrapped.List, nil
	}
	return wrapped.Data, nil
}

// CreateTag creates a file tag named name
func (c *Client) CreateTag(ctx context.Context, name string) (models.Tag, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/filetag/", map[string]string{"name": name}, &raw); err != nil {
		return models.Tag{}, fmt.Errorf("create tag %q: %w", name, err)
	}

	var wrapped struct {
		Tag *models.Tag `json:"data_filetag"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return models.Tag{}, fmt.Errorf("create tag %q: failed to decode response: %w", name, err)
	}
	tag := wrapped.Tag
	if tag == nil {
		tag = &models.Tag{}
		if err := json.Unmarshal(raw, tag); err != nil {
			return models.Tag{}, fmt.Errorf("create tag %q: failed to decode response: %w", name, err)
		}
	}
	if tag.ID == "" {
		return models.Tag{}, fmt.Errorf("create tag %q: response carried no tag id", name)
	}
	if tag.Name == "" {
		tag.Name = name
	}
	return *tag, nil
}

// ApplyTag assigns tagID to every file in ids with one request
func (c *Client) ApplyTag(ctx context.Context, ids []string, tagID string) error {
	payload := struct {
		FileIDs []string `json:"file_id_list"`
		TagID   string   `json:"filetag_id"`
	}{ids, tagID}

	if err := c.do(ctx, http.MethodPost, "/file/update-tags", payload, nil); err != nil {
		return fmt.Errorf("apply tag %s to %d files: %w", tagID, len(ids), err)
	}
	return nil
}

// do performs an authenticated JSON request, logging in first if needed
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	if c.token == "" {
		if err := c.Login(ctx); err != nil {
			return err
		}
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("plaud request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return responseError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// responseError builds an APIError, preferring the JSON message field
func responseError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(body))

	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
