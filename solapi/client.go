// Package solapi sends validated message requests to the SOLAPI messaging
// API. It only signs and posts; responses are returned undecoded.
package solapi

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"msgsend/message"
)

// request counters
var counts = expvar.NewMap("solapi")

// DefaultURL is the API base URL.
const DefaultURL = "https://api.solapi.com"

const (
	sendPath     = "/messages/v4/send"
	sendManyPath = "/messages/v4/send-many/detail"
)

// UserAgent string.
var UserAgent = "msgsend/" + message.Version

// Client posts requests on behalf of one API key.
type Client struct {
	APIKey    string
	APISecret string
	BaseURL   string        // DefaultURL when empty
	Logger    *logrus.Entry // standard logger when nil
	HTTP      *http.Client  // http.DefaultClient when nil

	now func() time.Time
}

// Send posts a single message request.
func (c *Client) Send(ctx context.Context, req *message.SingleRequest) (json.RawMessage, error) {
	counts.Add("send", 1)
	return c.post(ctx, sendPath, req)
}

// SendMany posts a batch request.
func (c *Client) SendMany(ctx context.Context, req *message.BatchRequest) (json.RawMessage, error) {
	counts.Add("sendMany", 1)
	return c.post(ctx, sendManyPath, req)
}

// Dispatch posts req to the endpoint matching its form.
func (c *Client) Dispatch(ctx context.Context, req message.SendRequest) (json.RawMessage, error) {
	switch req := req.(type) {
	case *message.SingleRequest:
		return c.Send(ctx, req)
	case *message.BatchRequest:
		return c.SendMany(ctx, req)
	}
	return nil, fmt.Errorf("unsupported request %T", req)
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	url := strings.TrimRight(c.baseURL(), "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if UserAgent != "" {
		req.Header.Set("User-Agent", UserAgent)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authorization())

	log := c.logger().WithField("path", path)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		counts.Add("failed", 1)
		log.WithError(err).Error("Request error")
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		counts.Add("failed", 1)
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		counts.Add("failed", 1)
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Code == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		log.WithError(apiErr).WithField("status", resp.StatusCode).Warning("Request rejected")
		return nil, apiErr
	}
	log.WithField("status", resp.StatusCode).Debug("Request accepted")
	return json.RawMessage(respBody), nil
}

// authorization builds the HMAC-SHA256 header: the signature is the hex HMAC
// of date+salt keyed with the API secret.
func (c *Client) authorization() string {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	date := now().UTC().Format(time.RFC3339)
	salt := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		c.APIKey, date, salt, Sign(c.APISecret, date, salt))
}

// Sign returns the request signature for date and salt.
func Sign(secret, date, salt string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	io.WriteString(mac, date+salt)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultURL
	}
	return c.BaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *logrus.Entry {
	if c.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return c.Logger
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"errorCode"`
	Message string `json:"errorMessage"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("[%d] %s", e.Status, e.Message)
	}
	return fmt.Sprintf("[%d %s] %s", e.Status, e.Code, e.Message)
}
