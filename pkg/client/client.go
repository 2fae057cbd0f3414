package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sachen-pather/voltboard/pkg/domain"
)

// Client talks to the account service and the telemetry service. Both are
// external collaborators; base URLs and the bearer token come from
// configuration, never from code.
type Client struct {
	loginBase     string
	telemetryBase string
	token         string
	httpClient    *http.Client
}

// New creates a new API client.
func New(loginBase, telemetryBase, token string) *Client {
	return &Client{
		loginBase:     strings.TrimRight(loginBase, "/"),
		telemetryBase: strings.TrimRight(telemetryBase, "/"),
		token:         token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// loginRequest is the payload for the login endpoint. RememberMe is always
// false; session durability is the client's own concern.
type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// registerRequest is the payload for the register endpoint. The account
// service expects Pascal-cased keys here, unlike login.
type registerRequest struct {
	Email           string `json:"Email"`
	Password        string `json:"Password"`
	ConfirmPassword string `json:"ConfirmPassword"`
}

// Login authenticates with the account service. A nil error means the server
// accepted the credentials; the caller owns flipping session state.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := loginRequest{Email: email, Password: password, RememberMe: false}
	if err := c.doRequest(ctx, http.MethodPost, c.loginBase+"/Account/login", body, nil); err != nil {
		return fmt.Errorf("client.Login: %w", err)
	}
	return nil
}

// Register creates a new account. Success carries no session change.
func (c *Client) Register(ctx context.Context, email, password, confirmPassword string) error {
	body := registerRequest{Email: email, Password: password, ConfirmPassword: confirmPassword}
	if err := c.doRequest(ctx, http.MethodPost, c.loginBase+"/Account/register", body, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// VerifyEmail redeems an emailed verification token. The token is stripped of
// all whitespace before being URL-encoded; mail clients mangle long tokens
// with line breaks.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	clean := strings.Join(strings.Fields(token), "")
	if clean == "" {
		return fmt.Errorf("client.VerifyEmail: empty token")
	}
	u := c.loginBase + "/Account/verify-email?token=" + url.QueryEscape(clean)
	if err := c.doRequest(ctx, http.MethodGet, u, nil, nil); err != nil {
		return fmt.Errorf("client.VerifyEmail: %w", err)
	}
	return nil
}

// Logout tells the account service to end the session. Callers treat logout
// as fail-open: local session state ends logged-out whether or not this
// returns an error.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, c.loginBase+"/Account/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// FetchSeries queries the telemetry service for one device's samples of one
// data type over a date range. An empty or null payload decodes to no
// records, which is not an error.
func (c *Client) FetchSeries(ctx context.Context, req domain.SeriesRequest) ([]domain.Record, error) {
	params := url.Values{}
	params.Set("deviceId", req.DeviceID)
	params.Set("dataType", req.DataType)
	params.Set("startDate", req.StartDate)
	params.Set("endDate", req.EndDate)

	var records []domain.Record
	u := c.telemetryBase + "/telemetry?" + params.Encode()
	if err := c.doRequest(ctx, http.MethodGet, u, nil, &records); err != nil {
		return nil, fmt.Errorf("client.FetchSeries: %w", err)
	}
	return records, nil
}

func (c *Client) doRequest(ctx context.Context, method, rawURL string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		// The account service reports failures as {"message": "..."} and the
		// message is shown to the user verbatim.
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		// Some telemetry deployments answer an empty body instead of [].
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
