package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// fetchWebProfileInfo calls Instagram's web_profile_info endpoint on the
// given host with the given header set. Instagram serves HTML challenge
// pages instead of JSON when it decides to block a caller, so the body
// is sniffed before decoding.
func fetchWebProfileInfo(ctx context.Context, client *http.Client, host string, headers map[string]string, username string) (*rawUser, error) {
	endpoint := fmt.Sprintf("https://%s/api/v1/users/web_profile_info/?username=%s", host, url.QueryEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("cannot read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "{") {
		return nil, fmt.Errorf("non-JSON response")
	}

	var parsed rawResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if parsed.Data.User == nil {
		return nil, fmt.Errorf("user not found")
	}
	return parsed.Data.User, nil
}
