package formsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the forms API. Authentication is a token cookie on every
// request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a forms client for the given API base URL.
func NewClient(baseURL, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("forms API token is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid forms API base URL %q: %w", baseURL, err)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Submission is one form response: the submitting user plus their answers
// keyed by question id.
type Submission struct {
	User     SubmissionUser    `json:"user"`
	Response map[string]string `json:"response"`
}

// SubmissionUser identifies the Discord user behind a submission.
type SubmissionUser struct {
	ID       int64  `json:"id,string"`
	Username string `json:"username"`
}

// GetResponses fetches every submission for the given form.
func (c *Client) GetResponses(ctx context.Context, formSlug string) ([]Submission, error) {
	endpoint := fmt.Sprintf("%s/forms/%s/responses", c.baseURL, formSlug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for form %s: %w", formSlug, err)
	}
	req.AddCookie(&http.Cookie{Name: "token", Value: c.token})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching responses for form %s: %w", formSlug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forms API returned %s for form %s", resp.Status, formSlug)
	}

	var submissions []Submission
	if err := json.NewDecoder(resp.Body).Decode(&submissions); err != nil {
		return nil, fmt.Errorf("decoding responses for form %s: %w", formSlug, err)
	}
	return submissions, nil
}
