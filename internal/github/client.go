// Package github talks to the GitHub OAuth and REST APIs.
package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthenticatedUser is the subset of the /user payload the auth flow
// consumes.
type AuthenticatedUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Client struct {
	httpClient   *http.Client
	oauthBaseURL string
	apiBaseURL   string
	clientID     string
	clientSecret string
}

// NewClient builds a client against the given base URLs. Tests point
// both at httptest servers.
func NewClient(clientID, clientSecret, oauthBaseURL, apiBaseURL string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		oauthBaseURL: strings.TrimSuffix(oauthBaseURL, "/"),
		apiBaseURL:   strings.TrimSuffix(apiBaseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)

	req, err := http.NewRequest(http.MethodPost, c.oauthBaseURL+"/login/oauth/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github: token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github: token exchange returned status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("github: decode token response: %w", err)
	}
	if payload.Error != "" {
		return "", fmt.Errorf("github: token exchange rejected: %s", payload.Error)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("github: token exchange returned no access token")
	}
	return payload.AccessToken, nil
}

// FetchAuthenticatedUser loads the profile behind an access token.
func (c *Client) FetchAuthenticatedUser(accessToken string) (*AuthenticatedUser, error) {
	req, err := http.NewRequest(http.MethodGet, c.apiBaseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: fetch user returned status %d", resp.StatusCode)
	}

	var user AuthenticatedUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("github: decode user: %w", err)
	}
	return &user, nil
}

// GetUser proxies a public profile lookup, returning the raw JSON body.
func (c *Client) GetUser(username string) (json.RawMessage, error) {
	return c.getRaw("/users/" + url.PathEscape(username))
}

// GetUserRepos proxies a public repository listing.
func (c *Client) GetUserRepos(username string) (json.RawMessage, error) {
	return c.getRaw("/users/" + url.PathEscape(username) + "/repos")
}

func (c *Client) getRaw(path string) (json.RawMessage, error) {
	req, err := http.NewRequest(http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: read response for %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: %s returned status %d", path, resp.StatusCode)
	}
	return json.RawMessage(body), nil
}
