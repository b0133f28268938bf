// Package client provides a Go client for the advising portal API.
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
)

// DefaultTimeout bounds a single API round trip
const DefaultTimeout = 15 * time.Second

// User is the signed-in identity returned by login and register
type User struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult is the payload of a successful login or registration
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	User      User   `json:"user"`
}

// AnswerVersion is one snapshot in a question's answer history
type AnswerVersion struct {
	ID        int64  `json:"id"`
	Version   int    `json:"version"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedBy string `json:"updatedBy"`
	Note      string `json:"note,omitempty"`
}

// Question is a question as the API returns it
type Question struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	StudentName   string          `json:"studentName"`
	CreatedAt     string          `json:"createdAt"`
	Tags          []string        `json:"tags"`
	LatestAnswer  *AnswerVersion  `json:"latestAnswer,omitempty"`
	AnswerHistory []AnswerVersion `json:"answerHistory"`
}

// ListFilter narrows ListQuestions. Zero values and "all" keep everything.
type ListFilter struct {
	Status   string
	Category string
	Keyword  string
}

// APIError is a failure response from the server, normalized to the single
// message the portal shows the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the advising portal API
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	sessions   *SessionStore
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken seeds the client with an existing bearer token
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithSessionStore attaches a session store. Login and Register persist the
// signed-in session to it, Logout clears it, and an existing stored token is
// picked up at construction.
func WithSessionStore(store *SessionStore) Option {
	return func(c *Client) {
		c.sessions = store
	}
}

// New creates a Client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.token == "" && c.sessions != nil {
		if session, err := c.sessions.Load(); err == nil && session != nil {
			c.token = session.Token
		}
	}
	return c
}

// SetToken sets the bearer token attached to subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	return c.token
}

// Login authenticates and keeps the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	result := &LoginResult{}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, result); err != nil {
		return nil, err
	}
	c.token = result.Token
	c.persistSession(result)
	return result, nil
}

// Register creates an account and keeps the returned token on the client
func (c *Client) Register(ctx context.Context, name, role, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"name":     name,
		"role":     role,
		"email":    email,
		"password": password,
	}
	result := &LoginResult{}
	if err := c.do(ctx, http.MethodPost, "/register", nil, body, result); err != nil {
		return nil, err
	}
	c.token = result.Token
	c.persistSession(result)
	return result, nil
}

// Logout drops the bearer token and clears any persisted session
func (c *Client) Logout() error {
	c.token = ""
	if c.sessions != nil {
		return c.sessions.Clear()
	}
	return nil
}

// persistSession saves the signed-in state when a store is attached.
// Persistence failures do not fail the login; the session just will not
// survive a restart.
func (c *Client) persistSession(result *LoginResult) {
	if c.sessions == nil {
		return
	}
	_ = c.sessions.Save(&Session{
		Token: result.Token,
		Role:  result.User.Role,
		Name:  result.User.Name,
		Email: result.User.Email,
	})
}

// ForgotPassword starts a password reset and returns the reset token when
// the server hands one back
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var result struct {
		Message    string `json:"message"`
		ResetToken string `json:"resetToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/forgot-password", nil, body, &result); err != nil {
		return "", err
	}
	return result.ResetToken, nil
}

// ResetPassword completes a password reset
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/reset-password", nil, body, nil)
}

// ListQuestions returns questions matching the filter, newest first
func (c *Client) ListQuestions(ctx context.Context, filter ListFilter) ([]Question, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Keyword != "" {
		query.Set("q", filter.Keyword)
	}

	questions := []Question{}
	if err := c.do(ctx, http.MethodGet, "/questions", query, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// GetQuestion returns one question with its full answer history
func (c *Client) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	question := &Question{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/questions/%d", id), nil, nil, question); err != nil {
		return nil, err
	}
	return question, nil
}

// CreateQuestion posts a new question for the signed-in student
func (c *Client) CreateQuestion(ctx context.Context, title, content, category string, tags []string) (*Question, error) {
	body := map[string]interface{}{
		"title":    title,
		"content":  content,
		"category": category,
		"tags":     tags,
	}
	question := &Question{}
	if err := c.do(ctx, http.MethodPost, "/questions", nil, body, question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion edits a pending question owned by the signed-in student
func (c *Client) UpdateQuestion(ctx context.Context, id int64, title, content string) (*Question, error) {
	body := map[string]string{"title": title, "content": content}
	question := &Question{}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/questions/%d", id), nil, body, question); err != nil {
		return nil, err
	}
	return question, nil
}

// SetStatus moves a question between workflow states
func (c *Client) SetStatus(ctx context.Context, id int64, status string) (*Question, error) {
	body := map[string]string{"status": status}
	question := &Question{}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/questions/%d/status", id), nil, body, question); err != nil {
		return nil, err
	}
	return question, nil
}

// CreateAnswer appends a new answer version and returns the refreshed question
func (c *Client) CreateAnswer(ctx context.Context, id int64, content, note string) (*Question, error) {
	body := map[string]string{"content": content, "note": note}
	question := &Question{}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/questions/%d/answers", id), nil, body, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListAnswers returns a question's answer history, oldest version first
func (c *Client) ListAnswers(ctx context.Context, id int64) ([]AnswerVersion, error) {
	history := []AnswerVersion{}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/questions/%d/answers", id), nil, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Categories returns the distinct question categories
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// do performs one API round trip, attaching the bearer token and decoding
// the response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return normalizeError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// normalizeError distills a failure response to one message. Preference
// order is the nested error message, then the top-level message, then a
// generic text for the status.
func normalizeError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	message := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error.Message != "":
			message = envelope.Error.Message
		case envelope.Message != "":
			message = envelope.Message
		}
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if message == "" {
		message = "request failed"
	}

	return &APIError{StatusCode: statusCode, Message: message}
}
