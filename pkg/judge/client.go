package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrUnauthorized marks any 401 response. Callers decide whether it is
// expected (silent session check) or an error to surface.
var ErrUnauthorized = errors.New("unauthorized")

// TokenStore holds the persisted credential. It is process-wide and
// single-writer: only the session operations write to it, every outgoing
// authenticated request reads it.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore is the default in-memory credential store.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// APIError is a well-formed error response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the platform API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenStore overrides the default in-memory credential store.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		tokens:     &MemoryTokenStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokens exposes the credential store; the Session controller is its
// only writer.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// errorMessage extracts a user-visible message from an error response
// body, falling back to a generic one.
func errorMessage(body []byte, fallback string) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fallback
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, errorMessage(respBody, "unauthorized"))
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody, "Something went wrong"),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/user/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/user/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckSession(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/check", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/user/logout", nil, nil)
}

func (c *Client) GetAllProblems(ctx context.Context) ([]ProblemSummary, error) {
	var out []ProblemSummary
	if err := c.do(ctx, http.MethodGet, "/problem/getAllProblem", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProblemByID(ctx context.Context, id string) (*Problem, error) {
	var out Problem
	if err := c.do(ctx, http.MethodGet, "/problem/problemById/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProblemsSolved(ctx context.Context) ([]ProblemSummary, error) {
	var out []ProblemSummary
	if err := c.do(ctx, http.MethodGet, "/problem/problemSolvedByUser", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmissionHistory(ctx context.Context, problemID string) ([]SubmissionRecord, error) {
	var out []SubmissionRecord
	if err := c.do(ctx, http.MethodGet, "/problem/submittedProblem/"+problemID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type evaluationRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (c *Client) run(ctx context.Context, problemID, code, language string) (*runResponse, error) {
	var out runResponse
	err := c.do(ctx, http.MethodPost, "/submission/run/"+problemID, evaluationRequest{Code: code, Language: language}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) submit(ctx context.Context, problemID, code, language string) (*submitResponse, error) {
	var out submitResponse
	err := c.do(ctx, http.MethodPost, "/submission/submit/"+problemID, evaluationRequest{Code: code, Language: language}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatTurn mirrors the transcript shape the AI endpoint expects.
type ChatTurn struct {
	Role  string     `json:"role"` // "user" or "model"
	Parts []ChatPart `json:"parts"`
}

type ChatPart struct {
	Text string `json:"text"`
}

// Chat asks the AI assistant about a problem.
func (c *Client) Chat(ctx context.Context, problem *Problem, transcript []ChatTurn) (string, error) {
	payload := map[string]interface{}{
		"messages":    transcript,
		"title":       problem.Title,
		"description": problem.Description,
		"testCases":   problem.VisibleTestCases,
		"startCode":   problem.StartCode,
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/ai/chat", payload, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
