// Package client is the Go API client for the microloan service. It owns
// the session token in one place and unwraps the response envelope at a
// single boundary, so callers only ever see domain types or errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"time"

	"microloan/domain"
	"microloan/service"
)

// Session is the sole owner of the bearer token and current user. All
// reads and writes go through it; nothing else caches credentials.
type Session struct {
	mu    sync.RWMutex
	token string
	user  domain.User
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

func (s *Session) set(token string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = domain.User{}
}

type Client struct {
	baseURL string
	hc      *http.Client
	session *Session
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 15 * time.Second},
		session: &Session{},
	}
}

func (c *Client) Session() *Session {
	return c.session
}

// envelope mirrors the server's response wrapper. This is the only place
// payloads are unwrapped.
type envelope struct {
	Data   json.RawMessage     `json:"data"`
	Error  string              `json:"error"`
	Fields service.FieldErrors `json:"fields"`
}

// APIError is a non-2xx response surfaced to the caller.
type APIError struct {
	Status  int
	Message string
	Fields  service.FieldErrors
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: %s (status %d)", e.Message, e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: env.Error, Fields: env.Fields}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

// Register creates a user account. It does not log in.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/user/register", reg, &user)
	return user, err
}

// Login authenticates and stores the token and user on the session.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var result domain.LoginResult
	creds := domain.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/user/login", creds, &result); err != nil {
		return domain.User{}, err
	}
	c.session.set(result.Token, result.User)
	return result.User, nil
}

// AdminLogin is Login against the back-office endpoint.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (domain.User, error) {
	var result domain.LoginResult
	creds := domain.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/admin/login", creds, &result); err != nil {
		return domain.User{}, err
	}
	c.session.set(result.Token, result.User)
	return result.User, nil
}

// Logout drops the session locally; tokens are stateless server-side.
func (c *Client) Logout() {
	c.session.clear()
}

// Refresh swaps the current token for a fresh one.
func (c *Client) Refresh(ctx context.Context) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/user/refresh", nil, &body); err != nil {
		return err
	}
	c.session.setToken(body.Token)
	return nil
}

func (c *Client) Quote(ctx context.Context, input domain.QuoteInput) (domain.Quote, error) {
	var quote domain.Quote
	err := c.do(ctx, http.MethodPost, "/loan/quote", input, &quote)
	return quote, err
}

func (c *Client) RecommendTerm(ctx context.Context, principal, maxMonthlyPayment float64) (domain.TermRecommendationResult, error) {
	var result domain.TermRecommendationResult
	body := map[string]float64{"principal": principal, "maxMonthlyPayment": maxMonthlyPayment}
	err := c.do(ctx, http.MethodPost, "/loan/recommend-term", body, &result)
	return result, err
}

// Apply submits the multipart apply-loan form with its KYC documents.
func (c *Client) Apply(ctx context.Context, app domain.LoanApplication, docs []domain.DocumentUpload) (int64, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"amount":   strconv.FormatFloat(app.Amount, 'f', -1, 64),
		"duration": strconv.Itoa(app.TermMonths),
		"loanType": string(app.Type),
		"purpose":  app.Purpose,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return 0, err
		}
	}
	for _, doc := range docs {
		part, err := mw.CreateFormFile(string(doc.Kind), doc.FileName)
		if err != nil {
			return 0, err
		}
		if _, err := part.Write(doc.Data); err != nil {
			return 0, err
		}
	}
	if err := mw.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/loan/apply", &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var body struct {
		LoanID int64 `json:"loanId"`
	}
	if err := c.send(req, &body); err != nil {
		return 0, err
	}
	return body.LoanID, nil
}

func (c *Client) LoanStatus(ctx context.Context, id int64) (domain.Loan, error) {
	var loan domain.Loan
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/loan/status/%d", id), nil, &loan)
	return loan, err
}

func (c *Client) MyLoans(ctx context.Context) ([]domain.Loan, error) {
	var loans []domain.Loan
	err := c.do(ctx, http.MethodGet, "/loan/my", nil, &loans)
	return loans, err
}

func (c *Client) Installments(ctx context.Context, loanID int64) ([]domain.Installment, error) {
	var installments []domain.Installment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/loan/%d/emis", loanID), nil, &installments)
	return installments, err
}

func (c *Client) Profile(ctx context.Context, userID int64) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/profile/%d", userID), nil, &user)
	return user, err
}

func (c *Client) CibilScore(ctx context.Context, userID int64) (int, error) {
	var body struct {
		CibilScore int `json:"cibilScore"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/cibil/%d", userID), nil, &body)
	return body.CibilScore, err
}
