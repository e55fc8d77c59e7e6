package quizclient

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

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/services"
)

// API is the slice of the quiz service the tracker talks to.
type API interface {
	GetQuestions(ctx context.Context) ([]models.Question, error)
	GetSettings(ctx context.Context) (string, error)
	SubmitAttempt(ctx context.Context, req *services.SubmitAttemptRequest) (*services.SubmitAttemptResponse, error)
	GetAttemptByEmail(ctx context.Context, email string) (*models.Attempt, error)
}

// Client is an HTTP API implementation against a running quiz service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) GetQuestions(ctx context.Context) ([]models.Question, error) {
	var body struct {
		Questions []models.Question `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/questions", nil, &body); err != nil {
		return nil, err
	}
	return body.Questions, nil
}

func (c *Client) GetSettings(ctx context.Context) (string, error) {
	var body struct {
		AppName string `json:"appName"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &body); err != nil {
		return "", err
	}
	return body.AppName, nil
}

func (c *Client) SubmitAttempt(ctx context.Context, req *services.SubmitAttemptRequest) (*services.SubmitAttemptResponse, error) {
	var resp services.SubmitAttemptResponse
	if err := c.do(ctx, http.MethodPost, "/api/attempts", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetAttemptByEmail(ctx context.Context, email string) (*models.Attempt, error) {
	var body struct {
		Attempt *models.Attempt `json:"attempt"`
	}
	path := "/api/attempts/by-email?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	return body.Attempt, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("quiz api: %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
