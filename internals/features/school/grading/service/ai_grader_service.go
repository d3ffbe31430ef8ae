package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// Error categories the proxy maps to fixed user-facing messages.
// No retry, no backoff: one call, one answer.
var (
	ErrRateLimited     = errors.New("ai gateway rate limited")
	ErrPaymentRequired = errors.New("ai gateway credits exhausted")
	ErrGatewayFailure  = errors.New("ai gateway call failed")
)

const systemPrompt = "You are a teaching assistant grading a student submission. " +
	"Give a grade out of 100 followed by two or three sentences of constructive feedback. " +
	"Start your answer with the numeric grade."

const defaultGrade = 75

type Grader struct {
	URL    string
	APIKey string
	Model  string
	Client *http.Client
}

func NewGrader(url, apiKey, model string) *Grader {
	return &Grader{
		URL:    url,
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type GradeResult struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

// Grade makes a single chat-completion call and extracts a grade from
// the free-text answer.
func (g *Grader) Grade(ctx context.Context, assignmentTitle, content string) (*GradeResult, error) {
	if g.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrGatewayFailure)
	}

	userPrompt := fmt.Sprintf("Assignment: %s\n\nStudent submission:\n%s", assignmentTitle, content)
	payload, err := json.Marshal(chatRequest{
		Model: g.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusPaymentRequired:
		return nil, ErrPaymentRequired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: bad response body", ErrGatewayFailure)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrGatewayFailure)
	}

	text := parsed.Choices[0].Message.Content
	return &GradeResult{
		Grade:    ExtractGrade(text),
		Feedback: text,
	}, nil
}

var gradeRe = regexp.MustCompile(`\d{1,3}`)

// ExtractGrade takes the first 1-3 digit number in the text, capped at
// 100. When the text has no digits at all it falls back to 75.
func ExtractGrade(text string) int {
	m := gradeRe.FindString(text)
	if m == "" {
		return defaultGrade
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return defaultGrade
	}
	if n > 100 {
		return 100
	}
	return n
}
