package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractGrade(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"leading number", "85. Good structure, but the conclusion is weak.", 85},
		{"number mid-sentence", "I would give this essay 92 out of 100.", 92},
		{"over hundred capped", "Score: 150", 100},
		{"no digits", "Excellent work, well done!", 75},
		{"zero", "0 - the submission is empty.", 0},
		{"picks first number", "7 of 10 criteria met, so 70.", 7},
		{"empty string", "", 75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractGrade(tc.text))
		})
	}
}

func newTestGrader(url string) *Grader {
	g := NewGrader(url, "test-key", "test-model")
	return g
}

func chatBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
}

func TestGraderGrade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chatBody("88. Solid reasoning throughout."))
	}))
	defer srv.Close()

	got, err := newTestGrader(srv.URL).Grade(context.Background(), "Essay on photosynthesis", "Plants convert light...")
	require.NoError(t, err)
	assert.Equal(t, 88, got.Grade)
	assert.Equal(t, "88. Solid reasoning throughout.", got.Feedback)
}

func TestGraderErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"payment required", http.StatusPaymentRequired, ErrPaymentRequired},
		{"server error", http.StatusInternalServerError, ErrGatewayFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := newTestGrader(srv.URL).Grade(context.Background(), "t", "c")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGraderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	_, err := newTestGrader(srv.URL).Grade(context.Background(), "t", "c")
	assert.ErrorIs(t, err, ErrGatewayFailure)
}

func TestGraderMissingKey(t *testing.T) {
	g := NewGrader("http://127.0.0.1:1", "", "m")
	_, err := g.Grade(context.Background(), "t", "c")
	assert.ErrorIs(t, err, ErrGatewayFailure)
}

func TestGraderNoDigitsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatBody("A thoughtful piece, keep it up."))
	}))
	defer srv.Close()

	got, err := newTestGrader(srv.URL).Grade(context.Background(), "t", "c")
	require.NoError(t, err)
	assert.Equal(t, 75, got.Grade)
}
