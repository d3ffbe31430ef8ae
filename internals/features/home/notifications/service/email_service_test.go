package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	mu    sync.Mutex
	calls []string
	err   error
	done  chan struct{}
}

func (s *stubSender) Send(toEmail, toName, subject, body string) error {
	s.mu.Lock()
	s.calls = append(s.calls, toEmail)
	s.mu.Unlock()
	close(s.done)
	return s.err
}

func TestBuildEmailHTML(t *testing.T) {
	html := BuildEmailHTML("Rina", "Assignment graded", "You scored 88 on the essay.")
	assert.Contains(t, html, "Hi Rina")
	assert.Contains(t, html, "Assignment graded")
	assert.Contains(t, html, "You scored 88 on the essay.")

	anon := BuildEmailHTML("", "Subject", "Body")
	assert.Contains(t, anon, "Hi,")
}

func TestSendAsyncDeliversInBackground(t *testing.T) {
	s := &stubSender{done: make(chan struct{})}
	SendAsync(s, "rina@example.com", "Rina", "sub", "body")

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("send never happened")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.calls, 1)
	assert.Equal(t, "rina@example.com", s.calls[0])
}

func TestSendAsyncSwallowsErrors(t *testing.T) {
	s := &stubSender{done: make(chan struct{}), err: errors.New("boom")}
	// must not panic or propagate
	SendAsync(s, "x@example.com", "", "sub", "body")
	<-s.done
}
