package mail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Send(toEmail string, subject string, body string) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

func TestBestEffort_sends(t *testing.T) {
	m := &recordingMailer{}
	BestEffort(m, "user@example.com", "subject", "body")
	assert.Equal(t, []string{"user@example.com"}, m.sent)
}

func TestBestEffort_skipsEmptyRecipient(t *testing.T) {
	m := &recordingMailer{}
	BestEffort(m, "", "subject", "body")
	assert.Empty(t, m.sent)
}

func TestBestEffort_swallowsFailure(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp down")}
	// Must not panic or propagate the error
	BestEffort(m, "user@example.com", "subject", "body")
	assert.Len(t, m.sent, 1)
}

func TestNoopMailer(t *testing.T) {
	assert.NoError(t, NoopMailer{}.Send("user@example.com", "s", "b"))
}
