package mails

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWelcomeTemplate(t *testing.T) {
	parts, err := parseEmailTmpl(WelcomeTemplate, map[string]any{"Username": "ann"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to FYM, ann!", parts["subject"])
	assert.Contains(t, parts["plainBody"], "Hi ann,")
	assert.Contains(t, parts["htmlBody"], "<p>Hi ann,</p>")
}

func TestParseWatchPartyTemplate(t *testing.T) {
	data := map[string]any{
		"Host":         "ann",
		"Title":        "Inception",
		"Name":         "Friday night",
		"ScheduledFor": time.Date(2024, 5, 3, 20, 0, 0, 0, time.UTC),
	}
	parts, err := parseEmailTmpl(WatchPartyInviteTemplate, data)
	require.NoError(t, err)
	assert.Equal(t, "ann invited you to a watch party: Inception", parts["subject"])
	assert.Contains(t, parts["plainBody"], "Fri, 03 May 2024 20:00 UTC")
}

func TestNopSender(t *testing.T) {
	var s Sender = Nop{}
	assert.NoError(t, s.Send("a@b.c", WelcomeTemplate, map[string]any{"Username": "ann"}))
	assert.Error(t, s.Send("a@b.c", "missing.tmpl", nil))
}

func TestNewMailer(t *testing.T) {
	m := New("smtp.example.com", 587, time.Second, "user", "pass", "FYM <no-reply@fym.local>", 0)
	assert.Equal(t, "user", m.Dialer.Username)
	assert.Equal(t, 1, m.RetriesCount)
}
