package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLogRecorded(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := NewLogRecorded("abc", 7, "chat", at, `{"q":1}`, `{"a":2}`)

	assert.Equal(t, "log.chat", ev.EventType())
	assert.Equal(t, at, ev.Timestamp())
	assert.Equal(t, "abc", ev.Payload()["id"])
	assert.Equal(t, int64(7), ev.Payload()["seq"])
	assert.Equal(t, "2025-03-01T10:00:00Z", ev.Payload()["timestamp"])
}
