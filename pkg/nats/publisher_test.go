package nats

import (
	"testing"
	"time"

	"ai-gateway-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	ev := events.NewLogRecorded("id", 1, "file-edit", time.Now(), "{}", "{}")
	assert.Equal(t, "events.log.file-edit", Subject(ev))
}
