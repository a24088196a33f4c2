package events

import "time"

const LogRecordedPrefix = "log."

// NewLogRecorded describes a request log row that has just been persisted.
func NewLogRecorded(id string, seq int64, kind string, at time.Time, request, response string) BaseEvent {
	return BaseEvent{
		Type: LogRecordedPrefix + kind,
		Data: map[string]interface{}{
			"id":               id,
			"seq":              seq,
			"kind":             kind,
			"timestamp":        at.UTC().Format(time.RFC3339Nano),
			"request_summary":  request,
			"response_summary": response,
		},
		OccurredAt: at,
	}
}
