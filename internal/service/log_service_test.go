package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogService_RecordBuild(t *testing.T) {
	h := newHarness(t)
	svc := NewLogService(h.repos, h.cfg, h.logger, h.sink)

	res, err := svc.RecordBuild(context.Background(), &dto.LogBuildRequest{
		Timestamp: json.RawMessage(`1700000000`),
		Source:    "ci",
		LogText:   "build ok",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	logs := h.repos.LogsOfKind(entity.LogKindBuild)
	require.Len(t, logs, 1)
	assert.Equal(t, res.Id, logs[0].Id)
	assert.JSONEq(t, `{"source":"ci","log_text":"build ok","timestamp":1700000000}`, logs[0].RequestSummary)
	assert.Equal(t, 1, h.sink.Count())
}

func TestLogService_RecordBuildInsertFailure(t *testing.T) {
	h := newHarness(t)
	h.repos.LogCreateErr = errors.New("db down")

	_, err := NewLogService(h.repos, h.cfg, h.logger).RecordBuild(context.Background(), &dto.LogBuildRequest{LogText: "x"})
	assert.Error(t, err)
}

func TestLogService_List(t *testing.T) {
	h := newHarness(t)
	svc := NewLogService(h.repos, h.cfg, h.logger)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		h.reqLogger.Record(ctx, entity.LogKindChat, "q", "a")
	}
	_, err := svc.RecordBuild(ctx, &dto.LogBuildRequest{LogText: "latest"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 50)
	assert.Equal(t, "build", all[0].Kind)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].Seq, all[i].Seq)
	}

	builds, err := svc.List(ctx, "build")
	require.NoError(t, err)
	assert.Len(t, builds, 1)

	_, err = svc.List(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidLogKind)
}
