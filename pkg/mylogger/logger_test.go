package mylogger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfo_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	ctx := WithRequestID(context.Background(), "req-42")
	Info(ctx, logger, "user created", zap.Int64("user_id", 7))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "user created", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "req-42", fields["request_id"])
	require.Equal(t, int64(7), fields["user_id"])
	require.NotContains(t, fields, "trace_id")
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	ctx := context.Background()

	Debug(ctx, logger, "debug")
	Warn(ctx, logger, "warn")
	Error(ctx, logger, "error")

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.NotContains(t, entries[0].ContextMap(), "request_id")
}
