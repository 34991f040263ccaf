package logger_test

import (
	"context"
	"mwasens/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		verbose     bool
		wantDebug   bool
	}{
		{name: "development verbose", environment: logger.DevelopmentEnvironment, verbose: true, wantDebug: true},
		{name: "development quiet", environment: logger.DevelopmentEnvironment, verbose: false, wantDebug: false},
		{name: "production verbose", environment: logger.ProductionEnvironment, verbose: true, wantDebug: true},
		{name: "production quiet", environment: logger.ProductionEnvironment, verbose: false, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				logger.Setup(tt.environment, tt.verbose)
			})

			ctx := context.Background()
			require.NotNil(t, logger.Get(ctx))
			require.Equal(t, tt.wantDebug, logger.IsDebug(ctx))
		})
	}
}

func TestGetPrefersContextLogger(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment, false)

	ctx := context.Background()
	require.NotNil(t, logger.Get(ctx))

	custom := zap.NewExample()
	require.Equal(t, custom, logger.Get(logger.WithLogger(ctx, custom)))
}

func TestWithFieldsAttachesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("runID", "abc"), zap.Float64("freqMHz", 154.24))
	logger.Info(ctx, "step evaluated")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "step evaluated", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["runID"])
	require.InDelta(t, 154.24, fields["freqMHz"], 1e-12)
}

func TestLoggingFunctions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	require.Equal(t, 4, logs.Len())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
