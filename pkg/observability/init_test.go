package observability_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/modelfang/pkg/observability"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "modelfang", cfg.ServiceName)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Positive(t, cfg.ShutdownTimeoutSec)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestInitNoopWhenUnconfigured(t *testing.T) {
	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.Logger)
	require.NotNil(t, providers.Shutdown)

	// Noop spans and instruments must be usable without a collector.
	ctx, span := providers.Tracer.Start(context.Background(), "edit.apply")
	providers.Logger.InfoContext(ctx, "noop pipeline works")
	span.End()

	counter, err := providers.Meter.Int64Counter("modelfang.test.counter")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "api-key=secret", want: map[string]string{"api-key": "secret"}},
		{
			name: "multiple with spaces",
			raw:  "a=1, b = 2",
			want: map[string]string{"a": "1", "b": "2"},
		},
		{name: "malformed pairs dropped", raw: "justakey,also-bad", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, observability.ParseOTLPHeaders(tt.raw))
		})
	}
}
