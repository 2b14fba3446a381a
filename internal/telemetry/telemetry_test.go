package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/briefd/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Enabled(t *testing.T) {
	// Exporter construction is lazy; no collector needs to be listening.
	cfg := config.TelemetryConfig{
		Enabled:     true,
		ServiceName: "briefd-test",
		Endpoint:    "localhost:4318",
		Insecure:    true,
		SampleRate:  0.5,
	}

	shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Shutdown flushes; without a collector this can error, which is fine.
	_ = shutdown(context.Background())
}
