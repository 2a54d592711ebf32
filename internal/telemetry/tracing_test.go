package telemetry

import (
	"context"
	"net/http"
	"testing"

	"shopdesk/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), config.TracingConfig{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracer_InstallsPropagator(t *testing.T) {
	_, err := InitTracer(context.Background(), config.TracingConfig{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)

	header := http.Header{}
	header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	ctx := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(header))
	out := http.Header{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out))

	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", out.Get("traceparent"))
}
