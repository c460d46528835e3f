package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/like-mike/loja/shared/models"
)

func TestInitTracerDisabled(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracer(ctx, models.TelemetryConfig{ServiceName: "loja-test"}, "test")
	require.NoError(t, err)
	defer tp.Shutdown(ctx)

	_, span := otel.Tracer("test").Start(ctx, "noop")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()
}
