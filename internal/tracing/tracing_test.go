package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_EnabledShutsDownCleanly(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{
		Enabled:     true,
		ServiceName: "backoffice-test",
		Environment: "test",
		Endpoint:    "http://127.0.0.1:4318",
		SampleRatio: 1,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	span.End()

	// Nothing listens on the endpoint; shutdown must still return.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestWrapHandler_PropagatesSpanContext(t *testing.T) {
	var sawSpan bool
	h := WrapHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSpan = trace.SpanFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusNoContent)
	}), "test")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, sawSpan)
}

func TestWrapTransport_DefaultsBase(t *testing.T) {
	assert.NotNil(t, WrapTransport(nil))
}
