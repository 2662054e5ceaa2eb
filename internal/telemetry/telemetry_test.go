package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	tr, err := New(context.Background(), Options{})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	_, span := tr.Start(context.Background(), "render")
	assert.False(t, span.IsRecording())
	span.End()
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNilTracer(t *testing.T) {
	var tr *Tracer
	_, span := tr.Start(context.Background(), "x")
	span.End()
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestNewWithExporter_RecordsAttributes(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tr := NewWithExporter("happydash-test", exp)
	require.True(t, tr.Enabled())

	_, span := tr.Start(context.Background(), "interaction.toggle", KeyCountry.String("Norway"), KeyYear.Int(2023))
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "interaction.toggle", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, KeyCountry.String("Norway"))
	assert.Contains(t, spans[0].Attributes, KeyYear.Int(2023))
	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestNew_StdoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.json")
	tr, err := New(context.Background(), Options{StdoutPath: path})
	require.NoError(t, err)

	_, span := tr.Start(context.Background(), "load.dataset", KeyPath.String("data.json"))
	span.End()
	require.NoError(t, tr.Shutdown(context.Background()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "load.dataset")
}
