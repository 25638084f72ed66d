package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContext_WritesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	SetupTestLogger(&buf)

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).Info("relatório gerado")

	assert.Contains(t, buf.String(), "relatório gerado")
	assert.Contains(t, buf.String(), id)
}

func TestWithFields_DevelopmentKeepsRelevantFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var buf bytes.Buffer
	SetupTestLogger(&buf)

	L.WithFields(Fields{
		"month":         "2024-02",
		"total_pending": 3,
		"irrelevant":    "descartado",
	}).Info("pendências calculadas")

	out := buf.String()
	assert.Contains(t, out, "month=2024-02")
	assert.Contains(t, out, "total_pending=3")
	assert.NotContains(t, out, "descartado")
}

func TestWithFields_ProductionKeepsAllFields(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	var buf bytes.Buffer
	SetupTestLogger(&buf)

	L.WithField("irrelevant", "mantido").Info("ok")

	assert.Contains(t, buf.String(), "irrelevant=mantido")
}
