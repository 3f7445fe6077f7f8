package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContextWithOptions_WritesToOut(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := NewContextWithOptions(context.Background(), Options{Out: &buf, NoColor: true})

	FromCtx(WithComponent(ctx, "scorer")).Info().Int("docs", 3).Msg("loaded")
	flush()

	out := buf.String()
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "component=scorer")
	assert.Contains(t, out, "docs=3")
}

func TestNewContextWithOptions_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := NewContextWithOptions(context.Background(), Options{Out: &buf, NoColor: true})
	FromCtx(ctx).Debug().Msg("hidden")
	flush()
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	ctx, flush = NewContextWithOptions(context.Background(), Options{Debug: true, Out: &buf, NoColor: true})
	FromCtx(ctx).Debug().Msg("visible")
	flush()
	assert.Contains(t, buf.String(), "visible")
}

func TestFromCtx_WithoutLogger(t *testing.T) {
	logger := FromCtx(context.Background())
	assert.NotNil(t, logger)
	logger.Info().Msg("no panic")
}
