package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"git.handmade.network/hmn/marsport/src/oops"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPrettyWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewPrettyZerologWriter(&buf))

	logger.Warn().Stack().Err(oops.New(errors.New("dial tcp: refused"), "failed to fetch rockets")).Str("path", "/rockets").Msg("upstream unavailable")

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "upstream unavailable")
	assert.Contains(t, out, "failed to fetch rockets: dial tcp: refused")
	assert.Contains(t, out, `path: "/rockets"`)
	assert.Contains(t, out, "Stack trace:")
}

func TestPrettyWriterPassesThroughGarbage(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrettyZerologWriter(&buf)
	n, err := w.Write([]byte("not json\n"))
	assert.Nil(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, "not json\n", buf.String())
}

func TestContextLogger(t *testing.T) {
	assert.Equal(t, GlobalLogger(), ExtractLogger(context.Background()))

	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("job", "test").Logger()
	ctx := AttachLoggerToContext(&logger, context.Background())

	ExtractLogger(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"job":"test"`)
}

func TestLogPanicValue(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	func() {
		defer LogPanics(&logger)
		panic("roadster lost")
	}()

	assert.Contains(t, buf.String(), "roadster lost")
	assert.Contains(t, buf.String(), "recovered from panic")
}
