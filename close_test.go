package clonecoco

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCloser struct {
	err   error
	calls int
}

func (s *stubCloser) Close() error {
	s.calls++
	return s.err
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer is a no-op", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		CloseWithLog(nil, logger, "response body")

		assert.Empty(t, buf.String())
	})

	t.Run("successful close logs nothing", func(t *testing.T) {
		closer := &stubCloser{}
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		CloseWithLog(closer, logger, "response body")

		assert.Equal(t, 1, closer.calls)
		assert.Empty(t, buf.String())
	})

	t.Run("close error logs a warning with the resource name", func(t *testing.T) {
		closer := &stubCloser{err: errors.New("connection reset")}
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		CloseWithLog(closer, logger, "response body")

		assert.Equal(t, 1, closer.calls)
		out := buf.String()
		assert.Contains(t, out, "failed to close resource")
		assert.Contains(t, out, "response body")
		assert.Contains(t, out, "connection reset")
		assert.Contains(t, out, "level=WARN")
	})

	t.Run("nil logger falls back to the default", func(t *testing.T) {
		closer := &stubCloser{err: errors.New("busy")}

		require.NotPanics(t, func() {
			CloseWithLog(closer, nil, "config file")
		})
		assert.Equal(t, 1, closer.calls)
	})

	t.Run("deferred close still reports errors", func(t *testing.T) {
		closer := &stubCloser{err: errors.New("flush failed")}
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		func() {
			defer CloseWithLog(closer, logger, "redis connection")
		}()

		assert.Equal(t, 1, closer.calls)
		assert.Contains(t, buf.String(), "redis connection")
	})
}
