package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("rejects empty name", func(t *testing.T) {
		_, err := New("", "", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("plain lines without color", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "", &buf)
		require.NoError(t, err)

		l.Info("maze generated", Fields{"size": 30, "seed": 7})
		line := buf.String()

		assert.Contains(t, line, "[APP] [INFO] maze generated seed=7 size=30\n")
		assert.NotContains(t, line, "\033[")
	})

	t.Run("levels", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("API", "", &buf)
		require.NoError(t, err)

		l.Debug("hidden")
		l.Warning("careful")
		l.Error("broken")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "[API] [WARNING] careful")
		assert.Contains(t, buf.String(), "[API] [ERROR] broken")

		require.NoError(t, l.SetLevel("debug"))
		l.Debug("visible")
		assert.Contains(t, buf.String(), "[API] [DEBUG] visible")

		assert.Error(t, l.SetLevel("loud"))
	})

	t.Run("colored name", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("CLI", "\033[36m", &buf)
		require.NoError(t, err)

		l.Info("hello")
		assert.True(t, strings.Contains(buf.String(), "\033[36m[CLI]\033[0m"))
	})

	t.Run("each level has its own color", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("CLI", "\033[36m", &buf)
		require.NoError(t, err)
		require.NoError(t, l.SetLevel("debug"))

		l.Debug("d")
		l.Info("i")
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 2)

		assert.Contains(t, lines[0], levelColorDebug+"[DEBUG]"+colorReset)
		assert.Contains(t, lines[1], levelColorInfo+"[INFO]"+colorReset)
		assert.NotEqual(t, levelColorDebug, levelColorInfo)
	})
}
