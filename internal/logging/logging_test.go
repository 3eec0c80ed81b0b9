package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestTextRespectsVerbose(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	Text(&buf, false)
	Logger().Debug("hidden")
	Logger().Info("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown n=1")

	buf.Reset()
	Text(&buf, true)
	Logger().Debug("details")
	assert.Contains(t, buf.String(), "level=DEBUG msg=details")
}
