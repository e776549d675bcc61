package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aboiyar/AirBnB-clone/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggerStreams(t *testing.T) {
	var cmd, errs, info bytes.Buffer
	logger := New(&cmd, &errs, &info, LevelInfo)
	ctx := context.Background()

	logger.Command(ctx, "create User", nil)
	logger.Error(ctx, "save failed", Fields{"error": errors.New("disk full"), "key": "User.1"})
	logger.Info(ctx, "storage reloaded", Fields{"records": 3})
	logger.Debug(ctx, "dropped", nil)

	cmdLines := decodeLines(t, &cmd)
	require.Len(t, cmdLines, 1)
	assert.Equal(t, "create User", cmdLines[0]["msg"])

	errLines := decodeLines(t, &errs)
	require.Len(t, errLines, 1)
	assert.Equal(t, "save failed", errLines[0]["msg"])
	assert.Equal(t, "disk full", errLines[0]["error"])
	assert.Equal(t, "User.1", errLines[0]["key"])

	infoLines := decodeLines(t, &info)
	require.Len(t, infoLines, 1)
	assert.Equal(t, "storage reloaded", infoLines[0]["msg"])
	assert.Equal(t, float64(3), infoLines[0]["records"])
}

func TestLoggerSetLevel(t *testing.T) {
	var info bytes.Buffer
	logger := New(&bytes.Buffer{}, &bytes.Buffer{}, &info, LevelWarn)
	ctx := context.Background()

	logger.Info(ctx, "hidden", nil)
	logger.Warn(ctx, "shown", nil)
	logger.SetLevel(LevelDebug)
	logger.Debug(ctx, "now shown", nil)

	lines := decodeLines(t, &info)
	require.Len(t, lines, 2)
	assert.Equal(t, "shown", lines[0]["msg"])
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "now shown", lines[1]["msg"])
	assert.Equal(t, "DEBUG", lines[1]["level"])
}

func TestNewLoggerFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := &model.Config{
		LogFolder:  filepath.Join(dir, "logs"),
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}

	logger, err := NewLogger(cfg, LevelInfo)
	require.NoError(t, err)
	logger.Command(context.Background(), "all", nil)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(cfg.LogFolder, "commands.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"all"`)

	for _, name := range []string{"errors.log", "info.log"} {
		_, err := os.Stat(filepath.Join(cfg.LogFolder, name))
		assert.NoError(t, err, name)
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "COMMAND", LevelCommand.String())
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
