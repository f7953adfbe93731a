/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the DroidStress logging system. Covers config validation,
timestamped file creation, flush-on-close, size-based rotation, retention
pruning, and safety under concurrent writers.
*/

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelDebug,
		Format:    LogFormatText,
		OutputDir: dir,
		MaxFiles:  10,
		MaxSize:   10 * 1024 * 1024,
		Timestamp: true,
		Colors:    false,
	}
}

// TestLoggerConfigValidate covers the rejection cases
func TestLoggerConfigValidate(t *testing.T) {
	valid := testConfig(t.TempDir())
	require.NoError(t, valid.Validate())

	missingDir := *valid
	missingDir.OutputDir = ""
	assert.Error(t, missingDir.Validate())

	badFiles := *valid
	badFiles.MaxFiles = 0
	assert.Error(t, badFiles.Validate())

	badSize := *valid
	badSize.MaxSize = 0
	assert.Error(t, badSize.Validate())

	badFormat := *valid
	badFormat.Format = "xml"
	assert.Error(t, badFormat.Validate())

	badLevel := *valid
	badLevel.Level = "loud"
	assert.Error(t, badLevel.Validate())
}

// TestLoggerWritesTimestampedFile verifies messages land in a timestamped
// file and Close flushes everything queued
func TestLoggerWritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(testConfig(dir))
	require.NoError(t, err)

	logger.Info("Device online", map[string]interface{}{"device": "test-device"})
	logger.Error("Package run failed", map[string]interface{}{"package": "com.x"})
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "droidstress_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(filepath.Base(files[0]), "droidstress_"))

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Device online")
	assert.Contains(t, string(content), "Package run failed")
}

// TestLoggerRotation verifies a file past MaxSize rolls over to a fresh one
func TestLoggerRotation(t *testing.T) {
	dir := t.TempDir()
	config := testConfig(dir)
	config.MaxSize = 128

	logger, err := NewLogger(config)
	require.NoError(t, err)

	first := logger.CurrentFile()
	logger.Info(strings.Repeat("x", 256), nil)
	logger.Info("after rotation", nil)
	require.NoError(t, logger.Close())

	stat, err := os.Stat(first)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stat.Size(), int64(128))
}

// TestLoggerPrune verifies only MaxFiles log files are retained
func TestLoggerPrune(t *testing.T) {
	dir := t.TempDir()

	// Seed old log files with distinct, ascending mtimes
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		name := filepath.Join(dir, "droidstress_old"+string(rune('a'+i))+".log")
		require.NoError(t, os.WriteFile(name, []byte("old"), 0666))
		require.NoError(t, os.Chtimes(name, base, base.Add(time.Duration(i)*time.Minute)))
	}

	config := testConfig(dir)
	config.MaxFiles = 5
	logger, err := NewLogger(config)
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "droidstress_*.log"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(files), 5)

	// The freshly opened session file survives pruning
	assert.Contains(t, files, logger.CurrentFile())
}

// TestLoggerConcurrentWriters verifies concurrent log calls neither race
// nor drop messages
func TestLoggerConcurrentWriters(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(testConfig(dir))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.Info("worker line", map[string]interface{}{"worker": worker, "line": j})
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.CurrentFile())
	require.NoError(t, err)
	assert.Equal(t, 160, strings.Count(string(content), "worker line"))
}
