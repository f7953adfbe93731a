/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters for DroidStress. Provides structured console
output with per-level colors plus a session formatter that prefixes batch,
device, and monkey related messages for quick scanning of long test runs.
*/

package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides structured logging output with per-level colors
type CustomFormatter struct {
	Timestamp bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	f.writeHeader(&output, entry)
	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

// writeHeader writes the timestamp and level portion of a log line
func (f *CustomFormatter) writeHeader(output *strings.Builder, entry *logrus.Entry) {
	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[36m%s\033[0m ", timestamp)) // Cyan
		} else {
			output.WriteString(fmt.Sprintf("%s ", timestamp))
		}
	}

	level := strings.ToUpper(entry.Level.String())
	if f.Colors {
		output.WriteString(fmt.Sprintf("\033[%dm%s\033[0m ", f.getLevelColor(entry.Level), level))
	} else {
		output.WriteString(fmt.Sprintf("%s ", level))
	}
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 36 // Cyan
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	case logrus.FatalLevel, logrus.PanicLevel:
		return 35 // Magenta
	default:
		return 37 // White
	}
}

// formatFields formats structured fields in a readable way
func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	var parts []string

	for key, value := range fields {
		formattedValue := f.formatValue(value)
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, formattedValue)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formattedValue))
		}
	}

	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case string:
		if len(v) > 120 {
			return fmt.Sprintf("%s...", v[:120])
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SessionFormatter provides specialized formatting for stress-session logs
type SessionFormatter struct {
	CustomFormatter
}

// Format formats session log entries with a category prefix
func (f *SessionFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	f.writeHeader(&output, entry)

	prefix := f.getSessionPrefix(entry)
	if prefix != "" {
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[35m[%s]\033[0m ", prefix)) // Magenta
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", prefix))
		}
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

// getSessionPrefix returns a category prefix based on the entry
func (f *SessionFormatter) getSessionPrefix(entry *logrus.Entry) string {
	switch {
	case strings.Contains(entry.Message, "batch"), strings.Contains(entry.Message, "Batch"):
		return "BATCH"
	case strings.Contains(entry.Message, "Device"), strings.Contains(entry.Message, "device"):
		return "DEVICE"
	case strings.Contains(entry.Message, "Package run"), strings.Contains(entry.Message, "command"):
		return "MONKEY"
	default:
		if _, ok := entry.Data["package"]; ok {
			return "MONKEY"
		}
		return ""
	}
}
