/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: device_test.go
Description: Tests for the DroidStress device bridge. Covers the adb output
parsers (device list, screen resolution, package list), target expansion, and
swipe-unlock input validation.
*/

package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseDevices verifies only authorized devices in state "device" are kept
func TestParseDevices(t *testing.T) {
	output := "List of devices attached\n" +
		"7NH26450903CG\tdevice\n" +
		"emulator-5554\toffline\n" +
		"0123456789ABCDEF\tunauthorized\n" +
		"emulator-5556\tdevice\n" +
		"\n"

	devices := parseDevices(output)
	assert.Equal(t, []string{"7NH26450903CG", "emulator-5556"}, devices)
}

// TestParseDevicesEmpty verifies the header-only output yields no devices
func TestParseDevicesEmpty(t *testing.T) {
	assert.Empty(t, parseDevices("List of devices attached\n"))
}

// TestParseResolution verifies the physical size line is extracted
func TestParseResolution(t *testing.T) {
	tests := []struct {
		name   string
		output string
		width  int
		height int
		ok     bool
	}{
		{"plain", "Physical size: 1080x2340\n", 1080, 2340, true},
		{"with override", "Physical size: 1440x3200\nOverride size: 1080x2400\n", 1440, 3200, true},
		{"garbage", "error: device offline\n", 0, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height, ok := parseResolution(tt.output)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.width, width)
			assert.Equal(t, tt.height, height)
		})
	}
}

// TestParsePackageList verifies the package: prefix is stripped and blank
// lines are dropped
func TestParsePackageList(t *testing.T) {
	output := "package:com.android.settings\n" +
		"package:com.example.app\n" +
		"\n" +
		"package:org.mozilla.firefox\n"

	packages := parsePackageList(output)
	assert.Equal(t, []string{"com.android.settings", "com.example.app", "org.mozilla.firefox"}, packages)
}

// TestExpandTargetSinglePackage verifies a concrete package name bypasses
// device queries entirely
func TestExpandTargetSinglePackage(t *testing.T) {
	bridge := NewBridge("test-device")
	packages, err := bridge.ExpandTarget("com.example.app")
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.app"}, packages)
}

// TestSwipeUnlockInvalidSize verifies an unknown resolution is rejected
// before any device interaction
func TestSwipeUnlockInvalidSize(t *testing.T) {
	bridge := NewBridge("test-device")
	assert.Error(t, bridge.SwipeUnlock(0, 2340))
	assert.Error(t, bridge.SwipeUnlock(1080, 0))
	assert.Error(t, bridge.SwipeUnlock(-1, -1))
}
