/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: device.go
Description: Device bridge for DroidStress. Drives a single Android device through
the adb binary: device enumeration, online check, resolution lookup, wake and
swipe-unlock, Fastbot library push, and installed-package listing. All invocations
use explicit argument vectors; nothing passes through a shell.
*/

package adb

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/kleascm/droidstress/pkg/interfaces"
)

// Bridge drives a single Android device via ADB
type Bridge struct {
	DeviceID string // ADB device serial
	adbPath  string
}

// NewBridge creates a bridge for the given device serial
func NewBridge(deviceID string) *Bridge {
	return &Bridge{DeviceID: deviceID, adbPath: "adb"}
}

// command builds an adb command scoped to this device
func (b *Bridge) command(args ...string) *exec.Cmd {
	full := append([]string{"-s", b.DeviceID}, args...)
	return exec.Command(b.adbPath, full...)
}

// Devices returns the serials of all connected devices in state "device"
func Devices() ([]string, error) {
	output, err := exec.Command("adb", "devices").Output()
	if err != nil {
		return nil, fmt.Errorf("adb devices failed: %w", err)
	}
	return parseDevices(string(output)), nil
}

// parseDevices extracts online device serials from `adb devices` output
func parseDevices(output string) []string {
	var devices []string
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) == 2 && fields[1] == "device" {
			devices = append(devices, fields[0])
		}
	}
	return devices
}

// IsOnline reports whether this bridge's device is connected and authorized
func (b *Bridge) IsOnline() (bool, error) {
	devices, err := Devices()
	if err != nil {
		return false, err
	}
	for _, d := range devices {
		if d == b.DeviceID {
			return true, nil
		}
	}
	return false, nil
}

var resolutionPattern = regexp.MustCompile(`Physical size: (\d+)x(\d+)`)

// Resolution returns the physical screen size of the device
func (b *Bridge) Resolution() (int, int, error) {
	output, err := b.command("shell", "wm", "size").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("wm size failed: %w", err)
	}
	width, height, ok := parseResolution(string(output))
	if !ok {
		return 0, 0, fmt.Errorf("could not parse screen resolution from %q", strings.TrimSpace(string(output)))
	}
	return width, height, nil
}

// parseResolution extracts width and height from `wm size` output
func parseResolution(output string) (int, int, bool) {
	for _, line := range strings.Split(output, "\n") {
		match := resolutionPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		width, _ := strconv.Atoi(match[1])
		height, _ := strconv.Atoi(match[2])
		return width, height, true
	}
	return 0, 0, false
}

// StayAwake keeps the device screen on while connected
func (b *Bridge) StayAwake() error {
	if err := b.command("shell", "svc", "power", "stayon", "true").Run(); err != nil {
		return fmt.Errorf("svc power stayon failed: %w", err)
	}
	return nil
}

// SwipeUnlock performs a bottom-to-top swipe along the left screen edge to
// dismiss the lock screen
func (b *Bridge) SwipeUnlock(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", width, height)
	}
	target := width
	if height < width {
		target = height
	}
	err := b.command("shell", "input", "swipe", "1", strconv.Itoa(target-100), "1", "1", "200").Run()
	if err != nil {
		return fmt.Errorf("swipe unlock failed: %w", err)
	}
	return nil
}

// WakeAndUnlock wakes the screen and swipe-unlocks it
func (b *Bridge) WakeAndUnlock() error {
	width, height, err := b.Resolution()
	if err != nil {
		return err
	}
	if err := b.StayAwake(); err != nil {
		return err
	}
	return b.SwipeUnlock(width, height)
}

// Push copies a local file or directory onto the device
func (b *Bridge) Push(local, remote string) error {
	output, err := b.command("push", local, remote).CombinedOutput()
	if err != nil {
		return fmt.Errorf("push %s failed: %v, output: %s", local, err, output)
	}
	return nil
}

// PushLibraries pushes the Fastbot jars from dir to /sdcard/ and, when
// present, the native libs directory to /data/local/tmp/
func (b *Bridge) PushLibraries(dir string) error {
	jars, err := filepath.Glob(filepath.Join(dir, "*.jar"))
	if err != nil {
		return err
	}
	if len(jars) == 0 {
		return fmt.Errorf("no jar files found in %s", dir)
	}
	for _, jar := range jars {
		if err := b.Push(jar, "/sdcard/"); err != nil {
			return err
		}
	}

	libs := filepath.Join(dir, "libs")
	if _, err := os.Stat(libs); err == nil {
		if err := b.Push(libs, "/data/local/tmp/"); err != nil {
			return err
		}
	}
	return nil
}

// ListPackages returns every package installed on the device
func (b *Bridge) ListPackages() ([]string, error) {
	output, err := b.command("shell", "pm", "list", "packages").Output()
	if err != nil {
		return nil, fmt.Errorf("pm list packages failed: %w", err)
	}
	return parsePackageList(string(output)), nil
}

// parsePackageList extracts package names from `pm list packages` output
func parsePackageList(output string) []string {
	var packages []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if name, ok := strings.CutPrefix(line, "package:"); ok && name != "" {
			packages = append(packages, name)
		}
	}
	return packages
}

// ExpandTarget resolves the target package argument to a concrete package
// list, expanding the "all" sentinel to every installed package. The runner
// core never sees the sentinel.
func (b *Bridge) ExpandTarget(target string) ([]string, error) {
	if target != interfaces.PackageAll {
		return []string{target}, nil
	}
	return b.ListPackages()
}
