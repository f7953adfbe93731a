/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces and configuration types for DroidStress. Defines the
logging sink consumed by the runner core and the immutable session configuration,
so the core packages never depend on a concrete logger or on the config layer.
*/

package interfaces

import (
	"fmt"
	"time"
)

// Sink receives log messages from the runner core. Implementations must be
// safe for concurrent callers; each call is an atomic, independently-ordered
// append.
type Sink interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warning(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// PackageAll is the sentinel target meaning every installed package. It is
// expanded by the device bridge before the runner core is invoked; the core
// never interprets it.
const PackageAll = "all"

// SessionConfig fully specifies one stress-test session. Constructed once
// per invocation and treated as immutable afterwards.
type SessionConfig struct {
	DeviceID       string        // ADB device serial
	Classpath      string        // colon-separated device paths to the pushed jars
	Package        string        // target package name, or PackageAll
	RunningMinutes int           // per-package monkey run time in minutes
	ThrottleMS     int           // delay between injected events in milliseconds
	MaxWorkers     int           // bound on concurrently running monkey processes
	BatchSize      int           // packages per batch
	BatchDelay     time.Duration // cool-down between batches
	LibraryDir     string        // host directory holding the Fastbot jars
}

// Validate checks the SessionConfig for invalid or missing values.
// MaxWorkers carries no default on purpose: it directly sizes the load put
// on the device, so the caller must choose it explicitly.
func (c *SessionConfig) Validate() error {
	if c.DeviceID == "" {
		return fmt.Errorf("device must not be empty")
	}
	if c.Classpath == "" {
		return fmt.Errorf("classpath must not be empty")
	}
	if c.Package == "" {
		return fmt.Errorf("package must not be empty")
	}
	if c.RunningMinutes <= 0 {
		return fmt.Errorf("running minutes must be positive")
	}
	if c.ThrottleMS < 0 {
		return fmt.Errorf("throttle must not be negative")
	}
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("max workers must be set to a positive value")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}
	if c.BatchDelay < 0 {
		return fmt.Errorf("batch delay must not be negative")
	}
	return nil
}
