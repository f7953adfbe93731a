/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: run.go
Description: Run command implementation for DroidStress. Wires the device bridge,
logger, and batched concurrent runner into a full stress-test session: online
check, library push, wake and unlock, package expansion, batched monkey runs.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/kleascm/droidstress/pkg/adb"
	"github.com/kleascm/droidstress/pkg/interfaces"
	"github.com/kleascm/droidstress/pkg/monkey"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunStress executes a full stress-test session
func RunStress(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogger()
	if err != nil {
		return err
	}
	defer logger.Close()

	config := sessionConfig()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sessionID := uuid.New().String()
	logger.Info("Starting stress-test session", map[string]interface{}{
		"session_id":  sessionID,
		"device":      config.DeviceID,
		"package":     config.Package,
		"minutes":     config.RunningMinutes,
		"throttle_ms": config.ThrottleMS,
		"max_workers": config.MaxWorkers,
		"batch_size":  config.BatchSize,
		"batch_delay": config.BatchDelay,
	})

	// Session-fatal preconditions: device offline and library push failure
	// must short-circuit before the runner core is invoked.
	bridge := adb.NewBridge(config.DeviceID)

	online, err := bridge.IsOnline()
	if err != nil {
		return fmt.Errorf("failed to query connected devices: %w", err)
	}
	if !online {
		return fmt.Errorf("device %s is not online", config.DeviceID)
	}
	logger.Info("Device online", map[string]interface{}{"device": config.DeviceID})

	if !viper.GetBool("skip_push") {
		if err := bridge.PushLibraries(config.LibraryDir); err != nil {
			return fmt.Errorf("failed to push Fastbot libraries: %w", err)
		}
		logger.Info("Pushed Fastbot libraries", map[string]interface{}{
			"device":  config.DeviceID,
			"lib_dir": config.LibraryDir,
		})
	}

	// Unlock failures are logged and tolerated: a session against an already
	// unlocked device still works.
	if !viper.GetBool("skip_unlock") {
		if err := bridge.WakeAndUnlock(); err != nil {
			logger.Error("Failed to wake and unlock device", map[string]interface{}{
				"device": config.DeviceID,
				"error":  err.Error(),
			})
		} else {
			logger.Info("Device woken and unlocked", map[string]interface{}{"device": config.DeviceID})
		}
	}

	packages, err := bridge.ExpandTarget(config.Package)
	if err != nil {
		return fmt.Errorf("failed to expand target packages: %w", err)
	}
	logger.Info("Resolved target packages", map[string]interface{}{
		"device": config.DeviceID,
		"count":  len(packages),
	})

	// Handle signals for graceful shutdown between batches
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			fmt.Println("\n[!] Interrupt received, stopping after the current batch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := monkey.NewProcessRunner(logger)
	batch := monkey.NewBatchRunner(runner, logger, config.MaxWorkers, config.BatchSize, config.BatchDelay)

	build := func(pkg string) monkey.CommandSpec {
		return monkey.MonkeyCommand(config.DeviceID, config.Classpath, pkg, config.RunningMinutes, config.ThrottleMS)
	}

	if err := batch.Run(ctx, packages, build); err != nil {
		return fmt.Errorf("session interrupted: %w", err)
	}

	// Per-package failures only ever show up as ERROR log lines; completing
	// the loop is session success.
	logger.Info("Stress-test session completed", map[string]interface{}{
		"session_id": sessionID,
		"packages":   len(packages),
	})
	return nil
}

// sessionConfig builds the immutable session configuration from viper
func sessionConfig() *interfaces.SessionConfig {
	return &interfaces.SessionConfig{
		DeviceID:       viper.GetString("device"),
		Classpath:      viper.GetString("classpath"),
		Package:        viper.GetString("package"),
		RunningMinutes: viper.GetInt("running_minutes"),
		ThrottleMS:     viper.GetInt("throttle_ms"),
		MaxWorkers:     viper.GetInt("max_workers"),
		BatchSize:      viper.GetInt("batch_size"),
		BatchDelay:     viper.GetDuration("batch_delay"),
		LibraryDir:     viper.GetString("library_dir"),
	}
}
