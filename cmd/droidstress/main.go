/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for DroidStress. Provides command-line
options and configuration management for running monkey stress-test sessions
against a connected Android device.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/droidstress/cmd/droidstress/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logNoColor  bool

	// Session configuration
	device         string
	classpath      string
	targetPackage  string
	runningMinutes int
	throttleMS     int
	maxWorkers     int
	batchSize      int
	batchDelay     time.Duration
	libraryDir     string
	skipPush       bool
	skipUnlock     bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "droidstress",
		Short: "DroidStress - Batched monkey stress-testing for Android devices",
		Long: `DroidStress drives the device-side Fastbot monkey against installed Android
applications. It checks the device is online, pushes the Fastbot binaries, wakes
and unlocks the screen, and runs the monkey against each target package in bounded
concurrent batches, streaming all output into rotating timestamped log files.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 10*1024*1024, "Maximum log file size in bytes before rotating")
	rootCmd.PersistentFlags().BoolVar(&logNoColor, "log-no-color", false, "Disable colored console output")

	// Bind persistent flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_no_color", rootCmd.PersistentFlags().Lookup("log-no-color"))

	// Add run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a monkey stress-test session against a device",
		Long: `Run a full stress-test session: verify the device is online, push the Fastbot
libraries, wake and unlock the screen, expand the target package set, then drive
the monkey against each package in bounded concurrent batches. Individual package
failures are logged and never abort the session.`,
		RunE: commands.RunStress,
	}

	runCmd.Flags().StringVar(&device, "device", "", "ADB device serial (required)")
	runCmd.Flags().StringVar(&classpath, "classpath",
		"/sdcard/monkeyq.jar:/sdcard/framework.jar:/sdcard/fastbot-thirdpart.jar",
		"Device classpath of the pushed Fastbot jars")
	runCmd.Flags().StringVar(&targetPackage, "package", "all", "Target package name, or 'all' for every installed package")
	runCmd.Flags().IntVar(&runningMinutes, "minutes", 5, "Per-package monkey run time in minutes")
	runCmd.Flags().IntVar(&throttleMS, "throttle", 500, "Delay between injected events in milliseconds")
	runCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum concurrently running monkey processes (required)")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 4, "Packages per batch")
	runCmd.Flags().DurationVar(&batchDelay, "batch-delay", 10*time.Second, "Cool-down between batches")
	runCmd.Flags().StringVar(&libraryDir, "lib-dir", "./FastBot", "Host directory holding the Fastbot jars")
	runCmd.Flags().BoolVar(&skipPush, "skip-push", false, "Skip pushing the Fastbot libraries")
	runCmd.Flags().BoolVar(&skipUnlock, "skip-unlock", false, "Skip waking and unlocking the device")

	// Mark required flags
	runCmd.MarkFlagRequired("device")
	runCmd.MarkFlagRequired("max-workers")

	// Bind flags to viper
	viper.BindPFlag("device", runCmd.Flags().Lookup("device"))
	viper.BindPFlag("classpath", runCmd.Flags().Lookup("classpath"))
	viper.BindPFlag("package", runCmd.Flags().Lookup("package"))
	viper.BindPFlag("running_minutes", runCmd.Flags().Lookup("minutes"))
	viper.BindPFlag("throttle_ms", runCmd.Flags().Lookup("throttle"))
	viper.BindPFlag("max_workers", runCmd.Flags().Lookup("max-workers"))
	viper.BindPFlag("batch_size", runCmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("batch_delay", runCmd.Flags().Lookup("batch-delay"))
	viper.BindPFlag("library_dir", runCmd.Flags().Lookup("lib-dir"))
	viper.BindPFlag("skip_push", runCmd.Flags().Lookup("skip-push"))
	viper.BindPFlag("skip_unlock", runCmd.Flags().Lookup("skip-unlock"))

	rootCmd.AddCommand(runCmd)

	// Add device utility commands
	rootCmd.AddCommand(commands.DevicesCmd)
	rootCmd.AddCommand(commands.PackagesCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
