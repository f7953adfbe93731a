/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: devices.go
Description: Device utility commands for DroidStress. Lists connected devices and
the packages installed on a device, for picking targets before a session.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/droidstress/pkg/adb"
	"github.com/spf13/cobra"
)

var packagesDevice string

func init() {
	PackagesCmd.Flags().StringVar(&packagesDevice, "device", "", "ADB device serial (required)")
	PackagesCmd.MarkFlagRequired("device")
}

// DevicesCmd lists connected devices
var DevicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected Android devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := adb.Devices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No devices connected.")
			return nil
		}
		for _, device := range devices {
			fmt.Println(device)
		}
		return nil
	},
}

// PackagesCmd lists the packages installed on a device
var PackagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List packages installed on a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		bridge := adb.NewBridge(packagesDevice)
		packages, err := bridge.ListPackages()
		if err != nil {
			return err
		}
		for _, pkg := range packages {
			fmt.Println(pkg)
		}
		fmt.Printf("%d packages installed\n", len(packages))
		return nil
	},
}
