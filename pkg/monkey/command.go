/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: command.go
Description: Command builder for DroidStress. Builds the structured adb invocation
that runs the device-side Fastbot monkey against a single package. Pure and
deterministic; validation is the caller's responsibility.
*/

package monkey

import (
	"strconv"
	"strings"
)

// CommandSpec is a structured subprocess invocation: an executable name plus
// its argument vector. Keeping the arguments as a list avoids shell quoting
// entirely.
type CommandSpec struct {
	Name string
	Args []string
}

// String renders the spec for log lines. It is never passed to a shell.
func (c CommandSpec) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Builder produces the command to run for one target package.
type Builder func(pkg string) CommandSpec

// MonkeyCommand builds the adb invocation that runs the Fastbot monkey on
// the device against a single package. Touch events are fixed at 30% and
// verbose output is always requested; the run is time-bounded on the device
// side via --running-minutes.
func MonkeyCommand(device, classpath, pkg string, minutes, throttleMS int) CommandSpec {
	return CommandSpec{
		Name: "adb",
		Args: []string{
			"-s", device,
			"shell",
			"CLASSPATH=" + classpath,
			"exec", "app_process", "/system/bin",
			"com.android.commands.monkey.Monkey",
			"-p", pkg,
			"--agent", "reuseq",
			"--running-minutes", strconv.Itoa(minutes),
			"--throttle", strconv.Itoa(throttleMS),
			"--pct-touch", "30",
			"-v", "-v",
		},
	}
}
