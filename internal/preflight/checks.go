// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// minFileDescriptors is the headroom the wrapper needs: PTY master and
// slave, the child's stdio, log output, and the optional metrics
// listener.
const minFileDescriptors = 64

// Check represents the result of a single preflight check.
type Check struct {
	Name    string // Name of the check
	Passed  bool   // Whether the check passed
	Warning bool   // True if it's a warning (non-fatal)
	Message string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// RunAll executes all preflight checks for wrapping the given program.
func RunAll(program string) *Result {
	result := &Result{
		Checks: make([]Check, 0, 3),
		Passed: true,
	}

	for _, check := range []Check{
		checkProgram(program),
		checkTerminalDevice(),
		checkFileDescriptors(),
	} {
		result.Checks = append(result.Checks, check)
		if !check.Passed {
			result.Passed = false
		}
	}

	return result
}

// checkProgram verifies the child program resolves through PATH.
func checkProgram(program string) Check {
	if program == "" {
		return Check{
			Name:    "program",
			Passed:  false,
			Message: "no program given",
		}
	}

	path, err := exec.LookPath(program)
	if err != nil {
		return Check{
			Name:    "program",
			Passed:  false,
			Message: fmt.Sprintf("%s: %v", program, err),
		}
	}

	return Check{
		Name:    "program",
		Passed:  true,
		Message: fmt.Sprintf("found at %s", path),
	}
}

// checkTerminalDevice verifies a pseudo-terminal can be allocated.
func checkTerminalDevice() Check {
	f, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return Check{
			Name:    "pseudo_terminal",
			Passed:  false,
			Message: fmt.Sprintf("/dev/ptmx: %v", err),
		}
	}
	f.Close()

	return Check{
		Name:    "pseudo_terminal",
		Passed:  true,
		Message: "/dev/ptmx is available",
	}
}

// checkFileDescriptors verifies descriptor headroom for the PTY pair,
// child stdio, and the metrics listener.
func checkFileDescriptors() Check {
	var limit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limit); err != nil {
		return Check{
			Name:    "file_descriptors",
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("unable to check: %v", err),
		}
	}

	actual := int(limit.Cur)
	return Check{
		Name:    "file_descriptors",
		Passed:  actual >= minFileDescriptors,
		Message: fmt.Sprintf("ulimit -n %d (need %d)", actual, minFileDescriptors),
	}
}

// PrintResults prints the preflight check results to stdout.
func PrintResults(result *Result) {
	fmt.Println("Preflight checks:")
	for _, check := range result.Checks {
		fmt.Println(check.String())
		if !check.Passed {
			fmt.Printf("    Fix: %s\n", suggestFix(check.Name))
		}
	}
	fmt.Println()
}

// suggestFix returns a suggestion for fixing a failed check.
func suggestFix(name string) string {
	switch name {
	case "program":
		return "check the spelling, or give a path to the executable"
	case "pseudo_terminal":
		return "mount devpts (or run outside a restricted container)"
	case "file_descriptors":
		return "ulimit -n 1024 (or edit /etc/security/limits.conf)"
	default:
		return "see documentation"
	}
}
