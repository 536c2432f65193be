package preflight

import (
	"strings"
	"testing"
)

func TestCheck_String(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		c := Check{
			Name:    "test_check",
			Passed:  true,
			Message: "all good",
		}
		s := c.String()
		if !strings.Contains(s, "✓") {
			t.Error("Passed check should have ✓")
		}
		if !strings.Contains(s, "all good") {
			t.Error("Should contain message")
		}
	})

	t.Run("failed_check", func(t *testing.T) {
		c := Check{
			Name:    "test_check",
			Passed:  false,
			Message: "missing",
		}
		s := c.String()
		if !strings.Contains(s, "✗") {
			t.Error("Failed check should have ✗")
		}
	})

	t.Run("warning_check", func(t *testing.T) {
		c := Check{
			Name:    "test_check",
			Passed:  true,
			Warning: true,
			Message: "warning message",
		}
		s := c.String()
		if !strings.Contains(s, "⚠") {
			t.Error("Warning check should have ⚠")
		}
		if !strings.Contains(s, "warning message") {
			t.Error("Should contain message")
		}
	})
}

func TestRunAll_WithValidProgram(t *testing.T) {
	result := RunAll("sh")

	if result == nil {
		t.Fatal("RunAll returned nil")
	}
	if len(result.Checks) != 3 {
		t.Errorf("Expected 3 checks, got %d", len(result.Checks))
	}
	if !result.Passed {
		for _, check := range result.Checks {
			t.Logf("%s", check.String())
		}
		t.Error("RunAll(sh) should pass on a normal system")
	}
}

func TestRunAll_WithMissingProgram(t *testing.T) {
	result := RunAll("/nonexistent/program/path")

	if result.Passed {
		t.Error("Result should fail when the program is not found")
	}

	foundProgram := false
	for _, check := range result.Checks {
		if check.Name == "program" {
			foundProgram = true
			if check.Passed {
				t.Error("program check should fail for a missing path")
			}
		}
	}
	if !foundProgram {
		t.Error("Expected program check in results")
	}
}

func TestCheckProgram_EdgeCases(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if check := checkProgram(""); check.Passed {
			t.Error("Empty program should fail")
		}
	})

	t.Run("directory_as_path", func(t *testing.T) {
		if check := checkProgram("/tmp"); check.Passed {
			t.Error("Directory as program should fail")
		}
	})
}

func TestCheckFileDescriptors(t *testing.T) {
	check := checkFileDescriptors()

	if check.Name != "file_descriptors" {
		t.Errorf("Name = %q, want file_descriptors", check.Name)
	}
	// Any realistic system has more than the small headroom we need.
	if !check.Passed && !check.Warning {
		t.Errorf("file descriptor check failed: %s", check.Message)
	}
}

func TestCheckTerminalDevice(t *testing.T) {
	check := checkTerminalDevice()

	if check.Name != "pseudo_terminal" {
		t.Errorf("Name = %q, want pseudo_terminal", check.Name)
	}
	if !check.Passed {
		t.Skipf("no /dev/ptmx in this environment: %s", check.Message)
	}
}

func TestSuggestFix(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"program", "spelling"},
		{"pseudo_terminal", "devpts"},
		{"file_descriptors", "ulimit -n"},
		{"unknown", "documentation"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fix := suggestFix(tc.name)
			if !strings.Contains(fix, tc.expected) {
				t.Errorf("suggestFix(%q) = %q, should contain %q", tc.name, fix, tc.expected)
			}
		})
	}
}

func TestResult_Passed(t *testing.T) {
	t.Run("all_pass", func(t *testing.T) {
		result := RunAll("sh")
		for _, check := range result.Checks {
			if !check.Passed && result.Passed {
				t.Error("Passed result must not contain failed checks")
			}
		}
	})

	t.Run("one_fail", func(t *testing.T) {
		result := RunAll("/nonexistent")
		if result.Passed {
			t.Error("Result with a failing check should fail")
		}
	})
}

// TestPrintResults just verifies no panic - output goes to stdout
func TestPrintResults(t *testing.T) {
	result := &Result{
		Checks: []Check{
			{Name: "test1", Passed: true, Message: "ok"},
			{Name: "test2", Passed: false, Message: "missing"},
		},
		Passed: false,
	}

	PrintResults(result)
}
