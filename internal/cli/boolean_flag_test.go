package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{
			name:         "defaults_to_false",
			defaultValue: false,
			arguments:    []string{},
			expected:     false,
			expectError:  false,
		},
		{
			name:         "sets_true_without_value",
			defaultValue: false,
			arguments:    []string{"--copy"},
			expected:     true,
			expectError:  false,
		},
		{
			name:         "sets_false_with_equals",
			defaultValue: true,
			arguments:    []string{"--copy=false"},
			expected:     false,
			expectError:  false,
		},
		{
			name:         "sets_false_with_no_literal",
			defaultValue: true,
			arguments:    []string{"--copy", "no"},
			expected:     false,
			expectError:  false,
		},
		{
			name:         "sets_true_with_on_literal",
			defaultValue: false,
			arguments:    []string{"--copy", "on"},
			expected:     true,
			expectError:  false,
		},
		{
			name:         "ignores_non_boolean_trailing_value",
			defaultValue: false,
			arguments:    []string{"--copy", "somewhere"},
			expected:     true,
			expectError:  false,
		},
		{
			name:         "rejects_unknown_literal_with_equals",
			defaultValue: false,
			arguments:    []string{"--copy=maybe"},
			expected:     false,
			expectError:  true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "boolean-test"}
			flagValue := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &flagValue, "copy", testCase.defaultValue, "copy the rendering")
			normalizedArguments := normalizeBooleanFlagArguments(command, testCase.arguments)
			parseErr := command.ParseFlags(normalizedArguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if len(testCase.arguments) == 0 && flagValue != testCase.defaultValue {
				t.Fatalf("expected default %t, got %t", testCase.defaultValue, flagValue)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsKeepsPositionals(t *testing.T) {
	t.Parallel()

	command := &cobra.Command{Use: "boolean-test"}
	var copyEnabled bool
	registerBooleanFlag(command.Flags(), &copyEnabled, "copy", false, "copy the rendering")

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "converts_literal_after_flag",
			arguments: []string{"--copy", "yes", "./src"},
			expected:  []string{"--copy=yes", "./src"},
		},
		{
			name:      "keeps_path_after_bare_flag",
			arguments: []string{"--copy", "./src"},
			expected:  []string{"--copy", "./src"},
		},
		{
			name:      "stops_at_double_dash",
			arguments: []string{"--", "--copy", "true"},
			expected:  []string{"--", "--copy", "true"},
		},
		{
			name:      "leaves_other_flags_alone",
			arguments: []string{"--format", "json", "--copy", "1"},
			expected:  []string{"--format", "json", "--copy=1"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			normalized := normalizeBooleanFlagArguments(command, testCase.arguments)
			if len(normalized) != len(testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
			for argumentIndex := range normalized {
				if normalized[argumentIndex] != testCase.expected[argumentIndex] {
					t.Fatalf("expected %v, got %v", testCase.expected, normalized)
				}
			}
		})
	}
}
