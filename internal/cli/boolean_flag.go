package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName              = "bool"
	booleanFlagTrueLiteral           = "true"
	booleanFlagAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueLabel     = "invalid boolean value"
)

// parseBooleanLiteral interprets the relaxed boolean vocabulary accepted by
// arbor's boolean flags. The empty string is not a literal; bare flags are
// handled through NoOptDefVal instead.
func parseBooleanLiteral(input string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "true", "t", "1", "yes", "y", "on":
		return true, true
	case "false", "f", "0", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("%s %q", booleanFlagInvalidValueLabel, input)
	}
	if strings.TrimSpace(input) == "" {
		*value.target = true
		return nil
	}
	parsed, recognized := parseBooleanLiteral(input)
	if !recognized {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return booleanFlagTrueLiteral
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag registers an optional-value boolean flag accepting the
// relaxed literal vocabulary. A bare flag reads as true.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagKey: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(defaultValue)
		registered.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--flag value" into "--flag=value"
// for registered boolean flags when the value is a recognized boolean
// literal. Optional-value flags never consume the following token on their
// own, so without this pass pflag would treat the literal as a positional
// argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlagNames := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlagNames)
	if len(booleanFlagNames) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		currentArgument := arguments[argumentIndex]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[argumentIndex:]...)
			break
		}
		if !strings.HasPrefix(currentArgument, "--") || strings.Contains(currentArgument, "=") {
			normalized = append(normalized, currentArgument)
			continue
		}
		flagName := strings.TrimPrefix(currentArgument, "--")
		if _, isBooleanFlag := booleanFlagNames[flagName]; !isBooleanFlag || argumentIndex+1 >= len(arguments) {
			normalized = append(normalized, currentArgument)
			continue
		}
		nextArgument := arguments[argumentIndex+1]
		if strings.HasPrefix(nextArgument, "-") {
			normalized = append(normalized, currentArgument)
			continue
		}
		if _, recognized := parseBooleanLiteral(nextArgument); !recognized {
			normalized = append(normalized, currentArgument)
			continue
		}
		normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, nextArgument))
		argumentIndex++
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, names map[string]struct{}) {
	if command == nil || names == nil {
		return
	}
	record := func(flagSet *pflag.FlagSet) {
		if flagSet == nil {
			return
		}
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag == nil || flag.Value == nil {
				return
			}
			if flag.Value.Type() == booleanFlagTypeName {
				names[flag.Name] = struct{}{}
			}
		})
	}
	record(command.PersistentFlags())
	record(command.Flags())
	for _, subcommand := range command.Commands() {
		collectBooleanFlagNames(subcommand, names)
	}
}
