package errors

import (
	"fmt"
	"strings"
)

// Common error messages for appcore front-ends.
// These templates keep remediation guidance consistent across commands.

// MissingFile creates an error for a file that could not be located.
func MissingFile(failure *FileLocateFailure) *CLIError {
	remediation := []string{"Check that the file exists and is readable"}
	if failure.Name == "pyproject.toml" {
		remediation = []string{
			"Run the command from inside the project checkout",
			"Or check GIT_CEILING_DIRECTORIES does not stop the search early",
		}
	}
	return &CLIError{
		Category:    Prerequisite,
		Message:     failure.Error(),
		Remediation: remediation,
		Cause:       failure,
	}
}

// ConfigFileNotFound creates an error for an explicit config file that does not exist.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Verify the path passed with --config",
		"Or omit --config to use the user configuration file",
	)
}

// ConfigParseError creates an error for an invalid TOML document.
func ConfigParseError(line int, err error) *CLIError {
	message := "failed to parse configuration"
	if line > 0 {
		message = fmt.Sprintf("failed to parse configuration (line %d)", line)
	}
	return WrapWithMessage(err, Configuration, message,
		"Check the file for TOML syntax errors",
		"Check every file listed under 'includes'",
	)
}

// ConfigEditFailed creates an error for a configuration edit that could not be applied.
func ConfigEditFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to apply configuration edit",
		"Check that the edited address exists in the configuration",
		"Array edits require every element to carry the identifier key",
	)
}

// InvalidPresentation creates an error for an unknown presentation name.
func InvalidPresentation(name string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid presentation: %s", name),
		"Valid presentations: "+strings.Join(valid, ", "),
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'appcore <command> --help' to see valid options",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
