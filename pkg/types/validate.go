// Package types provides core data structures for annobench
package types

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// HasErrors returns true if there are any validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ConfigValidator validates configuration settings
type ConfigValidator struct {
	errors ValidationErrors
}

// NewConfigValidator creates a new config validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate performs comprehensive validation of the config
func (v *ConfigValidator) Validate(config *Config) ValidationErrors {
	v.errors = nil

	v.validateInputSettings(config.Input)
	v.validateNormalizeSettings(config.Normalize)
	v.validateGeAnnoSettings(config.GeAnno)
	v.validateOutputSettings(config.Output)
	v.validateEvalSettings(config.Eval)

	return v.errors
}

func (v *ConfigValidator) addError(field, message string, value interface{}) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

func (v *ConfigValidator) validateInputSettings(in InputSettings) {
	if in.TablesFile != "" {
		if _, err := os.Stat(in.TablesFile); os.IsNotExist(err) {
			v.addError("input.tables_file", "file does not exist", in.TablesFile)
		}
	}
	if in.GeAnnoAUCFile != "" {
		if _, err := os.Stat(in.GeAnnoAUCFile); os.IsNotExist(err) {
			v.addError("input.geanno_auc_file", "file does not exist", in.GeAnnoAUCFile)
		}
	}
}

func (v *ConfigValidator) validateNormalizeSettings(n NormalizeSettings) {
	switch n.NullPolicy {
	case NullPolicyPropagate, NullPolicyZeroFill:
	default:
		v.addError("normalize.null_policy", "must be propagate or zero_fill", n.NullPolicy)
	}
}

func (v *ConfigValidator) validateGeAnnoSettings(g GeAnnoSettings) {
	if g.Window <= 0 {
		v.addError("geanno.window", "must be positive", g.Window)
	}
	if g.Step <= 0 {
		v.addError("geanno.step", "must be positive", g.Step)
	}
	if g.Step > g.Window {
		v.addError("geanno.step", "should not exceed the window", g.Step)
	}
	if g.Threshold <= 0 || g.Threshold > 1 {
		v.addError("geanno.threshold", "must be in (0, 1]", g.Threshold)
	}
	if g.Model == "" {
		v.addError("geanno.model", "should not be empty", g.Model)
	}
}

func (v *ConfigValidator) validateOutputSettings(o OutputSettings) {
	if o.Decimals < 0 || o.Decimals > 10 {
		v.addError("output.decimals", "must be between 0 and 10", o.Decimals)
	}

	validFormats := map[string]bool{
		"csv": true, "json": true, "markdown": true, "md": true, "text": true, "txt": true,
	}
	if len(o.Formats) == 0 {
		v.addError("output.formats", "at least one format is required", o.Formats)
	}
	for i, f := range o.Formats {
		if !validFormats[strings.ToLower(f)] {
			v.addError(fmt.Sprintf("output.formats[%d]", i), "unknown format", f)
		}
	}
}

func (v *ConfigValidator) validateEvalSettings(e EvalSettings) {
	if e.Workers < 1 {
		v.addError("eval.workers", "must be at least 1", e.Workers)
	}
	if e.Workers > 64 {
		v.addError("eval.workers", "should not exceed 64", e.Workers)
	}
	if len(e.Labels) == 0 {
		v.addError("eval.labels", "at least one label is required", e.Labels)
	}
}

// ValidateConfig is a convenience function to validate a config
func ValidateConfig(config *Config) error {
	validator := NewConfigValidator()
	errors := validator.Validate(config)
	if errors.HasErrors() {
		return errors
	}
	return nil
}

// ValidateInputDir validates an input directory exists
func ValidateInputDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is a file, not a directory: %s", path)
	}
	return nil
}

// ValidateInputFile validates an input file exists and is readable
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory, not a file: %s", path)
	}
	return nil
}
