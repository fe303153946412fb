package types

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Normalize.NullPolicy = "guess"
	cfg.GeAnno.Threshold = 1.5
	cfg.Output.Formats = []string{"pdf"}
	cfg.Eval.Workers = 0

	errs := NewConfigValidator().Validate(cfg)
	if !errs.HasErrors() {
		t.Fatal("expected validation errors")
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"normalize.null_policy", "geanno.threshold", "output.formats[0]", "eval.workers"} {
		if !fields[want] {
			t.Errorf("missing error for %s", want)
		}
	}
	if !strings.Contains(errs.Error(), "configuration validation failed") {
		t.Errorf("unexpected message: %s", errs.Error())
	}
}

func TestValidateInputDir(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateInputDir(dir); err != nil {
		t.Errorf("ValidateInputDir(%s) = %v", dir, err)
	}
	if err := ValidateInputDir(dir + "/missing"); err == nil {
		t.Error("expected error for missing directory")
	}
}
