package buildinfo

import "testing"

func TestSetVersionOverridesDefault(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	SetVersion("")
	if got := Version(); got == "" {
		t.Fatalf("expected a fallback version")
	}

	SetVersion("v0.3.1")
	if got := Version(); got != "v0.3.1" {
		t.Fatalf("expected overridden version, got %q", got)
	}
}
