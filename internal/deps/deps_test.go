package deps

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// fakeLookup treats the given names as installed and everything else as
// missing.
func fakeLookup(installed ...string) LookupFunc {
	set := make(map[string]bool, len(installed))
	for _, name := range installed {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
}

func TestVerifyAllPresent(t *testing.T) {
	err := Verify([]string{"sh", "awk", "apt"}, fakeLookup("sh", "awk", "apt"))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestVerifyCollectsAllMissing(t *testing.T) {
	err := Verify([]string{"sh", "awk", "dnf"}, fakeLookup("sh"))
	if err == nil {
		t.Fatal("Verify() error = nil, want MissingToolsError")
	}

	var missing *MissingToolsError
	if !errors.As(err, &missing) {
		t.Fatalf("error type = %T, want *MissingToolsError", err)
	}
	if want := []string{"awk", "dnf"}; !reflect.DeepEqual(missing.Tools, want) {
		t.Errorf("Tools = %v, want %v", missing.Tools, want)
	}
}

func TestUnionDeduplicates(t *testing.T) {
	got := Union([]string{"sh", "awk"}, []string{"awk", "pacman"}, []string{"sh"})
	want := []string{"sh", "awk", "pacman"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}

func TestProbeReportsPaths(t *testing.T) {
	statuses := Probe([]string{"sh", "zypper"}, fakeLookup("sh"))
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}

	if !statuses[0].OK || statuses[0].Path != "/usr/bin/sh" {
		t.Errorf("sh status = %+v, want ok with path", statuses[0])
	}
	if statuses[1].OK {
		t.Errorf("zypper status = %+v, want missing", statuses[1])
	}
}

func TestProbeDefaultLookup(t *testing.T) {
	// sh is part of the baseline for a reason; it exists on any machine
	// these tests run on.
	statuses := Probe([]string{"sh"}, nil)
	if len(statuses) != 1 || !statuses[0].OK {
		t.Fatalf("expected sh to be present, got %+v", statuses)
	}
}

func TestMissingToolsErrorMessage(t *testing.T) {
	err := &MissingToolsError{Tools: []string{"dnf", "awk"}}
	if got, want := err.Error(), "missing required tools: dnf, awk"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
