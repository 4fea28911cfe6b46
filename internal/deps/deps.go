// Package deps verifies that the external tools a profile needs are present
// before any of them is executed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Baseline names the tools every profile needs regardless of family. The
// check commands are shell lines and most of them pipe through awk.
var Baseline = []string{"sh", "awk"}

// LookupFunc resolves a tool name to a path, exec.LookPath-shaped.
type LookupFunc func(name string) (string, error)

// MissingToolsError lists every required tool that could not be found.
type MissingToolsError struct {
	Tools []string
}

func (e *MissingToolsError) Error() string {
	return fmt.Sprintf("missing required tools: %s", strings.Join(e.Tools, ", "))
}

// Status is the probe result for one tool.
type Status struct {
	Tool string
	Path string
	OK   bool
}

// Union merges tool sets, deduplicating while keeping first-seen order.
func Union(sets ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range sets {
		for _, tool := range set {
			if seen[tool] {
				continue
			}
			seen[tool] = true
			out = append(out, tool)
		}
	}
	return out
}

// Probe looks up every tool and reports each result. A nil lookup uses
// exec.LookPath.
func Probe(tools []string, lookup LookupFunc) []Status {
	if lookup == nil {
		lookup = exec.LookPath
	}

	out := make([]Status, 0, len(tools))
	for _, tool := range tools {
		path, err := lookup(tool)
		out = append(out, Status{Tool: tool, Path: path, OK: err == nil})
	}
	return out
}

// Verify probes every tool and returns a MissingToolsError naming all the
// absent ones, so a user fixes the full list in one pass.
func Verify(tools []string, lookup LookupFunc) error {
	var missing []string
	for _, st := range Probe(tools, lookup) {
		if !st.OK {
			missing = append(missing, st.Tool)
		}
	}
	if len(missing) > 0 {
		return &MissingToolsError{Tools: missing}
	}
	return nil
}
