// Package report turns a check result into the text that reaches the chat:
// composing the body and splitting it into transport-sized chunks.
package report

import (
	"fmt"
	"strings"

	"github.com/pkgherald/pkgherald/internal/checker"
	"github.com/pkgherald/pkgherald/internal/sysinfo"
)

// UpToDateLine closes a report when nothing is pending.
const UpToDateLine = "System is up to date."

// Compose builds the report body: three identity lines, then either the
// up-to-date line or a summary line followed by every update line verbatim.
// Pure; safe to call whatever the outcome was.
func Compose(info sysinfo.Info, result checker.Result) string {
	lines := make([]string, 0, 4+len(result.Lines))
	lines = append(lines,
		"Host: "+info.Hostname,
		fmt.Sprintf("OS: %s (%s)", info.OS, info.Arch),
		"Public IP: "+info.PublicIP,
	)

	if !result.Found {
		lines = append(lines, UpToDateLine)
		return strings.Join(lines, "\n")
	}

	if result.Count == 1 {
		lines = append(lines, "There is 1 update available:")
	} else {
		lines = append(lines, fmt.Sprintf("There are %d updates available:", result.Count))
	}
	lines = append(lines, result.Lines...)

	return strings.Join(lines, "\n")
}
