package distro

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkgherald/pkgherald/internal/logging"
)

// DefaultOSRelease is where Linux systems describe themselves.
const DefaultOSRelease = "/etc/os-release"

var idToFamily = map[string]Family{
	"arch":                FamilyArch,
	"archarm":             FamilyArch,
	"manjaro":             FamilyArch,
	"endeavouros":         FamilyArch,
	"debian":              FamilyDebian,
	"ubuntu":              FamilyDebian,
	"raspbian":            FamilyDebian,
	"linuxmint":           FamilyDebian,
	"pop":                 FamilyDebian,
	"gentoo":              FamilyGentoo,
	"fedora":              FamilyRHEL,
	"rhel":                FamilyRHEL,
	"centos":              FamilyRHEL,
	"almalinux":           FamilyRHEL,
	"rocky":               FamilyRHEL,
	"ol":                  FamilyRHEL,
	"amzn":                FamilyRHEL,
	"opensuse":            FamilySUSE,
	"opensuse-leap":       FamilySUSE,
	"opensuse-tumbleweed": FamilySUSE,
	"sles":                FamilySUSE,
	"sled":                FamilySUSE,
}

// Detect reads the os-release file at path (DefaultOSRelease when empty) and
// maps the host to a supported family. The ID field is matched first; when it
// is unknown, each ID_LIKE token is tried in order.
func Detect(path string) (Family, error) {
	if path == "" {
		path = DefaultOSRelease
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	vars := parseOSRelease(string(content))
	log := logging.L("distro")

	id := vars["ID"]
	if family, ok := idToFamily[id]; ok {
		log.Debugw("detected distribution", "id", id, "family", family)
		return family, nil
	}

	for _, token := range strings.Fields(vars["ID_LIKE"]) {
		if family, ok := idToFamily[token]; ok {
			log.Debugw("detected distribution via ID_LIKE", "id", id, "like", token, "family", family)
			return family, nil
		}
	}

	if id == "" {
		id = "unknown"
	}
	return "", &UnsupportedFamilyError{Family: id}
}

// parseOSRelease reads KEY=value lines, stripping surrounding quotes.
func parseOSRelease(content string) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		vars[key] = val
	}
	return vars
}
