// Package distro maps Linux distribution families to their update-check
// profiles. The family set is closed; adding support for a new distribution
// means adding a profile here, not configuring one at runtime.
package distro

import (
	"fmt"
	"sort"
	"strings"
)

// Family identifies a group of distributions sharing a package manager.
type Family string

const (
	FamilyArch   Family = "arch"
	FamilyDebian Family = "debian"
	FamilyGentoo Family = "gentoo"
	FamilyRHEL   Family = "rhel-family"
	FamilySUSE   Family = "suse"
)

// Profile holds the commands and tools for one family. Command strings are
// opaque shell lines; callers hand them to a runner without inspecting them.
type Profile struct {
	Family Family

	// PreCheck refreshes package metadata before the real check. Empty for
	// families whose check command is self-contained.
	PreCheck string

	// Check prints one line per pending update and nothing when the system
	// is current.
	Check string

	// Tools are the external executables the commands need, beyond the
	// baseline every profile shares.
	Tools []string
}

var profiles = map[Family]Profile{
	FamilyArch: {
		Family: FamilyArch,
		Check:  `pacman -Qu`,
		Tools:  []string{"pacman"},
	},
	FamilyDebian: {
		Family: FamilyDebian,
		Check:  `apt list --upgradable 2>/dev/null | awk -F'[/ ]' '/upgradable from/ {gsub(/\]/, "", $NF); print $1, $NF, "->", $3}'`,
		Tools:  []string{"apt"},
	},
	FamilyGentoo: {
		Family:   FamilyGentoo,
		PreCheck: `emerge --sync --quiet`,
		Check:    `emerge --pretend --update --deep --newuse --color=n @world 2>/dev/null | awk '/^\[ebuild/ {old = $NF; gsub(/[][]/, "", old); new = $4; name = new; sub(/-[0-9].*$/, "", name); print name, old, "->", new}'`,
		Tools:    []string{"emerge"},
	},
	FamilyRHEL: {
		Family:   FamilyRHEL,
		PreCheck: `dnf -q check-update --refresh > /dev/null`,
		Check:    `dnf -q check-update | awk 'NF >= 3 && $1 != "Obsoleting" {print $1, "->", $2}'`,
		Tools:    []string{"dnf"},
	},
	FamilySUSE: {
		Family: FamilySUSE,
		Check:  `zypper --non-interactive list-updates | awk -F '|' 'NR > 2 && NF >= 5 {gsub(/ /, ""); print $3, $4, "->", $5}'`,
		Tools:  []string{"zypper"},
	},
}

// UnsupportedFamilyError indicates a family outside the supported set.
type UnsupportedFamilyError struct {
	Family string
}

func (e *UnsupportedFamilyError) Error() string {
	return fmt.Sprintf("unsupported distribution family %q (supported: %s)", e.Family, strings.Join(Names(), ", "))
}

// Resolve returns the profile for the given family name. Lookup is
// case-insensitive and ignores surrounding whitespace.
func Resolve(name string) (Profile, error) {
	family := Family(strings.ToLower(strings.TrimSpace(name)))

	p, ok := profiles[family]
	if !ok {
		return Profile{}, &UnsupportedFamilyError{Family: name}
	}

	// Copy the tool list so callers cannot mutate the table.
	p.Tools = append([]string(nil), p.Tools...)
	return p, nil
}

// Families returns the supported families in sorted order.
func Families() []Family {
	out := make([]Family, 0, len(profiles))
	for f := range profiles {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names returns the supported family names in sorted order.
func Names() []string {
	families := Families()
	out := make([]string, len(families))
	for i, f := range families {
		out[i] = string(f)
	}
	return out
}
