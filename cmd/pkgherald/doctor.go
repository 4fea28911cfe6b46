package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pkgherald/pkgherald/internal/config"
	"github.com/pkgherald/pkgherald/internal/deps"
	"github.com/pkgherald/pkgherald/internal/distro"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the external tools an update check needs",
	Long: `Resolve the distribution family the same way a real run would, then
probe for every required tool. Exits non-zero when anything is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, prefix)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		family := distroFlag
		if family == "" {
			family = cfg.Distro
		}
		if family == "" {
			detected, err := distro.Detect("")
			if err != nil {
				return err
			}
			family = string(detected)
		}

		profile, err := distro.Resolve(family)
		if err != nil {
			return err
		}

		fmt.Printf("Family: %s\n\n", profile.Family)

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"TOOL", "STATUS", "PATH"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderLine(false)
		table.SetTablePadding("\t")
		table.SetNoWhiteSpace(true)

		missing := 0
		for _, st := range deps.Probe(deps.Union(deps.Baseline, profile.Tools), nil) {
			status := green("ok")
			path := st.Path
			if !st.OK {
				status = red("missing")
				path = "-"
				missing++
			}
			table.Append([]string{st.Tool, status, path})
		}
		table.Render()

		if missing > 0 {
			return fmt.Errorf("%d required %s missing", missing, plural(missing, "tool is", "tools are"))
		}
		return nil
	},
}
