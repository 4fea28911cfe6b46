package main

import (
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pkgherald/pkgherald/internal/distro"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List supported distribution families",
	Long:  `Show each supported family with the commands it runs and the tools it needs.`,
	Run: func(cmd *cobra.Command, args []string) {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"FAMILY", "PRE-CHECK", "UPDATE CHECK", "TOOLS"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetHeaderLine(false)
		table.SetTablePadding("\t")
		table.SetNoWhiteSpace(true)

		for _, family := range distro.Families() {
			profile, err := distro.Resolve(string(family))
			if err != nil {
				continue
			}
			preCheck := profile.PreCheck
			if preCheck == "" {
				preCheck = "-"
			}
			table.Append([]string{
				string(family),
				preCheck,
				profile.Check,
				strings.Join(profile.Tools, ", "),
			})
		}
		table.Render()
	},
}
