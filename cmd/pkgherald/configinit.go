package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pkgherald/pkgherald/internal/config"
)

var initForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented starter configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := prefix
		if dir == "" {
			dir = config.DefaultPrefix
		}
		path := filepath.Join(dir, "config.yaml")

		if err := config.WriteTemplate(path, initForce); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)
		fmt.Println("Fill in bot_token and chat_id before the first run.")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
