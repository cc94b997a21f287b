package config

import "github.com/spf13/cobra"

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "CLI configuration",
	Long:  "Inspect the WordQuest CLI configuration and login state",
}

func init() {
	// Commands added in show.go
}
