package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wordquest/internal/cli/auth"
	"wordquest/internal/cli/books"
	cliconfig "wordquest/internal/cli/config"
	"wordquest/internal/cli/progress"
)

var rootCmd = &cobra.Command{
	Use:   "wordquest",
	Short: "WordQuest command-line client",
	Long:  "Play vocabulary missions, track progress, and browse books from the terminal",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(books.BooksCmd)
	rootCmd.AddCommand(progress.ProgressCmd)
	rootCmd.AddCommand(cliconfig.ConfigCmd)
}

// initConfig loads ~/.wordquest/config.yaml and sets connection defaults
func initConfig() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.http_port", 8080)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	viper.SetConfigFile(filepath.Join(home, ".wordquest", "config.yaml"))
	viper.ReadInConfig() // missing file is fine; defaults apply
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
