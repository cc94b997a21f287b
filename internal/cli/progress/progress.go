package progress

import "github.com/spf13/cobra"

var ProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Play missions and track progress",
	Long:  "Submit mission answers, check unlock status, and view achievements",
}

func init() {
	// Commands added in submit.go, status.go, achievements.go and rank.go
}
