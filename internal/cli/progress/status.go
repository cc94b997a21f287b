package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show mission status for a chapter",
	Long:  "Show each mission in a chapter with your progress and unlock state",
	RunE: func(cmd *cobra.Command, args []string) error {
		chapterID, _ := cmd.Flags().GetString("chapter-id")
		if chapterID == "" {
			return fmt.Errorf("--chapter-id is required")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: wordquest auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/chapters/%s/status",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"),
			chapterID)

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		missions, _ := data["missions"].([]interface{})

		fmt.Printf("\nMissions (%d):\n\n", len(missions))
		for _, item := range missions {
			status := item.(map[string]interface{})
			mission := status["mission"].(map[string]interface{})

			marker := "🔒"
			if status["unlocked"] == true {
				marker = "▶"
			}
			if status["completed"] == true {
				marker = "✓"
			}

			fmt.Printf("%s %.0f. %s [%s]\n", marker, mission["position"], mission["title"], mission["mode"])
			fmt.Printf("   ID: %s\n", mission["id"])
			if prog, ok := status["progress"].(map[string]interface{}); ok {
				fmt.Printf("   Best: %.0f%%  Attempts: %.0f  Points: %.0f\n",
					prog["best_score"], prog["attempts"], prog["points"])
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	statusCmd.Flags().String("chapter-id", "", "Chapter ID (required)")
	statusCmd.MarkFlagRequired("chapter-id")
	ProgressCmd.AddCommand(statusCmd)
}
