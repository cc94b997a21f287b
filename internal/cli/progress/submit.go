package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit mission answers",
	Long: `Submit answers for a mission. Provide answers matching the mission mode:
  keywords:           --words sol,luna,estrella
  completarFrase:     --answers-file answers.json  ({"b1": "era", "b2": "bosque"})
  ordenar-secuencia:  --order s2,s1,s3 [--hints-used 1]`,
	RunE: func(cmd *cobra.Command, args []string) error {
		missionID, _ := cmd.Flags().GetString("mission-id")
		words, _ := cmd.Flags().GetString("words")
		answersFile, _ := cmd.Flags().GetString("answers-file")
		order, _ := cmd.Flags().GetString("order")
		hintsUsed, _ := cmd.Flags().GetInt("hints-used")

		if missionID == "" {
			return fmt.Errorf("--mission-id is required")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: wordquest auth login")
		}

		body := map[string]interface{}{}
		if words != "" {
			body["selected_words"] = strings.Split(words, ",")
		}
		if order != "" {
			body["order"] = strings.Split(order, ",")
			body["hints_used"] = hintsUsed
		}
		if answersFile != "" {
			raw, err := os.ReadFile(answersFile)
			if err != nil {
				return fmt.Errorf("failed to read answers file: %w", err)
			}
			var answers map[string]string
			if err := json.Unmarshal(raw, &answers); err != nil {
				return fmt.Errorf("invalid answers file: %w", err)
			}
			body["answers"] = answers
		}

		jsonBody, _ := json.Marshal(body)
		serverURL := fmt.Sprintf("http://%s:%d/api/v1/missions/%s/submit",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"),
			missionID)

		req, _ := http.NewRequest("POST", serverURL, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to submit: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		fmt.Printf("✓ Mission submitted!\n")
		fmt.Printf("  Score: %.0f%%\n", data["score"])
		fmt.Printf("  Best score: %.0f%%\n", data["best_score"])
		fmt.Printf("  Attempts: %.0f\n", data["attempts"])
		fmt.Printf("  Points awarded: %.0f\n", data["points_awarded"])
		fmt.Printf("  Total points: %.0f\n", data["total_points"])
		if data["unlocks_next"] == true {
			fmt.Println("  ✓ Next mission unlocked!")
		}
		if achievements, ok := data["new_achievements"].([]interface{}); ok && len(achievements) > 0 {
			fmt.Println("\n🏆 New achievements:")
			for _, item := range achievements {
				a := item.(map[string]interface{})
				fmt.Printf("  %s (+%.0f points)\n", a["title"], a["points"])
			}
		}

		return nil
	},
}

func init() {
	submitCmd.Flags().String("mission-id", "", "Mission ID (required)")
	submitCmd.Flags().String("words", "", "Comma-separated selected words (keywords mode)")
	submitCmd.Flags().String("answers-file", "", "JSON file of blank answers (completarFrase mode)")
	submitCmd.Flags().String("order", "", "Comma-separated step IDs (ordenar-secuencia mode)")
	submitCmd.Flags().Int("hints-used", 0, "Hints consumed (ordenar-secuencia mode)")
	submitCmd.MarkFlagRequired("mission-id")
	ProgressCmd.AddCommand(submitCmd)
}
