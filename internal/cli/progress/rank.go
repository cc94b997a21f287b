package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the leaderboard and your standing",
	Long:  "Show the top players by total points and your own rank",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/leaderboard?limit=%d",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"),
			limit)

		resp, err := http.Get(serverURL)
		if err != nil {
			return fmt.Errorf("failed to get leaderboard: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		entries, _ := data["leaderboard"].([]interface{})

		fmt.Printf("\nLeaderboard (top %d):\n\n", len(entries))
		for _, item := range entries {
			e := item.(map[string]interface{})
			fmt.Printf("  %3.0f. %-20s %8.0f pts\n", e["rank"], e["username"], e["points"])
		}

		// Own standing needs a token; skip quietly when logged out
		token := viper.GetString("user.token")
		if token == "" {
			return nil
		}

		rankURL := fmt.Sprintf("http://%s:%d/api/v1/me/rank",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("GET", rankURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		rankResp, err := client.Do(req)
		if err != nil {
			return nil
		}
		defer rankResp.Body.Close()

		rankBody, _ := io.ReadAll(rankResp.Body)
		var rankResult map[string]interface{}
		json.Unmarshal(rankBody, &rankResult)

		if rankResult["success"] == true {
			me := rankResult["data"].(map[string]interface{})
			fmt.Printf("\nYour standing: rank %.0f of %.0f with %.0f points\n",
				me["rank"], me["total_users"], me["points"])
		}

		return nil
	},
}

func init() {
	rankCmd.Flags().Int("limit", 10, "Number of entries to show")
	ProgressCmd.AddCommand(rankCmd)
}
