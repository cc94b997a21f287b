package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List your achievements",
	Long:  "List the achievements you have unlocked, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: wordquest auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/me/achievements",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get achievements: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		achievements, _ := data["achievements"].([]interface{})

		if len(achievements) == 0 {
			fmt.Println("\nNo achievements yet. Go play some missions!")
			return nil
		}

		fmt.Printf("\n🏆 Achievements (%d):\n\n", len(achievements))
		for _, item := range achievements {
			a := item.(map[string]interface{})
			fmt.Printf("  %s (+%.0f points)\n", a["title"], a["points"])
			fmt.Printf("    %s\n", a["description"])
			fmt.Printf("    Unlocked: %s\n\n", a["unlocked_at"])
		}

		return nil
	},
}

func init() {
	ProgressCmd.AddCommand(achievementsCmd)
}
