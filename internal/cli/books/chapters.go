package books

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List a book's chapters",
	Long:  "List the chapters of a book in reading order",
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, _ := cmd.Flags().GetString("book-id")
		if bookID == "" {
			return fmt.Errorf("--book-id is required")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/books/%s/chapters",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"),
			bookID)

		resp, err := http.Get(serverURL)
		if err != nil {
			return fmt.Errorf("failed to list chapters: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		chapters, _ := data["chapters"].([]interface{})

		fmt.Printf("\nChapters (%d):\n\n", len(chapters))
		for _, item := range chapters {
			ch := item.(map[string]interface{})
			fmt.Printf("%.0f. %s\n", ch["position"], ch["title"])
			fmt.Printf("   ID: %s\n", ch["id"])
			if desc, ok := ch["description"].(string); ok && desc != "" {
				fmt.Printf("   %s\n", desc)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	chaptersCmd.Flags().String("book-id", "", "Book ID (required)")
	chaptersCmd.MarkFlagRequired("book-id")
	BooksCmd.AddCommand(chaptersCmd)
}
