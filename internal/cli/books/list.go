package books

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available books",
	Long:  "List catalog books, optionally filtered by search query and difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		params := url.Values{}
		if query != "" {
			params.Set("q", query)
		}
		if difficulty != "" {
			params.Set("difficulty", difficulty)
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/books?%s",
			viper.GetString("server.host"),
			viper.GetInt("server.http_port"),
			params.Encode())

		resp, err := http.Get(serverURL)
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		books, _ := data["data"].([]interface{})

		fmt.Printf("\nBooks (%d):\n\n", len(books))
		for i, item := range books {
			book := item.(map[string]interface{})
			fmt.Printf("%d. %s\n", i+1, book["title"])
			fmt.Printf("   ID: %s\n", book["id"])
			if author, ok := book["author"].(string); ok && author != "" {
				fmt.Printf("   Author: %s\n", author)
			}
			fmt.Printf("   Difficulty: %s\n", book["difficulty"])
			if chapters, ok := book["chapter_count"].(float64); ok {
				fmt.Printf("   Chapters: %.0f\n", chapters)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	listCmd.Flags().String("query", "", "Search by title or author")
	listCmd.Flags().String("difficulty", "", "Filter by difficulty (beginner, intermediate, advanced)")
	BooksCmd.AddCommand(listCmd)
}
