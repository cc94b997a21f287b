package books

import "github.com/spf13/cobra"

var BooksCmd = &cobra.Command{
	Use:   "books",
	Short: "Browse the book catalog",
	Long:  "List books and inspect their chapters and missions",
}

func init() {
	// Commands added in list.go and chapters.go
}
