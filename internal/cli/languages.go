package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codectx/internal/extractor"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their file extensions",
	Run: func(cmd *cobra.Command, args []string) {
		registry := extractor.New().Registry()
		for _, name := range registry.Names() {
			fmt.Printf("%-12s %s\n", name, strings.Join(registry.Extensions(name), " "))
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
