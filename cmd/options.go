package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the genres and years available as filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		genres, err := d.DistinctGenres()
		if err != nil {
			return fmt.Errorf("listing genres: %w", err)
		}
		years, err := d.DistinctYears()
		if err != nil {
			return fmt.Errorf("listing years: %w", err)
		}

		if optionsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"genres": genres, "years": years})
		}

		yearStrs := make([]string, len(years))
		for i, y := range years {
			yearStrs[i] = strconv.Itoa(y)
		}
		fmt.Printf("Years (%d): %s\n", len(years), strings.Join(yearStrs, ", "))
		fmt.Printf("Genres (%d):\n", len(genres))
		for _, g := range genres {
			fmt.Printf("  %s\n", g)
		}
		return nil
	},
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(optionsCmd)
}
