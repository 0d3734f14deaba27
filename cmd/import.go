package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"collabviz/genrenet/internal/db"
	"collabviz/genrenet/internal/loader"
	"github.com/spf13/cobra"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import collaboration rows from a CSV file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening csv: %w", err)
		}
		defer f.Close()

		rows, err := loader.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		path, err := importTarget()
		if err != nil {
			return err
		}
		d, err := db.OpenDB(path)
		if err != nil {
			return err
		}
		defer d.Close()

		if importReplace {
			if err := d.DeleteAll(); err != nil {
				return fmt.Errorf("clearing collaborations: %w", err)
			}
		}

		n, err := d.InsertCollaborations(rows)
		if err != nil {
			return err
		}
		total, err := d.CountCollaborations()
		if err != nil {
			return err
		}
		slog.Info("Imported collaborations", "file", args[0], "rows", n, "total", total, "db", path)
		fmt.Printf("Imported %d rows into %s (%d total)\n", n, path, total)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Delete existing rows before importing")
	rootCmd.AddCommand(importCmd)
}

// importTarget is the discovered database, or a new one at --db, db.path, or the working directory
func importTarget() (string, error) {
	if path, err := DiscoverDB(); err == nil {
		return path, nil
	}
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, dbFileName), nil
}
