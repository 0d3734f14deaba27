package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"collabviz/genrenet/internal/config"
	"collabviz/genrenet/internal/db"
	"collabviz/genrenet/internal/logging"
	"collabviz/genrenet/internal/network"
	"github.com/spf13/cobra"
)

const dbFileName = ".genrenet.db"

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "genrenet",
	Short: "Genre collaboration network engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		closer, err := logging.Setup(loaded.LogOptions())
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		cfg = loaded
		logCloser = closer
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the command tree. The log file is closed even when the command fails.
func run(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if cerr := closeLog(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func closeLog() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to "+dbFileName+" database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML/TOML/JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// DiscoverDB finds the database path using priority: env > flag > config > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("GENRENET_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Config file
	if cfg != nil && cfg.DB.Path != "" {
		if _, err := os.Stat(cfg.DB.Path); err == nil {
			return cfg.DB.Path, nil
		}
		return "", fmt.Errorf("database not found at db.path: %s", cfg.DB.Path)
	}

	// 4. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, dbFileName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 5. XDG fallback
	if p := xdgPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no %s found (set GENRENET_DB, use --db, or run `genrenet import` first)", dbFileName)
}

func xdgPath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "genrenet", "genrenet.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "genrenet", "genrenet.db")
}

// OpenDatabase discovers and opens the database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	slog.Debug("Opening database", "path", path)
	return db.OpenDB(path)
}

// LoadDataset opens the database and reads the full collaboration dataset
func LoadDataset() (*network.Dataset, error) {
	d, err := OpenDatabase()
	if err != nil {
		return nil, err
	}
	defer d.Close()

	ds, err := network.DatasetFromDB(d)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded dataset", "records", ds.Len())
	return ds, nil
}

// engineConfig is the loaded config's engine section, or engine defaults before load
func engineConfig() *network.Config {
	if cfg == nil {
		return network.DefaultConfig()
	}
	return cfg.EngineConfig()
}
