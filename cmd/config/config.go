package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/textoc/textoc/pkg/gitsync"
	"github.com/textoc/textoc/pkg/mirror"
	"github.com/textoc/textoc/pkg/store"
	"github.com/textoc/textoc/pkg/workspace"
)

var cfgFile string

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "textoc")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TEXTOC")

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "textoc")
	viper.SetDefault("data_dir", dataDir)
	viper.SetDefault("notes_dir", "")
	viper.SetDefault("save_delay", "1s")
	viper.SetDefault("log_level", "warn")

	// Missing config file is fine, defaults cover everything.
	_ = viper.ReadInConfig()
}

// NewLogger builds the shared logger from the configured level.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// DataDir returns the configured data directory.
func DataDir() string {
	return viper.GetString("data_dir")
}

// NotesDir returns the directory holding the markdown mirror. It defaults
// to a textoc-notes folder inside the data directory.
func NotesDir() string {
	if dir := viper.GetString("notes_dir"); dir != "" {
		return dir
	}
	return filepath.Join(DataDir(), "textoc-notes")
}

// InitWorkspace opens the database and wires up the full workspace manager:
// store, markdown mirror, and git syncer.
func InitWorkspace() (*workspace.Manager, error) {
	logger := NewLogger()

	dbPath := filepath.Join(DataDir(), "textoc.db")
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	notesDir := NotesDir()
	delay := viper.GetDuration("save_delay")
	if delay <= 0 {
		delay = time.Second
	}

	mgr := workspace.New(st,
		workspace.WithMirror(mirror.New(notesDir)),
		workspace.WithSyncer(gitsync.New(notesDir, logger)),
		workspace.WithLogger(logger),
		workspace.WithDebounce(delay),
	)
	if err := mgr.Load(); err != nil {
		mgr.Close()
		return nil, err
	}
	return mgr, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/textoc/config.yaml)")
}
