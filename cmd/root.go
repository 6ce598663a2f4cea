package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lightnovel-reader/config"
	"lightnovel-reader/downloader/lightnovelpub"
	"lightnovel-reader/store"
)

type rootArgs struct {
	baseURL   string
	storage   string
	render    bool
	ephemeral bool
	logLevel  string
	timeout   time.Duration
}

var (
	rArgs rootArgs

	cfg    *config.Config
	stores *store.Stores
	source *lightnovelpub.LightNovelPub
)

var RootCmd = &cobra.Command{
	Use:               "lightnovel-reader",
	Short:             "Browse, read and export light novels",
	Long:              "Browse, read and export light novels from the terminal, or serve them as a JSON API",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&rArgs.baseURL, "base-url", "", "content site origin (env NOVEL_BASE_URL)")
	flags.StringVar(&rArgs.storage, "storage", "", "storage backend: file, sqlite, redis or memory (env NOVEL_STORAGE)")
	flags.BoolVar(&rArgs.render, "render", false, "render pages in headless Chrome (env NOVEL_RENDER)")
	flags.BoolVar(&rArgs.ephemeral, "ephemeral", false, "keep bookmarks, history and settings in memory only")
	flags.StringVar(&rArgs.logLevel, "log-level", "", "log level (env LOG_LEVEL)")
	flags.DurationVar(&rArgs.timeout, "timeout", 0, "HTTP timeout (env NOVEL_HTTP_TIMEOUT)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = rArgs.baseURL
	}
	if flags.Changed("storage") {
		cfg.Storage = rArgs.storage
	}
	if flags.Changed("render") {
		cfg.Render = rArgs.render
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rArgs.logLevel
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = rArgs.timeout
	}
	if rArgs.ephemeral {
		cfg.Storage = "memory"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %v", err)
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())

	storage, err := store.Open(contextOf(cmd), cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %v", err)
	}
	stores = store.Load(contextOf(cmd), storage, lipgloss.HasDarkBackground)
	return nil
}

func teardown() error {
	if source != nil {
		source.Close()
		source = nil
	}
	if stores != nil {
		err := stores.Close()
		stores = nil
		return err
	}
	return nil
}

// getSource creates the site client on first use so that commands that
// only touch local state never start a browser.
func getSource() (*lightnovelpub.LightNovelPub, error) {
	if source != nil {
		return source, nil
	}
	s, err := lightnovelpub.New(lightnovelpub.Options{
		BaseURL:    cfg.BaseURL,
		RetryCount: cfg.RetryCount,
		Timeout:    cfg.HTTPTimeout,
		Render:     cfg.Render,
	})
	if err != nil {
		return nil, err
	}
	source = s
	return source, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
