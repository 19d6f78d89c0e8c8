package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/config"
	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/store"
	"github.com/abhisek/studyflow/internal/study"
)

// deps are the components shared by the TUI and the server.
type deps struct {
	cfg     *config.Config
	cat     *i18n.Catalog
	service *study.Service
	closers []io.Closer
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i].Close()
	}
}

// loadConfig reads configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config-dir")
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
		cfg.Locale = locale
	}
	if off, _ := cmd.Flags().GetBool("no-request-log"); off {
		cfg.RequestLog.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildDeps opens the request log, the provider and the study service.
func buildDeps(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log zerolog.Logger) (*deps, error) {
	d := &deps{cfg: cfg}

	cat, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, err
	}
	d.cat = cat

	var events store.EventRepo = store.NopEventRepo{}
	if cfg.RequestLog.Enabled {
		dbPath, err := resolveDBPath(cmd, cfg.RequestLog.DBPath)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.closers = append(d.closers, st)
		events = st.EventRepo()
	}

	settings := cfg.LLMSettings()
	provider, err := llm.NewProvider(ctx, settings, events, log)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	d.service = study.NewService(provider, study.Config{
		Model:     settings.Model,
		ChatModel: settings.ChatModel,
	}, cat, log)
	return d, nil
}
