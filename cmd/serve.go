package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/logger"
	"github.com/abhisek/studyflow/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve study sessions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log := logger.Setup(cfg.Log.Level, cfg.Log.Format)
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("provider", cfg.LLM.Provider).
			Str("locale", cfg.Locale).
			Msg("starting studyflow server")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := buildDeps(ctx, cmd, cfg, log)
		if err != nil {
			return err
		}
		defer d.Close()

		srv, err := server.New(server.Options{
			Service:        d.service,
			Log:            log,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			SessionTTL:     cfg.Server.SessionTTL,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
			GinMode:        cfg.Server.GinMode,
		})
		if err != nil {
			return err
		}
		return srv.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}
