package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyflow/internal/app"
	"github.com/abhisek/studyflow/internal/logger"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/session"
)

// runApp builds dependencies, prefills the session from flags and
// launches the TUI. Logs go to a file so they cannot corrupt the screen.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		if logPath, err = logger.DefaultLogPath(); err != nil {
			return err
		}
	}
	log, logFile, err := logger.SetupFile(logPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	d, err := buildDeps(ctx, cmd, cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	state := session.New(d.cat)
	if err := prefill(cmd, state); err != nil {
		return err
	}

	log.Info().Str("provider", cfg.LLM.Provider).Str("locale", cfg.Locale).Msg("starting tui")
	return app.Run(ctx, app.Options{
		Service: d.service,
		State:   state,
		Log:     log,
	})
}

// prefill copies the input flags into the session.
func prefill(cmd *cobra.Command, state *session.State) error {
	f := cmd.Flags()

	if subject, _ := f.GetString("subject"); subject != "" {
		state.Inputs.Subject = subject
	}
	if date, _ := f.GetString("exam-date"); date != "" {
		if err := state.SetExamDate(date); err != nil {
			return fmt.Errorf("--exam-date: %w", err)
		}
	}
	if hours, _ := f.GetInt("hours"); hours >= 0 {
		state.SetWeeklyHours(hours)
	}
	if path, _ := f.GetString("notes-file"); path != "" {
		text, err := notes.LoadFile(path)
		if err != nil {
			return fmt.Errorf("--notes-file: %w", err)
		}
		state.Inputs.Notes = text
	}
	if state.Ready() {
		// Land on the plan when everything was given up front.
		return state.GoToTools()
	}
	return nil
}
