package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaa/musicorg/internal/config"
	"github.com/jaa/musicorg/internal/doctor"
	"github.com/jaa/musicorg/internal/exitcode"
)

func newDoctorCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, music dir and output dir readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			outputDir := strings.TrimSpace(app.Opts.OutputDir)
			if outputDir == "" {
				if outputDir, err = config.ExpandPath(cfg.Defaults.OutputDir); err != nil {
					return withExitCode(exitcode.InvalidConfig, err)
				}
			}
			report := doctor.NewChecker().Check(cfg, doctor.Target{
				MusicDir:  app.Opts.MusicDir,
				OutputDir: outputDir,
			})

			if app.Opts.JSON {
				encoder := json.NewEncoder(app.IO.Out)
				if err := encoder.Encode(report); err != nil {
					return withExitCode(exitcode.RuntimeFailure, err)
				}
			} else {
				for _, check := range report.Checks {
					fmt.Fprintf(app.IO.Out, "[%s] %s: %s\n", check.Severity, check.Name, check.Message)
				}
			}

			if report.HasErrors() {
				return withExitCode(exitcode.RuntimeFailure, fmt.Errorf("doctor found %d error(s)", report.ErrorCount()))
			}
			return nil
		},
	}
}
