package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaa/musicorg/internal/exitcode"
)

func Execute(build BuildInfo, streams IOStreams) int {
	app := &AppContext{Build: build, IO: streams}
	root := newRootCommand(app)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(streams.ErrOut, "ERROR:", err)
		return mapExitCode(err)
	}
	return exitcode.Success
}

func newRootCommand(app *AppContext) *cobra.Command {
	showVersion := false
	flags := organizeFlags{}

	root := &cobra.Command{
		Use:   "musicorg",
		Short: "Sort a music collection into Artist/Album folders by its tags",
		Long: "musicorg reads the tags of every mp3 and mp4-family audio file below a music dir and\n" +
			"moves or copies them into <output>/<Artist>/<Album>/<NN - Artist - Title>.<ext>.",
		Example: "  musicorg -m ~/Music\n" +
			"  musicorg -m ~/Downloads/music -o ~/Music -c -y\n" +
			"  musicorg plan -m ~/Music",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(app)
				return nil
			}
			if app.Opts.MusicDir == "" {
				return cmd.Help()
			}
			return runOrganize(app, flags)
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVar(&app.Opts.ConfigPath, "config", "", "Path to config file")
	root.PersistentFlags().StringVarP(&app.Opts.MusicDir, "music-dir", "m", "", "Directory to index")
	root.PersistentFlags().StringVarP(&app.Opts.OutputDir, "output-dir", "o", "", "Directory to organize into (default: the music dir)")
	root.PersistentFlags().BoolVar(&app.Opts.JSON, "json", false, "Emit newline-delimited JSON events")
	root.PersistentFlags().BoolVarP(&app.Opts.Quiet, "quiet", "q", false, "Reduce output to errors and summary")
	root.PersistentFlags().BoolVarP(&app.Opts.Verbose, "verbose", "v", false, "Print one line per file instead of a status line")
	root.PersistentFlags().BoolVar(&app.Opts.NoInput, "no-input", false, "Disable interactive prompts")
	root.Flags().BoolVarP(&flags.copy, "copy", "c", false, "Copy files instead of moving them (requires --output-dir)")
	root.Flags().BoolVarP(&flags.assumeYes, "assume-yes", "y", false, "Do not ask for confirmation before relocating")
	root.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Index and plan without touching any file")
	root.Flags().StringVar(&flags.progress, "progress", "", "Status line: auto, always, or never")
	root.Flags().BoolVar(&showVersion, "version", false, "Print version info")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(exitcode.InvalidUsage, err)
	})

	root.AddCommand(newPlanCommand(app))
	root.AddCommand(newInitCommand(app))
	root.AddCommand(newValidateCommand(app))
	root.AddCommand(newDoctorCommand(app))
	root.AddCommand(newCompletionCommand(app, root))
	root.AddCommand(newVersionCommand(app))

	return root
}

func printVersion(app *AppContext) {
	version := app.Build.Version
	if version == "" {
		version = "dev"
	}
	commit := app.Build.Commit
	if commit == "" {
		commit = "unknown"
	}
	date := app.Build.Date
	if date == "" {
		date = "unknown"
	}

	fmt.Fprintf(app.IO.Out, "musicorg version %s\ncommit: %s\nbuild_date: %s\n", version, commit, date)
}
