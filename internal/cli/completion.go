package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaa/musicorg/internal/exitcode"
	"github.com/jaa/musicorg/internal/fileops"
)

var completionFiles = map[string]string{
	"bash":       "musicorg.bash",
	"zsh":        "_musicorg",
	"fish":       "musicorg.fish",
	"powershell": "_musicorg.ps1",
}

func newCompletionCommand(app *AppContext, root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:       "completion <bash|zsh|fish|powershell>",
		Short:     "Generate a shell completion script",
		Long:      "Writes the completion script to stdout, or into --output-dir when it is given.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			if app.Opts.OutputDir == "" {
				return withExitCode(exitcode.RuntimeFailure, generateCompletion(root, shell, app.IO.Out))
			}

			if err := fileops.EnsureDir(app.Opts.OutputDir); err != nil {
				return withExitCode(exitcode.RuntimeFailure, err)
			}
			path := filepath.Join(app.Opts.OutputDir, completionFiles[shell])
			file, err := os.Create(path)
			if err != nil {
				return withExitCode(exitcode.RuntimeFailure, fmt.Errorf("create completion file: %w", err))
			}
			if err := generateCompletion(root, shell, file); err != nil {
				file.Close()
				return withExitCode(exitcode.RuntimeFailure, err)
			}
			if err := file.Close(); err != nil {
				return withExitCode(exitcode.RuntimeFailure, fmt.Errorf("close completion file: %w", err))
			}
			fmt.Fprintf(app.IO.Out, "Wrote %s completion: %s\n", shell, path)
			return nil
		},
	}
}

func generateCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.New("unsupported shell " + shell)
	}
}
