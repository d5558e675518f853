package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jaa/musicorg/internal/exitcode"
	"github.com/jaa/musicorg/internal/planner"
)

func newPlanCommand(app *AppContext) *cobra.Command {
	pendingOnly := false

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show where every song would go without touching any file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Opts.MusicDir == "" {
				return withExitCode(exitcode.InvalidUsage, errors.New("plan requires --music-dir"))
			}
			setup, err := prepareOrganize(app, organizeFlags{dryRun: true, progress: "never"})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), interruptSignals()...)
			defer stop()

			_, plan, result, err := setup.organizer.Plan(ctx, setup.opts)
			if err != nil {
				return organizeError(err)
			}

			if app.Opts.JSON {
				return writePlanJSON(app, plan, pendingOnly)
			}
			fmt.Fprintln(app.IO.Out, renderPlan(plan, result.MusicRoot, result.OutputRoot, pendingOnly))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "List only songs that would change place")
	return cmd
}

type planMoveJSON struct {
	Song      int    `json:"song"`
	Kind      string `json:"kind"`
	Source    string `json:"source"`
	Dest      string `json:"dest"`
	Unchanged bool   `json:"unchanged"`
}

func writePlanJSON(app *AppContext, plan planner.Plan, pendingOnly bool) error {
	payload := struct {
		Dirs  []string       `json:"dirs"`
		Moves []planMoveJSON `json:"moves"`
	}{Dirs: plan.Dirs, Moves: []planMoveJSON{}}
	for _, m := range plan.Moves {
		if pendingOnly && m.Unchanged() {
			continue
		}
		payload.Moves = append(payload.Moves, planMoveJSON{
			Song:      m.Song,
			Kind:      string(m.Kind),
			Source:    m.Source,
			Dest:      m.Dest,
			Unchanged: m.Unchanged(),
		})
	}

	encoder := json.NewEncoder(app.IO.Out)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		return withExitCode(exitcode.RuntimeFailure, err)
	}
	return nil
}

func renderPlan(plan planner.Plan, musicRoot, outputRoot string, pendingOnly bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Kind", "Source", "Destination", "Status"})

	shown := 0
	for i, m := range plan.Moves {
		if pendingOnly && m.Unchanged() {
			continue
		}
		status := "pending"
		if m.Unchanged() {
			status = "in place"
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			string(m.Kind),
			relativeTo(musicRoot, m.Source),
			relativeTo(outputRoot, m.Dest),
			status,
		})
		shown++
	}
	tw.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d of %d song(s)", shown, len(plan.Moves)), fmt.Sprintf("%d pending", plan.Pending())})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
