package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/scenefilter/internal/observe"
	"github.com/ivoronin/scenefilter/internal/output"
	"github.com/ivoronin/scenefilter/internal/workspace"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		jsonOut        bool
		stats          bool
		onlyFiltered   bool
		failOnFiltered bool
	)
	cmd := &cobra.Command{
		Use:   "eval [scene]",
		Short: "Evaluate the active filters against a scene",
		Long: `Load a scene, apply the active filters and report which nodes are filtered.

With --fail-on-filtered the exit code is 2 when any node is filtered.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  scenefilter eval --active Caulk,Lights maps/room.yaml
  scenefilter eval -j --stats maps/room.yaml
  scenefilter eval --fail-on-filtered --active "Trigger Textures" maps/room.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.scenePath(args)
			if err != nil {
				return err
			}

			var collector *observe.Collector
			var metrics *observe.Metrics
			if stats {
				if collector, err = observe.NewCollector(); err != nil {
					return err
				}
				defer func() { _ = collector.Shutdown(context.Background()) }()
				metrics = collector.Metrics()
			}

			ws, err := a.open(path, metrics)
			if err != nil {
				return err
			}
			report := sceneReport(ws)
			report.OnlyFiltered = onlyFiltered
			if collector != nil {
				totals, err := collector.Totals(cmd.Context())
				if err != nil {
					return fmt.Errorf("collect metrics: %w", err)
				}
				report.Stats = &totals
			}
			if err := render(cmd, report, jsonOut); err != nil {
				return err
			}

			if failOnFiltered && report.FilteredCount() > 0 {
				return &exitError{code: ExitFiltered}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	cmd.Flags().BoolVar(&stats, "stats", false, "Report evaluation metrics")
	cmd.Flags().BoolVar(&onlyFiltered, "only-filtered", false, "List filtered nodes only")
	cmd.Flags().BoolVar(&failOnFiltered, "fail-on-filtered", false, "Exit with code 2 if any node is filtered")
	return cmd
}

func newSelectCmd(a *app) *cobra.Command {
	var (
		jsonOut  bool
		deselect bool
	)
	cmd := &cobra.Command{
		Use:   "select <filter> [scene]",
		Short: "Select the scene objects a filter would hide",
		Long: `Select every visible object that the named filter on its own would hide.

The filter does not need to be active. Objects already hidden by active
filters are left alone.`,
		Args: cobra.RangeArgs(1, 2),
		Example: `  scenefilter select Lights maps/room.yaml
  scenefilter select --active Caulk Brushes maps/room.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.scenePath(args[1:])
			if err != nil {
				return err
			}
			ws, err := a.open(path, nil)
			if err != nil {
				return err
			}
			if err := ws.System.SetObjectSelectionByFilter(args[0], !deselect); err != nil {
				return err
			}
			return render(cmd, sceneReport(ws), jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	cmd.Flags().BoolVar(&deselect, "deselect", false, "Deselect instead of select")
	return cmd
}

func sceneReport(ws *workspace.Workspace) *output.SceneReport {
	return output.NewSceneReport(ws.Scene, ws.System.ActiveFilterNames(), ws.Materials.Hidden())
}
