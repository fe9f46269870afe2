package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/output"
)

func newExecCmd(a *app) *cobra.Command {
	var (
		jsonOut bool
		list    bool
	)
	cmd := &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run an editor filter command",
		Long: `Run one of the commands bound by the filter system, such as a filter
toggle (FilterCaulk on), SelectObjectsByFilter, ResetFilters or
ActivateAllFilters, then show the resulting state.

With a scene the scene report is shown; otherwise the filter list.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		Example: `  scenefilter exec --list
  scenefilter exec FilterLights on
  scenefilter exec --scene maps/room.yaml SelectObjectsByFilter Lights`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open("", nil)
			if err != nil {
				return err
			}
			if list {
				for _, name := range ws.Commands.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			if err := ws.Commands.Execute(args[0], args[1:]...); err != nil {
				return err
			}
			if ws.Scene != nil {
				return render(cmd, sceneReport(ws), jsonOut)
			}
			filters := &output.FilterList{}
			ws.System.ForEachFilter(func(f filter.View) {
				filters.Add(f, ws.System.FilterState(f.Name()))
			})
			return render(cmd, filters, jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available commands")
	return cmd
}
