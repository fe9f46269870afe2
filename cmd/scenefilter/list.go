package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/output"
)

func newListCmd(a *app) *cobra.Command {
	var (
		jsonOut    bool
		onlyActive bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available filters",
		Long:  `Display every registered filter with its state, rule count and toggle command.`,
		Args:  cobra.NoArgs,
		Example: `  scenefilter list
  scenefilter list -j
  scenefilter list --only-active --active Caulk,Lights`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.open("", nil)
			if err != nil {
				return err
			}
			sys := ws.System

			list := &output.FilterList{}
			sys.ForEachFilter(func(f filter.View) {
				active := sys.FilterState(f.Name())
				if onlyActive && !active {
					return
				}
				list.Add(f, active)
			})
			return render(cmd, list, jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	cmd.Flags().BoolVar(&onlyActive, "only-active", false, "Show active filters only")
	return cmd
}

func newRulesCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "rules <filter>",
		Short: "Show the rules of a filter",
		Long:  `Display the rules of a filter in evaluation order. The last matching rule decides.`,
		Args:  cobra.ExactArgs(1),
		Example: `  scenefilter rules Lights
  scenefilter rules -j "Clip Textures"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open("", nil)
			if err != nil {
				return err
			}
			rules, err := ws.System.RuleSet(args[0])
			if err != nil {
				return err
			}
			return render(cmd, output.NewRuleList(args[0], rules), jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	return cmd
}

func newGroupsCmd(a *app) *cobra.Command {
	var (
		jsonOut bool
		enable  []string
		disable []string
	)
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List filter groups",
		Long: `Display filter groups and whether all of their members are active.

--enable and --disable toggle every member of a group before listing.`,
		Args: cobra.NoArgs,
		Example: `  scenefilter groups
  scenefilter groups --enable Geometry`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.open("", nil)
			if err != nil {
				return err
			}
			sys := ws.System
			for _, name := range enable {
				if err := sys.SetGroupState(name, true); err != nil {
					return err
				}
			}
			for _, name := range disable {
				if err := sys.SetGroupState(name, false); err != nil {
					return err
				}
			}

			list := &output.GroupList{}
			for _, g := range sys.Groups() {
				active, err := sys.GroupState(g.Name())
				if err != nil {
					return fmt.Errorf("group %q: %w", g.Name(), err)
				}
				list.Entries = append(list.Entries, output.GroupEntry{
					Name:    g.Name(),
					Active:  active,
					Filters: g.FilterNames(),
				})
			}
			return render(cmd, list, jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	cmd.Flags().StringSliceVar(&enable, "enable", nil, "Activate all filters of these groups")
	cmd.Flags().StringSliceVar(&disable, "disable", nil, "Deactivate all filters of these groups")
	return cmd
}
