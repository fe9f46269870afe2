package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/workspace"
)

func newFilterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Edit user filters",
		Long: `Create, change and remove user filters. Changes are saved to the user
filter file together with the set of active filters.

Rules are written as "<show|hide> <type> <match>" separated by semicolons,
for example: hide entityclass light_.*; show entityclass light_ambient`,
	}
	cmd.AddCommand(
		newFilterEditCmd(a, "add <name> <rules>", "Create a user filter", 2,
			func(ws *workspace.Workspace, args []string) error {
				rules, err := parseRuleArgs(args[1:])
				if err != nil {
					return err
				}
				return ws.System.AddFilter(args[0], rules)
			}),
		newFilterEditCmd(a, "remove <name>", "Remove a user filter", 1,
			func(ws *workspace.Workspace, args []string) error {
				return ws.System.RemoveFilter(args[0])
			}),
		newFilterEditCmd(a, "rename <old> <new>", "Rename a user filter", 2,
			func(ws *workspace.Workspace, args []string) error {
				return ws.System.RenameFilter(args[0], args[1])
			}),
		newFilterEditCmd(a, "set-rules <name> <rules>", "Replace the rules of a user filter", 2,
			func(ws *workspace.Workspace, args []string) error {
				rules, err := parseRuleArgs(args[1:])
				if err != nil {
					return err
				}
				return ws.System.SetFilterRules(args[0], rules)
			}),
		newFilterEditCmd(a, "enable <name>...", "Activate filters and remember them as active", 1,
			func(ws *workspace.Workspace, args []string) error {
				return setStates(ws, args, true)
			}),
		newFilterEditCmd(a, "disable <name>...", "Deactivate filters", 1,
			func(ws *workspace.Workspace, args []string) error {
				return setStates(ws, args, false)
			}),
	)
	return cmd
}

// newFilterEditCmd builds a subcommand that changes the filter system and
// saves the user filters afterwards.
func newFilterEditCmd(a *app, use, short string, minArgs int, edit func(*workspace.Workspace, []string) error) *cobra.Command {
	check := cobra.ExactArgs(minArgs)
	if strings.HasSuffix(use, "...") || strings.HasSuffix(use, "<rules>") {
		check = cobra.MinimumNArgs(minArgs)
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  check,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open("", nil)
			if err != nil {
				return err
			}
			if err := edit(ws, args); err != nil {
				return err
			}
			if err := ws.SaveUserFilters(); err != nil {
				return err
			}
			a.log.Info("user filters updated", "command", cmd.Name(), "file", a.cfg.UserFilters)
			return nil
		},
	}
}

// parseRuleArgs joins the remaining arguments into one rule expression so
// unquoted rules can be passed as separate words.
func parseRuleArgs(args []string) (filter.Rules, error) {
	rules, err := filter.ParseRules(strings.Join(args, " "))
	if err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

func setStates(ws *workspace.Workspace, names []string, active bool) error {
	for _, name := range names {
		if _, ok := ws.System.Filter(name); !ok {
			return fmt.Errorf("filter %q: %w", name, filter.ErrNotFound)
		}
	}
	for _, name := range names {
		ws.System.SetFilterState(name, active)
	}
	return nil
}
