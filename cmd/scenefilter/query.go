package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/output"
	"github.com/ivoronin/scenefilter/internal/scene"
)

const entityQuery = "entity"

func newQueryCmd(a *app) *cobra.Command {
	var (
		jsonOut bool
		with    []string
	)
	cmd := &cobra.Command{
		Use:   "query <type> <name>...",
		Short: "Ask whether items are visible under the active filters",
		Long: `Evaluate visibility of textures, entity classes or primitive types.

<type> is one of texture, entityclass, object or entity. For entity the
first argument is the class name and the rest are key=value spawnargs.
Filters named with --with are activated for this query only.`,
		Args: cobra.MinimumNArgs(2),
		Example: `  scenefilter query --active Caulk texture textures/common/caulk
  scenefilter query --with Lights entityclass light light_ambient
  scenefilter query --active "Location Entities" entity info_location name=hall`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open("", nil)
			if err != nil {
				return err
			}
			sys := ws.System

			pop := sys.PushScoped()
			defer pop()
			for _, name := range with {
				if _, ok := sys.Filter(name); !ok {
					return fmt.Errorf("filter %q: %w", name, filter.ErrNotFound)
				}
				sys.SetFilterState(name, true)
			}

			results := &output.QueryResults{}
			if strings.EqualFold(args[0], entityQuery) {
				e, err := entityFromArgs(args[1:])
				if err != nil {
					return err
				}
				results.Results = append(results.Results, output.QueryResult{
					Type:    entityQuery,
					Name:    args[1],
					Visible: sys.IsEntityVisible(e),
				})
				return render(cmd, results, jsonOut)
			}

			kind, err := filter.ParseKind(args[0])
			if err != nil {
				return err
			}
			if kind == filter.KindSpawnarg {
				return fmt.Errorf("use %q to query spawnargs", entityQuery)
			}
			for _, name := range args[1:] {
				results.Results = append(results.Results, output.QueryResult{
					Type:    kind.String(),
					Name:    name,
					Visible: sys.IsVisible(kind, name),
				})
			}
			return render(cmd, results, jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	cmd.Flags().StringSliceVar(&with, "with", nil, "Filters to activate for this query only")
	return cmd
}

// entityFromArgs builds an entity from a class name and key=value pairs.
func entityFromArgs(args []string) (*scene.Entity, error) {
	spawnargs := make(map[string]string, len(args)-1)
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid spawnarg %q, expected key=value", kv)
		}
		spawnargs[key] = value
	}
	e, _ := scene.NewEntity(args[0], args[0], spawnargs).AsEntity()
	return e, nil
}
