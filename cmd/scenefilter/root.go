package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivoronin/scenefilter/internal/config"
	"github.com/ivoronin/scenefilter/internal/logging"
	"github.com/ivoronin/scenefilter/internal/observe"
	"github.com/ivoronin/scenefilter/internal/output"
	"github.com/ivoronin/scenefilter/internal/workspace"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     *slog.Logger
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"definitions":  "definitions",
	"user-filters": "user_filters",
	"scene":        "scene",
	"active":       "active",
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "scenefilter",
		Short: "Evaluate level editor scene filters",
		Long: `Manage scene filters and evaluate which nodes of a level scene they hide.

Filter definitions are read from XML, scenes from YAML. Built-in stock
filters are used unless definition files are configured.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./scenefilter.yaml or "+config.Dir()+"/scenefilter.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text, json")
	pf.StringSlice("definitions", nil, "filter definition files (default: built-in stock filters)")
	pf.String("user-filters", "", "user filter file")
	pf.String("scene", "", "scene file (YAML)")
	pf.StringSlice("active", nil, "filters to activate")

	root.AddCommand(
		newListCmd(a),
		newRulesCmd(a),
		newGroupsCmd(a),
		newQueryCmd(a),
		newEvalCmd(a),
		newSelectCmd(a),
		newFilterCmd(a),
		newExecCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads configuration and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	a.v = config.New(a.cfgFile)
	flags := cmd.Root().PersistentFlags()
	for flag, key := range flagKeys {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	if err := config.Read(a.v, a.cfgFile != ""); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	a.log, err = logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", "file", used)
	}
	return nil
}

// open builds a workspace. A non-empty scenePath overrides the configured
// scene. metrics may be nil.
func (a *app) open(scenePath string, metrics *observe.Metrics) (*workspace.Workspace, error) {
	return workspace.Open(a.cfg, workspace.Options{
		Logger:  a.log,
		Metrics: metrics,
		Scene:   scenePath,
	})
}

// scenePath returns the scene named on the command line or the configured
// one, and fails when neither is set.
func (a *app) scenePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.Scene != "" {
		return a.cfg.Scene, nil
	}
	return "", fmt.Errorf("no scene given; pass a scene file or set --scene")
}

func outputFormat(jsonOut bool) output.Format {
	if jsonOut {
		return output.FormatJSON
	}
	return output.FormatText
}

// render writes f to the command's output. Empty text output prints nothing.
func render(cmd *cobra.Command, f output.Formatter, jsonOut bool) error {
	result, err := output.FormatOutput(f, outputFormat(jsonOut))
	if err != nil {
		return err
	}
	if result == "" {
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}
