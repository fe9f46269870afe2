package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivoronin/scenefilter/internal/workspace"
)

func newWatchCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "watch [scene]",
		Short: "Re-evaluate a scene whenever it or a filter file changes",
		Long: `Evaluate the scene once, then reload and evaluate again every time the
scene, a definition file or the user filter file changes. Stop with Ctrl-C.`,
		Args:    cobra.MaximumNArgs(1),
		Example: `  scenefilter watch --active Caulk maps/room.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.scenePath(args)
			if err != nil {
				return err
			}
			ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd, path, jsonOut)
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	return cmd
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string, jsonOut bool) error {
	evaluate := func() error {
		ws, err := a.open(path, nil)
		if err != nil {
			return err
		}
		return render(cmd, sceneReport(ws), jsonOut)
	}
	if err := evaluate(); err != nil {
		return err
	}

	files := workspace.WatchedFiles(a.cfg, path)
	a.log.Info("watching", "files", files)
	return workspace.Watch(ctx, files, a.log, func() {
		if err := evaluate(); err != nil {
			a.log.Error("reload failed", "error", err)
		}
	})
}
