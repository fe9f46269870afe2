package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/scenefilter/internal/version"
)

func newVersionCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and filter document format",
		Long:  `Display scenefilter version and the filter document format versions it reads and writes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if jsonOut {
				info := struct {
					Version   string `json:"version"`
					Format    string `json:"format"`
					Supported string `json:"supported_formats"`
				}{
					Version:   Version,
					Format:    version.Current,
					Supported: version.Supported,
				}
				data, err := json.Marshal(info)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			_, err := fmt.Fprintf(out, "scenefilter %s (filter format %s)\n", Version, version.Current)
			return err
		},
	}
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	return cmd
}
