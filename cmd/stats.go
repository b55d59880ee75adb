package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/p3bustos/jobtracker/internal/tracker"
)

func newStatsCmd() *cobra.Command {
	var breakdown bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the current stats snapshot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			repo, closeRepo, err := openRepository(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeRepo()

			// Read-only: no events are published from here.
			svc := tracker.NewService(repo, nil, log)

			var out any
			if breakdown {
				out, err = svc.Breakdown(cmd.Context())
			} else {
				out, err = svc.Stats(cmd.Context())
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "print one count per status instead")
	return cmd
}
