package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the job_applications schema",
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

			if err := repo.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info().Str("driver", cfg.StorageDriver).Msg("schema up to date")
			return nil
		},
	}
}
