package main

import (
	"context"
	"fmt"

	"learnmatch/internal/app"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			n, err := c.Migrate(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the badge catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			if err := c.Seed(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seeders applied")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
