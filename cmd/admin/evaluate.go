package main

import (
	"context"
	"fmt"
	"strings"

	"learnmatch/internal/app"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate badge rules for one learner and print newly awarded badges",
	RunE: func(cmd *cobra.Command, _ []string) error {
		raw, _ := cmd.Flags().GetString("learner")
		learnerID, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid --learner: %w", err)
		}

		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			awarded, err := c.Badges.Evaluate(ctx, learnerID)
			for _, slug := range awarded {
				fmt.Fprintf(cmd.OutOrStdout(), "awarded %s\n", slug)
			}
			if err != nil {
				return err
			}
			if len(awarded) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no new badges")
			}
			return nil
		})
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Compute the match score of a learner for a job posting",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rawLearner, _ := cmd.Flags().GetString("learner")
		rawJob, _ := cmd.Flags().GetString("job")
		learnerID, err := uuid.Parse(strings.TrimSpace(rawLearner))
		if err != nil {
			return fmt.Errorf("invalid --learner: %w", err)
		}
		jobID, err := uuid.Parse(strings.TrimSpace(rawJob))
		if err != nil {
			return fmt.Errorf("invalid --job: %w", err)
		}

		return withContainer(cmd.Context(), func(ctx context.Context, c *app.Container) error {
			res, err := c.Matching.ComputeMatchForJob(ctx, learnerID, jobID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%.2f) skill=%.0f interest=%.0f goal=%.0f\n",
				res.Label, res.Value, res.Breakdown.SkillScore, res.Breakdown.InterestScore, res.Breakdown.GoalScore)
			return nil
		})
	},
}

func init() {
	evaluateCmd.Flags().String("learner", "", "learner id")
	_ = evaluateCmd.MarkFlagRequired("learner")

	matchCmd.Flags().String("learner", "", "learner id")
	matchCmd.Flags().String("job", "", "job posting id")
	_ = matchCmd.MarkFlagRequired("learner")
	_ = matchCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(matchCmd)
}
