package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stridelabs/coachd/internal/service/plan"
	"github.com/stridelabs/coachd/pkg/log"
)

var (
	planUser    string
	planPreview bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Regenerate a coaching plan",
	Long:  `Builds a new versioned plan from the user's profile and the last week of wellness data. With --preview the plan is printed but not saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app := NewApp(ctx)

		workerCtx, stopWorker := context.WithCancel(ctx)
		go func() {
			if err := app.Audit.Start(workerCtx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msg("audit worker failed")
			}
		}()

		rec, err := app.Planner.Regenerate(ctx, planUser, plan.Options{PreviewMode: planPreview})

		stopWorker()
		app.Close(ctx)

		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planUser, "user", "u", "", "user id")
	planCmd.Flags().BoolVar(&planPreview, "preview", false, "generate without saving")
	_ = planCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(planCmd)
}
