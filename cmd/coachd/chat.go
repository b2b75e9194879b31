package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stridelabs/coachd/pkg/log"
)

var (
	chatUser    string
	chatMessage string
	chatJSON    bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run one coaching round-trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app := NewApp(ctx)

		// The audit worker must be running so the round-trip's event is
		// written before exit.
		workerCtx, stopWorker := context.WithCancel(ctx)
		go func() {
			if err := app.Audit.Start(workerCtx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msg("audit worker failed")
			}
		}()

		resp := app.Arbiter.Respond(ctx, chatUser, chatMessage)

		stopWorker()
		app.Close(ctx)

		if chatJSON {
			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Println(resp.Text)
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatUser, "user", "u", "", "user id")
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "message to the coach")
	chatCmd.Flags().BoolVar(&chatJSON, "json", false, "print the full response as JSON")
	_ = chatCmd.MarkFlagRequired("user")
	_ = chatCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(chatCmd)
}
