package console

import (
	"fmt"

	"github.com/coresender/coresender-go/pkg/client"
	"github.com/coresender/coresender-go/pkg/mail"
	"github.com/coresender/coresender-go/pkg/root"
	"github.com/coresender/coresender-go/pkg/telemetry"
	"github.com/spf13/cobra"
)

var batchPath string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Send every message of a YAML file in one request",
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchPath == "" {
			return fmt.Errorf("--file is required")
		}
		msgs, err := loadBatchFile(batchPath)
		if err != nil {
			return err
		}

		ctx, mailer, cleanup, err := newMailer(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		telemetry.LoggerFromContext(ctx).Info().Str("file", batchPath).Int("messages", len(msgs)).Msg("Sending batch")

		var res *mail.Result
		if c, ok := mailer.(*client.Client); ok {
			for _, msg := range msgs {
				c.AddToBatch(msg)
			}
			res, err = c.Execute(ctx)
		} else {
			res, err = mailer.Send(ctx, msgs)
		}
		if err != nil {
			return err
		}
		return printResult(ctx, cmd.OutOrStdout(), res)
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchPath, "file", "f", "", "YAML file with a messages list")

	root.GetRoot().AddCommand(batchCmd)
}
