package console

import (
	"github.com/coresender/coresender-go/pkg/client"
	"github.com/coresender/coresender-go/pkg/mail"
	"github.com/coresender/coresender-go/pkg/root"
	"github.com/spf13/cobra"
)

var (
	sendInput  messageInput
	sendAutoID bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a single email",
	Example: `  coresender send --from "Jean-Luc Picard <jean.luc@example.com>" \
    --to "Geordi La Forge <geordi@example.com>" --subject "I need engines" \
    --text "Geordi, I need engines, now!" --track-opens --track-clicks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := sendInput.build(sendAutoID)
		if err != nil {
			return err
		}

		ctx, mailer, cleanup, err := newMailer(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		var res *mail.Result
		if c, ok := mailer.(*client.Client); ok {
			res, err = c.SendSimpleEmail(ctx, msg)
		} else {
			res, err = mailer.Send(ctx, []mail.Message{msg})
		}
		if err != nil {
			return err
		}
		return printResult(ctx, cmd.OutOrStdout(), res)
	},
}

func init() {
	f := sendCmd.Flags()
	f.StringVar(&sendInput.From, "from", "", `Sender, e.g. "Name <user@example.com>"`)
	f.StringSliceVar(&sendInput.To, "to", nil, "Recipient (repeatable)")
	f.StringVar(&sendInput.Subject, "subject", "", "Subject")
	f.StringVar(&sendInput.BodyText, "text", "", "Text body")
	f.StringVar(&sendInput.BodyHTML, "html", "", "HTML body")
	f.StringVar(&sendInput.CustomID, "custom-id", "", "Correlation id returned in the response")
	f.BoolVar(&sendInput.CustomIDUnique, "custom-id-unique", false, "Reject the message if the custom id was already used")
	f.BoolVar(&sendAutoID, "auto-custom-id", false, "Generate a UUID custom id when --custom-id is empty")
	f.BoolVar(&sendInput.TrackOpens, "track-opens", false, "Track opens")
	f.BoolVar(&sendInput.TrackClicks, "track-clicks", false, "Track clicks")
	f.StringVar(&sendInput.ListID, "list-id", "", "List-Id header")
	f.StringVar(&sendInput.ListUnsubscribe, "list-unsubscribe", "", "List-Unsubscribe link")
	f.StringSliceVar(&sendInput.ReplyTo, "reply-to", nil, "Reply-To address (repeatable)")

	root.GetRoot().AddCommand(sendCmd)
}
