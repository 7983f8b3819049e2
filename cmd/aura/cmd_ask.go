package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aura-storefront/server/internal/agent/stylist"
)

var (
	askProduct      string
	askConversation string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the stylist one question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		st := a.services.Stylist
		if askProduct != "" {
			fmt.Fprintln(cmd.OutOrStdout(), st.Welcome(askProduct))
		}

		reply, err := st.Ask(ctx, stylist.Request{
			ConversationID: askConversation,
			Query:          strings.Join(args, " "),
			ProductContext: askProduct,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
		if reply.CostUSD > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "conversation %s, cost $%.6f\n", reply.ConversationID, reply.CostUSD)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askProduct, "product", "", "product the customer is looking at")
	askCmd.Flags().StringVar(&askConversation, "conversation", "", "conversation id to continue")
}
