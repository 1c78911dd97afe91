package cmd

import (
	"context"
	"errors"
	"fmt"

	"poster/domain"
	"poster/domain/util"

	"github.com/spf13/cobra"
)

var (
	postContent string
	postTag     string
)

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publishes a message when the account holds enough tokens",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		session := connectSession(ctx)
		defer sessionInteractor.Close(session)

		receipt, err := postInteractor.Submit(ctx, session, postContent, postTag)

		var insufficient *domain.InsufficientTokensError
		var postErr *domain.PostError
		switch {
		case err == nil:
			fmt.Printf("✅ Post created successfully! [tx: %v]\n", receipt.TxHash.Hex())
			printBalance(session)
			return
		case errors.Is(err, domain.ErrorEmptyField):
			fmt.Printf("⛔️ Please fill all fields.\n")
		case errors.Is(err, domain.ErrorBalanceUnknown):
			fmt.Printf("❌ System error. Please try again. (%v)\n", err.Error())
		case errors.As(err, &insufficient):
			fmt.Printf("❌ Insufficient tokens! You need at least %v tokens, but you have %v.\n",
				util.FormatTokens(insufficient.Threshold, insufficient.Decimals), util.FormatTokens(insufficient.Balance, insufficient.Decimals))
		case errors.As(err, &postErr):
			fmt.Printf("❌ %v\n", postErr.Error())
		default:
			fmt.Printf("❌ %v\n", err.Error())
		}
		abort(func() { sessionInteractor.Close(session) })
	},
}

func init() {
	rootCmd.AddCommand(postCmd)

	postCmd.Flags().StringVarP(&postContent, "content", "c", "", "message to post")
	postCmd.Flags().StringVarP(&postTag, "tag", "t", "", "tag of the message, e.g. general, news, fun")
}
