package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var filterTag string

// postsCmd represents the posts command
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Lists every post, newest first",
	Long: `Replays all NewPost events of the Poster contract and lists them newest first.
With --tag only posts whose stored tag hash equals the hash of the given tag are shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		session := connectSession(ctx)
		defer sessionInteractor.Close(session)

		if _, err := feedInteractor.Load(ctx, session); err != nil {
			fmt.Printf("❌ Error loading posts: %v\n", err.Error())
			abort(func() { sessionInteractor.Close(session) })
		}

		printPosts(feedInteractor.Filter(session, filterTag), filterTag)
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)

	postsCmd.Flags().StringVarP(&filterTag, "tag", "t", "", "show only posts with this tag")
}
