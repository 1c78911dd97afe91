package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"poster/domain"
	"poster/domain/util"
	"poster/usecase"
)

func connectSession(ctx context.Context) *usecase.Session {
	defaultDependencyInject(ctx)

	session, err := sessionInteractor.Connect(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrorNoWallet):
			fmt.Printf("⛔️ No wallet is configured.\n")
		case domain.IsUserRejected(err):
			fmt.Printf("⛔️ Request rejected in wallet.\n")
		case errors.Is(err, domain.ErrorWrongNetwork):
			fmt.Printf("⛔️ Wrong network. Please switch to %v.\n", domain.GetNetwork().ChainName)
		default:
			fmt.Printf("⛔️ Error connecting to wallet: %v\n", err.Error())
		}
		abort()
	}

	return session
}

var exit = os.Exit

// abort releases what the command holds and exits with status 1. Deferred calls do not
// run on exit, so everything to release is passed in.
func abort(release ...func()) {
	for _, r := range release {
		r()
	}
	exit(1)
}

func printBalance(session *usecase.Session) {
	account, _ := session.Account()
	snapshot := session.Snapshot()

	fmt.Printf("Connected: %v\n", account.Hex())
	fmt.Printf("Network:   %v (%v)\n", domain.GetNetwork().ChainName, domain.GetNetwork().ChainIdHex())

	if snapshot.IsEmpty() {
		fmt.Printf("Token balance could not be checked.\n")
		return
	}

	fmt.Printf("Token Balance:     %v tokens\n", util.HumanTokens(snapshot.Balance, snapshot.Decimals, ""))
	fmt.Printf("Posting Threshold: %v tokens\n", util.HumanTokens(snapshot.Threshold, snapshot.Decimals, ""))
	if snapshot.MeetsThreshold() {
		fmt.Printf("✅ Sufficient tokens for posting\n")
	} else {
		fmt.Printf("❌ Insufficient tokens for posting\n")
	}
}

func printPosts(posts []domain.Post, tag string) {

	if tag != "" {
		fmt.Printf("------------- POSTS (filtered by: %v) -----------------\n", tag)
	} else {
		fmt.Printf("------------- POSTS -----------------\n")
	}

	if len(posts) == 0 {
		fmt.Printf("No posts yet. Be the first to post!\n")
		return
	}

	for i, post := range posts {
		fmt.Printf("#%03d - %v\n", i+1, post.Content)
		fmt.Printf("       tag: %v\n", post.Tag.Hex())
		fmt.Printf("       author: %v, block: %v\n", post.User.Hex(), post.BlockNumber)
	}
}
