package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poster/domain"
	"poster/usecase"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keeps a session open and refreshes the balance gate and posts",
	Long: `Keeps a session open, follows wallet account and network changes, and refreshes the
balance gate and the post list every refresh_interval. Stop it with Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		session := connectSession(ctx)
		defer sessionInteractor.Close(session)

		printBalance(session)
		printPosts(session.Posts(), "")

		if addr := domain.GetMetricsAddr(); addr != "" {
			go serveMetrics(addr)
		}

		quit := make(chan bool)
		refreshTicker := schedule(func() { refresh(ctx, session) }, domain.GetRefreshInterval(), quit)

		signal.Ignore()
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		s := <-stop
		log.Printf("Got signal '%v', stopping", s)

		refreshTicker.Stop()
		close(quit)
	},
}

func schedule(task func(), interval time.Duration, done chan bool) *time.Ticker {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {

			case <-ticker.C:
				ticker.Stop()
				task()
				ticker.Reset(interval)

			case <-done:
				return
			}
		}
	}()
	return ticker
}

func refresh(ctx context.Context, session *usecase.Session) {
	if _, connected := session.Account(); !connected {
		fmt.Printf("❗️ No account connected, waiting for the wallet.\n")
		return
	}
	if !session.IsCorrectNetwork() {
		fmt.Printf("❗️ Wrong network. Requesting a switch to %v.\n", domain.GetNetwork().ChainName)
		if err := sessionInteractor.SwitchNetwork(ctx); err != nil {
			fmt.Printf("❌ Network switch failed: %v\n", err.Error())
		}
		return
	}

	before := len(session.Posts())
	posts, err := feedInteractor.Load(ctx, session)
	if err != nil {
		fmt.Printf("❌ Error loading posts: %v\n", err.Error())
	} else if len(posts) > before {
		printPosts(posts[:len(posts)-before], "")
	}

	wasOpen := session.Snapshot().MeetsThreshold()
	snapshot, err := gateInteractor.Check(ctx, session)
	if err != nil {
		fmt.Printf("❌ Error checking token balance: %v\n", err.Error())
		return
	}
	if snapshot.MeetsThreshold() != wasOpen {
		printBalance(session)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Printf("serving metrics on %v\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("🔴 metrics server stopped - %v\n", err.Error())
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
