package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Reads every contract value posting depends on and reports problems",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		session := connectSession(ctx)
		defer sessionInteractor.Close(session)

		report, err := diagnosticInteractor.Run(ctx, session)
		if err != nil {
			fmt.Printf("❌ Diagnostic failed: %v\n", err.Error())
			abort(func() { sessionInteractor.Close(session) })
		}

		fmt.Print(report.String())
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}
