package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "compare [message]",
		Short: "Compare responses across all personas",
		Long: "Send one message through every registered persona plus the baseline and\n" +
			"print the responses side by side, in registry order.",
		Args: cobra.MinimumNArgs(1),
		Run:  runCompare,
	}
	cmd.Flags().String("load", "", "Restore a persisted profile for this user ID first")
	cmd.Flags().Bool("no-baseline", false, "Skip the zero-personality baseline")
	RootCmd.AddCommand(cmd)
}

func runCompare(cmd *cobra.Command, args []string) {
	message := strings.Join(args, " ")

	client := openClient()
	defer client.Close()

	if userID, _ := cmd.Flags().GetString("load"); userID != "" {
		found, err := client.LoadProfile(cmd.Context(), userID)
		if err != nil {
			exitErr("loading profile", err)
		}
		if !found {
			log.Warn("no persisted profile", "user", userID)
		}
	}

	if skip, _ := cmd.Flags().GetBool("no-baseline"); !skip {
		baseline, err := client.Baseline(cmd.Context(), message)
		if err != nil {
			exitErr("generating baseline", err)
		}
		printResponse(baseline.PersonaName, baseline.Text)
	}

	responses, err := client.CompareAll(cmd.Context(), message)
	if err != nil {
		exitErr("comparing personas", err)
	}
	for _, r := range responses {
		printResponse(r.PersonaName, r.Text)
	}
}

func printResponse(name, text string) {
	fmt.Printf("=== %s ===\n%s\n\n", name, text)
}
