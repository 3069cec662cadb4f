// Package cli implements the companion CLI commands.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/companion-labs/companion-go/pkg/core"
)

var verbose bool

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "companion",
	Short: "Memory-profiled persona chat for a companion AI",
	Long: "Extracts a durable memory profile from chat history and uses it to bias\n" +
		"responses toward one of several fixed personas. Configuration comes from\n" +
		"the environment (or a .env file); see core.LoadConfigFromEnv.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func openClient() *core.Client {
	cfg, err := core.LoadConfigFromEnv()
	if err != nil {
		exitErr("loading configuration", err)
	}
	client, err := core.NewClient(cfg)
	if err != nil {
		exitErr("initializing client", err)
	}
	return client
}

func exitErr(msg string, err error) {
	log.Error(msg, "err", err)
	os.Exit(1)
}
