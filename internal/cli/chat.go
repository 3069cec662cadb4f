package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a message and get a persona-styled response",
		Args:  cobra.MinimumNArgs(1),
		Run:   runChat,
	}
	cmd.Flags().StringP("persona", "p", "", "Persona key (default from configuration)")
	cmd.Flags().String("load", "", "Restore a persisted profile for this user ID first")
	cmd.Flags().Bool("baseline", false, "Use the zero-personality baseline instead of a persona")
	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
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

	baseline, _ := cmd.Flags().GetBool("baseline")
	personaKey, _ := cmd.Flags().GetString("persona")

	if baseline {
		r, e := client.Baseline(cmd.Context(), message)
		if e != nil {
			exitErr("generating response", e)
		}
		fmt.Printf("[%s]\n%s\n", r.PersonaName, r.Text)
		return
	}

	r, err := client.Chat(cmd.Context(), message, personaKey)
	if err != nil {
		exitErr("generating response", err)
	}
	fmt.Printf("[%s]\n%s\n", r.PersonaName, r.Text)
}
