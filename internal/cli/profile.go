package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and manage persisted memory profiles",
	}

	showCmd := &cobra.Command{
		Use:   "show [user-id]",
		Short: "Print the full, untruncated profile for a user",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileShow,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [user-id]",
		Short: "Delete the persisted profile for a user",
		Args:  cobra.ExactArgs(1),
		Run:   runProfileDelete,
	}

	profileCmd.AddCommand(showCmd, deleteCmd)
	RootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) {
	client := openClient()
	defer client.Close()

	found, err := client.LoadProfile(cmd.Context(), args[0])
	if err != nil {
		exitErr("loading profile", err)
	}
	if !found {
		log.Warn("no persisted profile", "user", args[0])
		return
	}
	fmt.Println(client.FullMemoryContext())
}

func runProfileDelete(cmd *cobra.Command, args []string) {
	client := openClient()
	defer client.Close()

	if err := client.DeleteProfile(cmd.Context(), args[0]); err != nil {
		exitErr("deleting profile", err)
	}
	log.Info("profile deleted", "user", args[0])
}
