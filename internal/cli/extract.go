package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/companion-labs/companion-go/pkg/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract [transcript.json]",
		Short: "Extract memories from a chat transcript",
		Long: "Extract memories from a chat transcript and merge them into the profile.\n" +
			"The transcript is a JSON array of {id, timestamp, content} objects, read\n" +
			"from the given file or from stdin.",
		Args: cobra.MaximumNArgs(1),
		Run:  runExtract,
	}
	cmd.Flags().String("save", "", "Persist the merged profile under this user ID afterwards")
	RootCmd.AddCommand(cmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("reading transcript", err)
	}

	var transcript []memory.ChatMessage
	if err := json.Unmarshal(data, &transcript); err != nil {
		exitErr("parsing transcript", err)
	}

	client := openClient()
	defer client.Close()

	log.Info("extracting memories", "messages", len(transcript))
	batch, err := client.ExtractMemories(cmd.Context(), transcript)
	if err != nil {
		exitErr("extracting memories", err)
	}
	log.Info("extraction complete",
		"preferences", len(batch.Preferences),
		"patterns", len(batch.EmotionalPatterns),
		"facts", len(batch.FactsWorthRemembering))

	fmt.Println(client.FullMemoryContext())

	if userID, _ := cmd.Flags().GetString("save"); userID != "" {
		if err := client.SaveProfile(cmd.Context(), userID); err != nil {
			exitErr("saving profile", err)
		}
		log.Info("profile saved", "user", userID)
	}
}
