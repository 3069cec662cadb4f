package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/companion-labs/companion-go/pkg/persona"
)

func init() {
	cmd := &cobra.Command{
		Use:   "personas",
		Short: "List the available personas",
		Run:   runPersonas,
	}
	RootCmd.AddCommand(cmd)
}

func runPersonas(cmd *cobra.Command, args []string) {
	for _, p := range persona.DefaultRegistry().List() {
		fmt.Printf("%-16s %s\n", p.Key, p.Name)
		fmt.Printf("%-16s %s\n", "", p.Description)
		fmt.Printf("%-16s tone: %s\n\n", "", p.Traits.Tone)
	}
}
