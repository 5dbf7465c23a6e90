package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"qa-report/internal/reports"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List agents ordered by name",
	Args:  cobra.NoArgs,
	RunE:  runAgents,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc *reports.Service) error {
		agents, err := svc.Catalog.ListAgents(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(agents) == 0 {
			fmt.Fprintln(out, "No agents found.")
			return nil
		}
		fmt.Fprintf(out, "%-8s %s\n", "ID", "AGENT")
		for _, a := range agents {
			fmt.Fprintf(out, "%-8d %s\n", a.ID, a.Name)
		}
		return nil
	})
}
