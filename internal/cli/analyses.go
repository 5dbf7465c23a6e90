package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"qa-report/internal/reports"
)

// analysisTimeLayout matches how the analysis picker has always shown dates.
const analysisTimeLayout = "2006-01-02 03:04 PM"

var analysesCmd = &cobra.Command{
	Use:   "analyses <agent-id>",
	Short: "List an agent's analyses, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyses,
}

func init() {
	rootCmd.AddCommand(analysesCmd)
}

func runAnalyses(cmd *cobra.Command, args []string) error {
	agentID, err := parseID(args[0], "agent id")
	if err != nil {
		return err
	}
	return withService(cmd, func(ctx context.Context, svc *reports.Service) error {
		refs, err := svc.Catalog.ListAnalyses(ctx, agentID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(refs) == 0 {
			fmt.Fprintf(out, "No analyses found for agent %d.\n", agentID)
			return nil
		}
		fmt.Fprintf(out, "%-8s %s\n", "ID", "ANALYZED")
		for _, ref := range refs {
			when := "N/A"
			if !ref.AnalyzedAt.IsZero() {
				when = ref.AnalyzedAt.Format(analysisTimeLayout)
			}
			fmt.Fprintf(out, "%-8d %s\n", ref.ID, when)
		}
		return nil
	})
}
