package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"qa-report/internal/reports"
)

var showCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Print the assembled report record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showOutput string

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showOutput, "output", "json", "Output format: json | yaml")
}

func runShow(cmd *cobra.Command, args []string) error {
	analysisID, err := parseID(args[0], "analysis id")
	if err != nil {
		return err
	}
	if showOutput != "json" && showOutput != "yaml" {
		return fmt.Errorf("unsupported output %q (use json or yaml)", showOutput)
	}

	return withService(cmd, func(ctx context.Context, svc *reports.Service) error {
		report, err := svc.Assemble(ctx, analysisID)
		if err != nil {
			printNotice(cmd.ErrOrStderr(), reports.Notify(err, ""))
			return reportedError{err: err}
		}

		var data []byte
		if showOutput == "yaml" {
			data, err = yaml.Marshal(report)
		} else {
			data, err = json.MarshalIndent(report, "", "  ")
			data = append(data, '\n')
		}
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	})
}
