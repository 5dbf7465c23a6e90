package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"qa-report/internal/reports"
	"qa-report/report/render"
)

var downloadCmd = &cobra.Command{
	Use:   "download <analysis-id>",
	Short: "Render an analysis to a DOCX or PDF file",
	Long: `Assemble the analysis and render it to a document.

Without --out the file is written to the configured output directory as
QA_Report_<agent>_<date>.<ext>. Use --out - to write the document to stdout.
The format follows --format, then the --out extension, then the configured default.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

var (
	downloadOut    string
	downloadFormat string
)

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVarP(&downloadOut, "out", "o", "", "Destination path, or - for stdout")
	downloadCmd.Flags().StringVarP(&downloadFormat, "format", "f", "", "Document format: docx | pdf")
}

func runDownload(cmd *cobra.Command, args []string) error {
	analysisID, err := parseID(args[0], "analysis id")
	if err != nil {
		return err
	}
	var format render.Format
	if downloadFormat != "" {
		if format, err = render.ParseFormat(downloadFormat); err != nil {
			return err
		}
	}

	return withService(cmd, func(ctx context.Context, svc *reports.Service) error {
		if downloadOut == "-" {
			if _, err := svc.Stream(ctx, analysisID, cmd.OutOrStdout(), format); err != nil {
				printNotice(cmd.ErrOrStderr(), reports.Notify(err, ""))
				return reportedError{err: err}
			}
			return nil
		}

		path, err := svc.Download(ctx, analysisID, downloadOut, format)
		notice := reports.Notify(err, path)
		if err != nil {
			printNotice(cmd.ErrOrStderr(), notice)
			return reportedError{err: err}
		}
		printNotice(cmd.OutOrStdout(), notice)
		return nil
	})
}

func printNotice(w io.Writer, n reports.Notice) {
	fmt.Fprintf(w, "%s: %s\n", n.Title, n.Message)
}
