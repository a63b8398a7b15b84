package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/render"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/report"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var reportFile string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a saved JSON report as text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data []byte
			var err error
			if reportFile == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(reportFile)
			}
			if err != nil {
				return fmt.Errorf("failed to read report: %w", err)
			}

			var r report.MatchReport
			if err := json.Unmarshal(data, &r); err != nil {
				return fmt.Errorf("failed to decode report: %w", err)
			}
			if err := r.Validate(); err != nil {
				return fmt.Errorf("invalid report: %w", err)
			}

			return render.Text(cmd.OutOrStdout(), &r)
		},
	}

	cmd.Flags().StringVar(&reportFile, "report", "", "JSON report file, as written by analyze --json (- for stdin)")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}
