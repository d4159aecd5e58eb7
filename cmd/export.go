package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iksnae/support-analytics/internal"
	"github.com/iksnae/support-analytics/internal/export"
	"github.com/spf13/cobra"
)

var (
	format       string
	outputDir    string
	exportStatus string
	toStdout     bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard to a file",
	Long: `Export the dashboard in one of several formats (json, jsonl, yaml, md).

json and yaml contain the whole dashboard, jsonl one issue per line and md a
readable report. When the store cannot be reached, the last-good dashboard is
exported if there is one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}
		filter, err := internal.ParseStatusFilter(exportStatus)
		if err != nil {
			return err
		}

		ctx := context.Background()
		env, err := openDashboardEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		d, loadErr := loadDashboard(ctx, env.service, filter)
		if loadErr != nil && !d.Stale {
			return loadErr
		}

		if toStdout {
			if err := exporter.Export(d, cmd.OutOrStdout()); err != nil {
				return &internal.ExportError{Format: format, Path: "-", Err: err}
			}
			return nil
		}

		path, err := writeExport(exporter, d, outputDir, time.Now())
		if err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Export complete: %s", path))
		return nil
	},
}

// exportFilename names an export after the time its data was loaded
func exportFilename(d *internal.Dashboard, ext string, now time.Time) string {
	ts := d.LoadedAt
	if ts.IsZero() {
		ts = now
	}
	return fmt.Sprintf("dashboard_%s_%s.%s", ts.UTC().Format("20060102-150405"), d.Filter, ext)
}

func writeExport(exporter export.Exporter, d *internal.Dashboard, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, exportFilename(d, exporter.Extension(), now))
	file, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(d, file); err != nil {
		_ = file.Close()
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return "", &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return path, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json, jsonl, yaml, md)")
	exportCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVarP(&exportStatus, "status", "s", "all", "Issue status to include (all, open, resolved, pending)")
	exportCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write to stdout instead of a file")
}
