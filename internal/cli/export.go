package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rollcall-io/rollcall/internal/export"
)

var reportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload the attendance log as CSV to object storage",
	Long: `Upload the attendance log as CSV to the bucket configured under 'export' in
settings.yaml. S3, Cloudflare R2 and MinIO are supported through export.endpoint.`,
	RunE: runExport,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the attendance log as a PDF report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "attendance_report.pdf", "PDF file to write")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, s, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	client, err := export.NewS3Client(ctx, s.Export)
	if err != nil {
		return err
	}
	uploader, err := export.NewUploader(client, s.Export)
	if err != nil {
		return err
	}

	logTable, err := b.Logs(ctx)
	if err != nil {
		return err
	}
	key, err := uploader.Upload(ctx, logTable)
	if err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render(fmt.Sprintf("Exported %d entries to s3://%s/%s", logTable.Len(), s.Export.Bucket, key)))
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, _, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	logTable, err := b.Logs(ctx)
	if err != nil {
		return err
	}

	data, err := export.PDF(export.Report{
		Source:    b.Describe(),
		Generated: time.Now(),
		Table:     logTable,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(reportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Println(styleSuccess.Render(fmt.Sprintf("Report with %d entries written to %s", logTable.Len(), reportOutput)))
	return nil
}
