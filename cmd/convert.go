package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"chart-catalog/core/config"
	"chart-catalog/core/database"
	"chart-catalog/core/logger"
	"chart-catalog/core/storage"
	"chart-catalog/feature/chart"
	"chart-catalog/feature/chart/archive"
	"chart-catalog/feature/chart/source"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for convert commands
	archiveCatalog bool
	publishOutputs bool
	outputDirFlag  string
)

// convertCmd is the parent command for pipeline runs.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run the chart conversion pipeline",
	Long: `Convert the raw song feed into the normalized chart catalog.
The domestic and international services use separate feeds, constants and
output documents, so each has its own subcommand.`,
}

// convertDomesticCmd runs the domestic pipeline.
var convertDomesticCmd = &cobra.Command{
	Use:   "domestic",
	Short: "Convert the domestic song feed",
	Long: `Convert the domestic song feed into convert_music_data.json.

Reconciliation sources: the cached catalog (music_data/origin_music_data.json)
for ids, and the community dataset for the basic/advanced ratings.

Examples:
  # Plain run
  convert domestic

  # Also upsert the catalog into the database
  convert domestic --archive

  # Also upload the output document to object storage
  convert domestic --publish`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(false)
	},
}

// convertIntlCmd runs the international pipeline.
var convertIntlCmd = &cobra.Command{
	Use:   "intl",
	Short: "Convert the international song feed",
	Long: `Convert the international song feed into convert_intl_music_data.json and
fold it onto the cached master catalog to produce intl_music_data.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(true)
	},
}

func init() {
	convertCmd.AddCommand(convertDomesticCmd)
	convertCmd.AddCommand(convertIntlCmd)

	convertCmd.PersistentFlags().BoolVar(&archiveCatalog, "archive", false, "Upsert the reconciled catalog into the database")
	convertCmd.PersistentFlags().BoolVar(&publishOutputs, "publish", false, "Upload the generated documents to object storage")
	convertCmd.PersistentFlags().StringVar(&outputDirFlag, "output-dir", "", "Override the configured output directory")

	RootCmd.AddCommand(convertCmd)
}

func runConvert(international bool) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if outputDirFlag != "" {
		cfg.Pipeline.OutputDir = outputDirFlag
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	feeds := source.NewClient(cfg.Feeds)
	svc := chart.NewService(feeds, l, cfg.Pipeline)

	var result *chart.RunResult
	if international {
		l.Info("Starting international conversion")
		result, err = svc.RunInternational(ctx)
	} else {
		l.Info("Starting domestic conversion")
		result, err = svc.RunDomestic(ctx)
	}
	if err != nil {
		return err
	}

	if archiveCatalog {
		if err := archiveResult(ctx, cfg, l, result); err != nil {
			return err
		}
	}

	if publishOutputs {
		if err := publishResult(ctx, cfg, l, result); err != nil {
			return err
		}
	}

	l.Info("Conversion finished", zap.Int("entries", len(result.Catalog)))
	return nil
}

// archiveResult upserts the reconciled catalog into the database.
func archiveResult(ctx context.Context, cfg *config.Config, l *zap.Logger, result *chart.RunResult) error {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	arc := archive.New(db, l)
	if err := arc.Migrate(ctx); err != nil {
		return err
	}
	return arc.SaveAll(ctx, result.Catalog)
}

// publishResult uploads every generated document to the configured
// bucket, creating the bucket on first use.
func publishResult(ctx context.Context, cfg *config.Config, l *zap.Logger, result *chart.RunResult) error {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	return uploadDocuments(ctx, client, cfg.Storage, l, result.OutputPaths)
}

func uploadDocuments(ctx context.Context, client storage.Client, cfg storage.Config, l *zap.Logger, paths []string) error {
	bucket := cfg.Bucket
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		objectName := filepath.Base(path)
		_, err = client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", objectName, err)
		}
		l.Info("Published document",
			zap.String("bucket", bucket),
			zap.String("object", objectName),
			zap.Int("bytes", len(data)),
		)
	}
	return nil
}
