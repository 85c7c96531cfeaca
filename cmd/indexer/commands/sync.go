package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/app"
	config "github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	syncBatchSize int
	syncTimeout   time.Duration
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Index the whole product catalog",
	Long:  "Embed every product of the catalog and upsert it into the vector collection, creating the collection if needed.",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncBatchSize, "batch-size", usecase.DefaultSyncBatchSize, "products per embedding request")
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", time.Hour, "overall sync timeout")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncBatchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", syncBatchSize)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	cfg, err := config.Load(log)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	indexer, err := app.NewIndexer(cfg, log)
	if err != nil {
		return fmt.Errorf("init indexer: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		if err := indexer.Close(closeCtx); err != nil {
			log.Warnf("indexer shutdown: %v", err)
		}
	}()

	res, err := indexer.Sync(ctx, syncBatchSize)
	if err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d products, %d failed batches\n", res.Indexed, res.FailedBatches)

	return nil
}
