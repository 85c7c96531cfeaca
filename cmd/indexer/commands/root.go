package commands

import (
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string
	log     logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "Catalog indexer for the recommendation engine",
	Long: `The indexer embeds products from the PostgreSQL catalog and stores
them in the Qdrant collection used by the recommendation service.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.NewSlogLogger()

		if err := godotenv.Load(envFile); err != nil {
			log.Debugf("%s not loaded: %v", envFile, err)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to .env file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
