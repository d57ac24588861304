package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wikid/wikid/internal/infra/elasticsearch/common"
	"github.com/wikid/wikid/internal/infra/elasticsearch/index"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run wikid setup",
	Long:  "Runs the setup routines for Wikid, installing the document and revision index templates",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		esClient, err := common.NewClient(appConfig.Elasticsearch)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not setup Elasticsearch client")
		}

		log.Info().Msg("Setting up Index templates")
		templatesSetup := index.DefaultTemplateSetup(esClient)
		if err := templatesSetup.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to install index templates")
		}
		log.Info().Msg("Setup complete.")
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
