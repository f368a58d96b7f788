// Package cmd implements the fastly-sync command line interface. It is a
// thin collaborator: flag and environment handling live here, never inside
// the enforcer.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/matryer/resync"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cdnops/fastly-sync/internal/fastly"
	"github.com/cdnops/fastly-sync/internal/log"
)

var rootCmd = &cobra.Command{
	Use:           "fastly-sync",
	Short:         "Declarative synchronization of Fastly VCL services",
	Long:          "fastly-sync reconciles a YAML service manifest against the Fastly API,\ncreating a draft version when needed, applying the minimal set of changes\nand optionally activating the result.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Config{
			Level: viper.GetString("log_level"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-key", "", "Fastly API key (defaults to FASTLY_API_KEY)")
	flags.String("api-url", fastly.DefaultBaseURL, "Fastly API base URL (defaults to FASTLY_API_URL)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "emit JSON logs instead of console output")

	cobra.CheckErr(viper.BindPFlag("api_key", flags.Lookup("api-key")))
	cobra.CheckErr(viper.BindPFlag("api_url", flags.Lookup("api-url")))
	cobra.CheckErr(viper.BindPFlag("log_level", flags.Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log_json", flags.Lookup("log-json")))
	cobra.CheckErr(viper.BindEnv("api_key", "FASTLY_API_KEY"))
	cobra.CheckErr(viper.BindEnv("api_url", "FASTLY_API_URL"))
}

var pingOnce resync.Once

// newClient builds the API client from explicit configuration and verifies
// connectivity once per process, however many manifests a run covers.
func newClient(ctx context.Context) (*fastly.Client, error) {
	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return nil, fmt.Errorf("a Fastly API key is required; set --api-key or FASTLY_API_KEY")
	}

	client := fastly.New(viper.GetString("api_url"), apiKey)

	var pingErr error
	pingOnce.Do(func() {
		pingErr = client.Ping(ctx)
	})
	if pingErr != nil {
		pingOnce.Reset()
		return nil, fmt.Errorf("verifying API credentials: %w", pingErr)
	}
	return client, nil
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
