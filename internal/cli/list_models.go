// internal/cli/list_models.go
package modelmap

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwiater/modelmap/internal/appconfig"
	"github.com/mwiater/modelmap/internal/arm"
	"github.com/mwiater/modelmap/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// function aliases allow tests to substitute the Azure CLI and the control plane.
var (
	azRunner    arm.Runner = arm.ExecRunner
	newQuerier             = newARMQuerier
)

// listModelsCmd implements 'list models', which scans every region for models
// supporting the Responses API and reports their regional coverage.
var listModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models that support the Responses API in each region",
	Long: `The 'models' subcommand queries the ARM control plane (Microsoft.CognitiveServices) in every configured
region and lists the models tagged with the "responses" capability.

ARM only tags OpenAI-format models with "responses". Non-OpenAI models (DeepSeek, Meta, xAI, ...) that
support chat completion also work with the Responses API; use --non-openai to list those instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appconfig.Config{}
		if c := GetConfig(); c != nil {
			cfg = *c
		}
		return runListModels(cmd.Context(), cmd, cfg)
	},
}

func runListModels(ctx context.Context, cmd *cobra.Command, cfg appconfig.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	subscription, err := arm.ResolveSubscription(ctx, cfg.Subscription, azRunner)
	if err != nil {
		if errors.Is(err, arm.ErrNoSubscription) {
			return fmt.Errorf("%w. Pass --subscription or sign in with 'az login'", err)
		}
		return err
	}

	q, err := newQuerier(ctx, cfg, subscription)
	if err != nil {
		return err
	}
	return models.ListModels(ctx, cfg, subscription, q, cmd.OutOrStdout())
}

// newARMQuerier builds an authenticated ARM client for the subscription.
// Tokens come from AZURE_ACCESS_TOKEN when set, otherwise from DefaultAzureCredential.
func newARMQuerier(ctx context.Context, cfg appconfig.Config, subscription string) (models.RegionQuerier, error) {
	ts, err := arm.NewDefaultTokenSource(ctx, cfg.AccessToken, nil)
	if err != nil {
		return nil, err
	}
	return arm.NewClient(subscription, ts, arm.Options{
		Endpoint:   cfg.ManagementEndpoint(),
		APIVersion: cfg.ModelsAPIVersion(),
		Timeout:    cfg.RequestTimeout(),
	})
}

func init() {
	listModelsCmd.Flags().StringP("subscription", "s", "", "Azure subscription ID (defaults to your active subscription)")
	listModelsCmd.Flags().BoolP("locations", "l", false, "show per-region breakdown for models not available in all regions")
	listModelsCmd.Flags().Bool("non-openai", false, "list non-OpenAI models (DeepSeek, Meta, xAI, etc.) that support chat completion and work with the Responses API")

	_ = viper.BindPFlag("subscription", listModelsCmd.Flags().Lookup("subscription"))
	_ = viper.BindPFlag("locations", listModelsCmd.Flags().Lookup("locations"))
	_ = viper.BindPFlag("nonOpenAI", listModelsCmd.Flags().Lookup("non-openai"))

	listCmd.AddCommand(listModelsCmd)
}
