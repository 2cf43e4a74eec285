// internal/cli/root.go
package modelmap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mwiater/modelmap/internal/appconfig"
	"github.com/mwiater/modelmap/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// loadedConfigFile is the config file actually read, empty when defaults apply.
var loadedConfigFile string

var errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()

// boolFlagKeys maps boolean flag names to their viper keys.
var boolFlagKeys = map[string]string{
	"debug":      "debug",
	"jsonMode":   "jsonMode",
	"locations":  "locations",
	"non-openai": "nonOpenAI",
}

var rootCmd = &cobra.Command{
	Use:           "modelmap",
	Short:         "Inventory Azure AI Foundry models across regions",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		for flag, key := range boolFlagKeys {
			if f := cmd.Flags().Lookup(flag); f != nil && !f.Changed {
				_ = cmd.Flags().Set(flag, strconv.FormatBool(viper.GetBool(key)))
			}
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > env > config > defaults).
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = loadedConfigFile
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath(), cfg.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on error. Interrupts
// cancel the in-flight scan.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logging.Close()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorLabel("Error:"), err)
		_ = logging.Close()
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "write the report as JSON")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file (default modelmap.log)")
	rootCmd.PersistentFlags().String("export", "", "also write the JSON report to this file")
	rootCmd.PersistentFlags().Int("timeout", 0, "seconds allowed per control-plane request (0 = default)")
	rootCmd.PersistentFlags().Int("concurrency", 0, "regions queried at once (0 = default, 1 = sequential)")

	for _, name := range []string{"debug", "jsonMode", "logFile", "export", "timeout", "concurrency"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	_ = viper.BindEnv("subscription", "AZURE_SUBSCRIPTION_ID")
	_ = viper.BindEnv("accessToken", "AZURE_ACCESS_TOKEN")
}

// initConfig loads a .env file when present and points viper at the config file.
func initConfig() {
	_ = godotenv.Load()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded validates and reads the config file. A missing file is
// read as an empty document so flags, environment and defaults still apply.
func ensureConfigLoaded() error {
	loadedConfigFile = ""
	if cfgFile == "" {
		return nil
	}
	if err := appconfig.ValidateFile(cfgFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			viper.SetConfigType("json")
			return viper.ReadConfig(strings.NewReader("{}"))
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	loadedConfigFile = viper.ConfigFileUsed()
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
