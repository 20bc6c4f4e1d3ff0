// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lexis CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smyrgeorge/lexis/internal/provider"
	"github.com/smyrgeorge/lexis/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// resolveKey returns the first non-empty credential among the explicit
// value, the environment variable, and the .secrets/ key file.
func resolveKey(explicit, envVar, secretFile string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return loadedSecrets[secretFile]
}

// providerKey resolves the credential for the named provider. The rules
// provider runs offline and needs none.
func providerKey(providerName, explicit string) string {
	switch providerName {
	case provider.ProviderChatGPT:
		return resolveKey(explicit, "OPENAI_API_KEY", secrets.KeyOpenAI)
	case provider.ProviderRules:
		return ""
	default:
		return resolveKey(explicit, "ANTHROPIC_API_KEY", secrets.KeyAnthropic)
	}
}

// flagOrConfig returns the string flag value when set on the command line,
// otherwise the config/env value under key, otherwise the flag default.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// intFlagOrConfig is flagOrConfig for integer flags.
func intFlagOrConfig(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

// rootCmd is the base command for the lexis CLI.
var rootCmd = &cobra.Command{
	Use:   "lexis",
	Short: "Chunked document translation pipeline",
	Long: `lexis translates long documents with LLM providers by working in
bounded chunks. It splits PDFs into page ranges, converts them to Markdown,
splits the Markdown along structure or size, and translates chunk by chunk,
resuming wherever output files already exist.

Each stage is a subcommand: chunk-pdf, convert, chunk-md, translate, and
clean. The pipeline subcommand runs a whole workspace end to end.`,
}

func init() {
	// Assigned here rather than in the literal above: the closure reads
	// rootCmd, which would otherwise be an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}

		// A .env beside the invocation is a convenience for API keys;
		// real environment variables win.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", "keys", keys)
		}
		return nil
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lexis.yaml or ~/.config/lexis/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lexis")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lexis"))
		}
	}

	viper.SetEnvPrefix("LEXIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
