// Package commands provides the aiguru command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/08Ankit28/AI-Guru/config"
	"github.com/08Ankit28/AI-Guru/services"
)

var (
	configFlag string

	// Version info (set at build time)
	Version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "aiguru",
	Short: "AI Guru chat assistant",
	Long: `AI Guru forwards your messages to an OpenAI-compatible completion endpoint
and falls back to canned replies when the service cannot be reached.

Examples:
  aiguru serve                 Run the HTTP API on $PORT
  aiguru chat                  Chat in the terminal
  AIGURU_SERVER_URL=http://localhost:8080 aiguru chat
                               Chat through a running server`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(newServeCmd(), newChatCmd())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (config.Config, error) {
	return config.Load(configFlag)
}

func newOpenAICompleter(cfg config.Config) (*services.OpenAICompleter, error) {
	return services.NewOpenAICompleter(services.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
}
