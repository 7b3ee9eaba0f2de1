package commands

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/08Ankit28/AI-Guru/config"
	"github.com/08Ankit28/AI-Guru/conversation"
	"github.com/08Ankit28/AI-Guru/models"
	"github.com/08Ankit28/AI-Guru/services"
	"github.com/08Ankit28/AI-Guru/tui"
	"github.com/08Ankit28/AI-Guru/workflows"
)

func newChatCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with AI Guru in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}
			return runChat(cfg)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "chat through a running aiguru server at this URL")
	return cmd
}

// chatCompleter picks how the widget reaches the model: through a running
// server when one is configured, otherwise straight to the completion API.
func chatCompleter(cfg config.Config) (services.Completer, string, error) {
	if cfg.ServerURL != "" {
		return services.NewRemoteCompleter(cfg.ServerURL, nil), cfg.ServerURL, nil
	}
	completer, err := newOpenAICompleter(cfg)
	if err != nil {
		return nil, "", err
	}
	return completer, completer.Model(), nil
}

func runChat(cfg config.Config) error {
	// The widget owns the terminal, so logs only go to the file if one is set
	logger, cleanup := config.SetupLogger(io.Discard, cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	completer, label, err := chatCompleter(cfg)
	if err != nil {
		return fmt.Errorf("init completion client: %w", err)
	}

	store := conversation.NewStore(models.WelcomeMessage())
	wf := workflows.NewChatWorkflows(store, completer, logger)

	p := tea.NewProgram(tui.NewChatModel(wf, label), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	return nil
}
