package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/saravenpi/chatview/internal/config"
	"github.com/saravenpi/chatview/internal/feed"
	"github.com/saravenpi/chatview/internal/logging"
	"github.com/saravenpi/chatview/internal/ui"
)

const version = "1.0.0"

const longHelp = `Chatview - Terminal Chat Viewer

Loads a JSON document of chat rooms and shows them in the terminal. Messages
you type are only added to the open conversation on screen; nothing is sent.

Sources:
  https://...        Fetch the document once over HTTP (default: sample gist)
  path/to/file.json  Read the document from disk
  sqlite://path      Read rooms, participants and comments from SQLite

Navigation:
  ↑/↓ or j/k        Navigate conversations
  Enter             Open conversation / send message
  Tab               Switch between conversations and composer
  ctrl+s            Send message
  PgUp/PgDn         Scroll messages
  /                 Search conversations
  q                 Quit from the conversation list
  ctrl+c            Force quit

Configuration:
  ~/.chatview/config.yml, a .env file and CHATVIEW_* variables
  (CHATVIEW_SOURCE, CHATVIEW_LOCAL_SENDER, CHATVIEW_LOG_FILE, CHATVIEW_LOG_LEVEL).
`

func newRootCommand() *cobra.Command {
	var (
		configPath string
		source     string
		sender     string
		logFile    string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "chatview",
		Short:         "Terminal chat viewer",
		Long:          longHelp,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.Source = source
			}
			if flags.Changed("sender") {
				cfg.LocalSender = sender
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			src := feed.Open(cfg.Source)
			logger.Info("starting", "version", version, "source", src.Name())

			model := ui.NewChatModel(ui.Options{
				Context:     ctx,
				Source:      src,
				LocalSender: cfg.LocalSender,
				Logger:      logger,
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			cancel()
			if err != nil {
				logger.Error("program exited", "err", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "config file")
	cmd.Flags().StringVarP(&source, "source", "s", "", "chat document URL, JSON file or sqlite:// path")
	cmd.Flags().StringVar(&sender, "sender", "", "label for messages you compose")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Chatview v%s\n", version)
		},
	})

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
