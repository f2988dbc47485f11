package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/portworks/craneview/internal/config"
	"github.com/portworks/craneview/internal/dashboard"
	"github.com/portworks/craneview/internal/db"
	"github.com/portworks/craneview/internal/digest"
	"github.com/portworks/craneview/internal/livesync"
	"github.com/portworks/craneview/internal/notify"
	"github.com/portworks/craneview/internal/notify/discord"
	"github.com/portworks/craneview/internal/notify/slack"
	"github.com/portworks/craneview/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live dashboard and digest scheduler",
		Long:  "Launches the dashboard server with live-updating fleet views, plus the daily digest scheduler when chat delivery is configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "dashboard port (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	st := store.New(gormDB)

	if port <= 0 {
		port = cfg.Dash.HTTPPort
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	views := livesync.BuildViews(st, livesync.ViewOpts{})
	views.Start(ctx)
	defer views.Close()

	adapters, err := buildAdapters(cfg.Digest)
	if err != nil {
		return err
	}
	defer func() {
		for _, a := range adapters {
			a.Close()
		}
	}()

	if len(adapters) > 0 {
		runner, err := digest.NewRunner(digest.RunnerOpts{
			Store:    st,
			Adapters: adapters,
			Schedule: cfg.Digest.Schedule,
			Out:      out,
		})
		if err != nil {
			return err
		}
		go runner.Run(ctx)
		names := make([]string, len(adapters))
		for i, a := range adapters {
			names[i] = a.Name()
		}
		fmt.Fprintf(out, "Digest scheduled (%s) for %v\n", cfg.Digest.Schedule, names)
	}

	return dashboard.Start(ctx, dashboard.StartOpts{
		Store: st,
		Views: views,
		Port:  port,
		Out:   out,
	})
}

// buildAdapters creates the chat adapters the config enables.
func buildAdapters(cfg config.DigestConfig) ([]notify.Adapter, error) {
	var adapters []notify.Adapter
	if cfg.Slack.Token != "" {
		a, err := slack.New(slack.AdapterOpts{
			Token:   cfg.Slack.Token,
			Channel: cfg.Slack.Channel,
		})
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	if cfg.Discord.Token != "" {
		a, err := discord.New(discord.AdapterOpts{
			Token:     cfg.Discord.Token,
			ChannelID: cfg.Discord.ChannelID,
		})
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}
