package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SEOAutomation/internal/app"
	"SEOAutomation/internal/config"
	"SEOAutomation/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "seoautomation",
		Short:         "Plan, generate and publish SEO articles for a hosting brand",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("SEO_AUTOMATION_CONFIG"), "path to YAML config")

	withApp := func(cmd *cobra.Command, fn func(*app.Application) error) error {
		cfg := config.LoadFrom(configPath)
		logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

		application, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := application.Close(); err != nil {
				logger.Warn("close application", "error", err)
			}
		}()
		return fn(application)
	}

	var maxItems int
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.Application) error {
				result := a.RunOnce(cmd.Context(), maxItems)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			})
		},
	}
	run.Flags().IntVar(&maxItems, "max", 0, "maximum items to publish (0 uses config)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduler and the HTTP trigger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.Application) error {
				return a.Serve(cmd.Context())
			})
		},
	}

	var topicMax int
	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "Print the topics the next run would plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.Application) error {
				for _, topic := range a.Topics(topicMax) {
					fmt.Fprintln(cmd.OutOrStdout(), topic)
				}
				return nil
			})
		},
	}
	topicsCmd.Flags().IntVar(&topicMax, "max", 0, "number of topics (0 uses config)")

	root.AddCommand(run, serve, topicsCmd)
	return root
}
