package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"planner-agent/internal/di"
	"planner-agent/internal/infrastructure/config"
	"planner-agent/internal/infrastructure/console"
	"planner-agent/internal/infrastructure/env"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "agent",
		Short: "Goal-decomposing planner agent",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(runCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	envService := env.NewEnvService()
	return config.Load(configPath, envService)
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [goal]",
		Short: "Process a single goal and print the final answer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			goal := ""
			if len(args) == 1 {
				goal = args[0]
			} else {
				fmt.Println("\nEnter a goal for the agent:")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read goal: %w", err)
				}
				goal = strings.TrimSpace(line)
			}
			if goal == "" {
				return fmt.Errorf("empty goal")
			}

			container, err := di.NewContainer(cfg, console.New())
			if err != nil {
				return err
			}
			defer container.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()

			container.Logger.Info("Goal started", "goal", goal)
			result, err := container.Processor.Process(ctx, goal)
			if err != nil {
				container.Logger.Error("Goal failed", "error", err)
				return fmt.Errorf("processing failed: %w", err)
			}

			container.Logger.Info("Goal completed", "success", result.Success)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			container, err := di.NewContainer(cfg, console.NewSilent())
			if err != nil {
				return err
			}
			defer container.Close()

			return container.ListenAndServe(cfg.Server.Addr)
		},
	}
}
