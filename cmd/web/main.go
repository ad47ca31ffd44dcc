package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/faoa-tools/annual-report/pkg/server"
	"github.com/faoa-tools/annual-report/pkg/services/config"
	"github.com/faoa-tools/annual-report/pkg/services/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the FAOA annual report web server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		Password:        cfg.Password,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Sessions: session.NewStore(),
		},
	})

	return api.Start()
}
