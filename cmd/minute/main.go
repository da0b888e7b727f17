package main

import (
	"fmt"
	"os"

	"github.com/minute-tui/minute/config"
	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/cli"
	"github.com/minute-tui/minute/internal/output"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := api.New(api.Config{
		BaseURL:     cfg.APIURL,
		Token:       cfg.Token,
		WorkspaceID: cfg.WorkspaceID,
		Timeout:     cfg.Timeout,
	})

	deps := &cli.Dependencies{
		Config: cfg,
		Client: client,
	}

	return cli.NewRootCmd(deps).Execute()
}
