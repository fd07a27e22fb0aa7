package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/petfriends-client/internal/app"
	"github.com/samvad-hq/petfriends-client/internal/config"
	"github.com/samvad-hq/petfriends-client/internal/logger"
	"github.com/samvad-hq/petfriends-client/internal/scenario"
	"github.com/samvad-hq/petfriends-client/pkg/httpclient"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "petcheck failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("petcheck", flag.ContinueOnError)
	flags.SetOutput(stdout)
	cleanup := flags.Bool("cleanup", false, "delete pets recorded by earlier runs and exit")
	list := flags.Bool("list", false, "print the selected scenarios and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("petcheck starting", "config", map[string]any{
		"app_name":   cfg.AppName,
		"app_env":    cfg.Env,
		"base_url":   cfg.BaseURL,
		"images":     cfg.ImagesDir,
		"scenarios":  cfg.ScenariosFile,
		"storage":    cfg.StorageType,
		"publishers": cfg.PublishersFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := httpclient.NewRestyClient(cfg.RequestTimeout, log.Sugar())
	checker, err := app.NewChecker(ctx, cfg, transport, log)
	if err != nil {
		logger.ErrorObj("failed to initialize checker", "error", err)
		return err
	}
	defer checker.Close()

	switch {
	case *list:
		printScenarios(stdout, checker.Scenarios())
		return nil
	case *cleanup:
		deleted, err := checker.Cleanup(ctx)
		if err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}
		fmt.Fprintf(stdout, "deleted %d recorded pets\n", deleted)
		return nil
	}

	report, err := checker.Run(ctx)
	if err != nil {
		return fmt.Errorf("run scenarios: %w", err)
	}
	printReport(stdout, report)
	if err := checker.PublishReport(ctx, report); err != nil {
		logger.ErrorObj("failed to publish report", "error", err)
	}
	if !report.Passed() {
		return fmt.Errorf("%d of %d scenarios did not pass", len(report.Outcomes)-report.Count(scenario.StatusPassed), len(report.Outcomes))
	}
	return nil
}

func printScenarios(w io.Writer, scenarios []scenario.Scenario) {
	for _, s := range scenarios {
		fmt.Fprintf(w, "%-28s %-9s %s\n", s.ID, s.Kind, s.Description)
	}
}

func printReport(w io.Writer, report scenario.Report) {
	for _, o := range report.Outcomes {
		line := fmt.Sprintf("%-8s %-28s %6dms", o.Status, o.ID, o.Elapsed.Milliseconds())
		if o.Err != nil && o.Status != scenario.StatusPassed {
			line += "  " + o.Err.Error()
		}
		fmt.Fprintln(w, line)
	}
}
