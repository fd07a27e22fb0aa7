package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samvad-hq/petfriends-client/internal/config"
	"github.com/samvad-hq/petfriends-client/internal/logger"
	"github.com/samvad-hq/petfriends-client/internal/report"
	"github.com/samvad-hq/petfriends-client/internal/scenario"
	"github.com/samvad-hq/petfriends-client/internal/storage"
	"github.com/samvad-hq/petfriends-client/pkg/httpclient"
	"github.com/samvad-hq/petfriends-client/pkg/petfriends"
)

// Checker wires the API client, scenario suite, created-pet ledger and report sinks.
type Checker struct {
	cfg        *config.Config
	client     *petfriends.Client
	ledger     storage.Ledger
	scenarios  []scenario.Scenario
	publishers *report.Fanout
	log        logger.Logger
}

// NewChecker builds a checker runtime from config. transport may be nil to use resty
// with the configured timeout.
func NewChecker(ctx context.Context, cfg *config.Config, transport httpclient.Client, log logger.Logger) (*Checker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	if transport == nil {
		transport = httpclient.NewRestyClient(cfg.RequestTimeout, nil)
	}
	client, err := petfriends.New(cfg.BaseURL, transport, log)
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}

	var plan *scenario.Plan
	if cfg.ScenariosFile != "" {
		plan, err = scenario.LoadPlan(cfg.ScenariosFile)
		if err != nil {
			return nil, fmt.Errorf("load scenarios plan: %w", err)
		}
	}
	selected, err := plan.Select(scenario.All())
	if err != nil {
		return nil, fmt.Errorf("select scenarios: %w", err)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("select scenarios: plan %q enables no scenarios", cfg.ScenariosFile)
	}

	ledger, err := storage.NewLedger(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	publishers, err := buildPublishers(ctx, cfg, log)
	if err != nil {
		_ = ledger.Close()
		return nil, err
	}

	log.InfoObj("checker initialized", "checker_meta", map[string]any{
		"base_url":        client.BaseURL(),
		"scenarios_count": len(selected),
		"storage_type":    cfg.StorageType,
		"publishers":      publishers.Size(),
	})

	return &Checker{
		cfg:        cfg,
		client:     client,
		ledger:     ledger,
		scenarios:  selected,
		publishers: publishers,
		log:        log,
	}, nil
}

// Scenarios returns the selected scenarios in run order.
func (c *Checker) Scenarios() []scenario.Scenario { return c.scenarios }

// Run executes the selected scenarios.
func (c *Checker) Run(ctx context.Context) (scenario.Report, error) {
	if err := c.cfg.RequireCredentials(); err != nil {
		return scenario.Report{}, err
	}
	env := &scenario.Env{
		Client:          c.client,
		Credentials:     scenario.Credentials{Email: c.cfg.ValidEmail, Password: c.cfg.ValidPassword},
		InvalidPassword: c.cfg.NotValidPassword,
		Images:          scenario.DefaultImages(c.cfg.ImagesDir),
		ForeignPetIndex: c.cfg.ForeignPetIndex,
		Recorder:        c.ledger,
	}
	if err := env.Validate(); err != nil {
		return scenario.Report{}, fmt.Errorf("scenario env: %w", err)
	}

	return scenario.NewRunner(env, c.log).Run(ctx, c.scenarios), nil
}

// PublishReport sends the run summary to every configured sink. Without sinks it is a
// no-op; partial delivery is an error naming the failed sinks.
func (c *Checker) PublishReport(ctx context.Context, r scenario.Report) error {
	if c.publishers.Size() == 0 {
		return nil
	}
	evt := report.NewEvent(c.cfg.AppName, c.cfg.Env, c.client.BaseURL(), r)
	delivered, err := c.publishers.Publish(ctx, evt)
	c.log.InfoObj("report published", "report", map[string]any{
		"passed":     evt.Passed,
		"scenarios":  len(evt.Scenarios),
		"publishers": c.publishers.Size(),
		"delivered":  delivered,
	})
	if err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

// Cleanup deletes every pet in the ledger with a fresh key. Pets the server no longer
// knows are dropped from the ledger too; others stay for the next attempt.
func (c *Checker) Cleanup(ctx context.Context) (int, error) {
	if err := c.cfg.RequireCredentials(); err != nil {
		return 0, err
	}
	entries, err := c.ledger.Entries()
	if err != nil {
		return 0, fmt.Errorf("read ledger: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	res, err := c.client.Authenticate(ctx, c.cfg.ValidEmail, c.cfg.ValidPassword)
	if err != nil {
		return 0, fmt.Errorf("authenticate: %w", err)
	}
	key, err := res.AuthKey()
	if err != nil {
		return 0, fmt.Errorf("authenticate: status %d: %w", res.Status, err)
	}

	deleted := 0
	for _, entry := range entries {
		status, err := c.client.DeletePet(ctx, key, entry.ID)
		if err != nil {
			return deleted, fmt.Errorf("delete pet %s: %w", entry.ID, err)
		}
		switch status {
		case http.StatusOK:
			deleted++
			fallthrough
		case http.StatusNotFound, http.StatusBadRequest:
			if err := c.ledger.Forget(entry.ID); err != nil {
				return deleted, fmt.Errorf("forget pet %s: %w", entry.ID, err)
			}
		default:
			c.log.WarnObj("ledger pet not deleted", "cleanup", map[string]any{
				"pet_id": entry.ID,
				"status": status,
			})
		}
	}
	return deleted, nil
}

// Close releases the report publishers and the ledger.
func (c *Checker) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.publishers.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.ledger != nil {
		if err := c.ledger.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildPublishers collects enabled sinks from the publishers file plus the webhook
// shortcut and builds them.
func buildPublishers(ctx context.Context, cfg *config.Config, log logger.Logger) (*report.Fanout, error) {
	var cfgs []report.PublisherConfig
	if cfg.PublishersFile != "" {
		reg, err := report.LoadRegistry(cfg.PublishersFile)
		if err != nil {
			return nil, fmt.Errorf("load publishers: %w", err)
		}
		cfgs = append(cfgs, reg.Enabled()...)
	}
	if cfg.ReportWebhookURL != "" {
		cfgs = append(cfgs, report.WebhookConfig(cfg.ReportWebhookURL, int(cfg.ReportWebhookTimeout/time.Second)))
	}

	pubs, err := report.BuildAll(ctx, report.DefaultRegistry(), cfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	return report.NewFanout(pubs), nil
}
