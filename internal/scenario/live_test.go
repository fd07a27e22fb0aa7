//go:build live

package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/petfriends-client/internal/config"
	"github.com/samvad-hq/petfriends-client/pkg/petfriends"
)

// TestLiveCatalog runs every scenario against the configured server.
// Requires VALID_EMAIL and VALID_PASSWORD; BASE_URL and IMAGES_DIR are optional.
func TestLiveCatalog(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.RequireCredentials(); err != nil {
		t.Skipf("live credentials not configured: %v", err)
	}

	imagesDir := cfg.ImagesDir
	if os.Getenv("IMAGES_DIR") == "" {
		imagesDir = filepath.Join("..", "..", "testdata", "images")
	}

	client, err := petfriends.New(cfg.BaseURL, nil, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	env := &Env{
		Client:          client,
		Credentials:     Credentials{Email: cfg.ValidEmail, Password: cfg.ValidPassword},
		InvalidPassword: cfg.NotValidPassword,
		Images:          DefaultImages(imagesDir),
		ForeignPetIndex: cfg.ForeignPetIndex,
	}
	if err := env.Validate(); err != nil {
		t.Fatalf("env: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	runner := NewRunner(env, nil)
	for _, s := range All() {
		s := s
		t.Run(s.ID, func(t *testing.T) {
			out := runner.RunOne(ctx, s)
			switch out.Status {
			case StatusPassed:
			case StatusNoData:
				t.Fatalf("no data available: %v", out.Err)
			default:
				t.Fatalf("%s: %v", out.Status, out.Err)
			}
		})
	}
}
