package commands

import (
	"fmt"

	"github.com/dmateus/plantdoc/internal/api"
	"github.com/dmateus/plantdoc/internal/config"
	"github.com/dmateus/plantdoc/internal/session"
	"github.com/dmateus/plantdoc/internal/store"
)

// Dependencies holds the wired components for the commands. This allows
// for dependency injection and easier testing.
type Dependencies struct {
	// Client is the PlantDoc API client.
	Client api.PlantAPI

	// Session is the authenticated identity of the process.
	Session *session.Manager

	// Records collects this run's uploads and their results.
	Records *store.RecordStore

	// Config is the loaded user configuration.
	Config config.Config
}

// NewDependencies builds the production dependency set: a real client
// configured from the config file and flags, with any persisted session
// restored. Restore failure just means an anonymous session.
func NewDependencies() (*Dependencies, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	baseURL := cfg.BaseURL
	if baseURLFlag != "" {
		baseURL = baseURLFlag
	}
	language := cfg.Language
	if languageFlag != "" {
		language = languageFlag
	}

	client, err := api.NewClient(
		api.WithBaseURL(baseURL),
		api.WithLanguage(language),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	sess := session.NewManager(client, nil)
	sess.Restore()

	return &Dependencies{
		Client:  client,
		Session: sess,
		Records: store.NewRecordStore(),
		Config:  cfg,
	}, nil
}
