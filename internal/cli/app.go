package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/recordvault/internal/backup"
	"github.com/dmitrijs2005/recordvault/internal/config"
	"github.com/dmitrijs2005/recordvault/internal/cryptox"
	"github.com/dmitrijs2005/recordvault/internal/logging"
	"github.com/dmitrijs2005/recordvault/internal/services"
	"github.com/dmitrijs2005/recordvault/internal/store"
)

type App struct {
	config   *config.Config
	store    *store.Store
	records  services.RecordService
	patients services.PatientService
	logger   logging.Logger
	out      io.Writer
	in       *bufio.Reader
	http     *http.Client
	// presigner is built lazily; tests inject one.
	presigner backup.Presigner
}

// NewApp opens the store described by cfg and wires the services. Output
// goes to out; the interactive shell reads from in.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, out io.Writer, in io.Reader) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	engine, _ := cfg.Engine()
	if logger == nil {
		logger = logging.Nop()
	}

	secret, err := resolveSecret(cfg.Secret, out)
	if err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	defer cryptox.Wipe(secret)

	s, err := store.Open(ctx, store.Options{
		Engine: engine,
		DSN:    cfg.DatabaseDSN,
		Secret: secret,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		config:   cfg,
		store:    s,
		records:  services.NewRecordService(s, cfg.Workers, logger),
		patients: services.NewPatientService(s, cfg.Workers, logger),
		logger:   logger,
		out:      out,
		in:       bufio.NewReader(in),
		http:     http.DefaultClient,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) objectStore() (backup.Presigner, error) {
	if a.presigner != nil {
		return a.presigner, nil
	}
	p, err := backup.NewS3Presigner(backup.S3Config{
		Bucket:       a.config.S3Bucket,
		Region:       a.config.S3Region,
		BaseEndpoint: a.config.S3BaseEndpoint,
		AccessKey:    a.config.S3AccessKey,
		SecretKey:    a.config.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	a.presigner = p
	return p, nil
}
