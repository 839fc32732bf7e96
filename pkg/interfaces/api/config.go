package api

import (
	"errors"
	"time"

	"github.com/vsinha/stockrecon/pkg/application/services/orchestration"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/tables"
)

const (
	defaultMaxUploadSize   = 32 << 20 // 32 MiB
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Orchestrator *orchestration.ReconciliationOrchestrator

	// Optional configuration.
	Loader          *tables.Loader
	Headers         []string
	MaxUploadSize   int64
	ShutdownTimeout time.Duration
	Now             func() time.Time
}

func (c *Config) Validate() error {
	if c.Orchestrator == nil {
		return errors.New("reconciliation orchestrator is required")
	}

	// Optional configuration.
	if c.Loader == nil {
		c.Loader = tables.NewLoader(csv.EncodingAuto)
	}
	if len(c.Headers) == 0 {
		c.Headers = entities.DefaultHeaders()
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = defaultMaxUploadSize
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}
