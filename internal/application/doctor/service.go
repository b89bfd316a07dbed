// Package doctor runs environment diagnostics: configuration, credential,
// database.
package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/macromate/macromate/internal/ports"
)

// Check is one diagnostic outcome.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Pinger verifies storage reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service aggregates the checks.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Storage        Pinger
}

// Run executes every check and returns the results in order.
func (s *Service) Run(ctx context.Context) []Check {
	var checks []Check

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, Check{Name: "configuration", Detail: err.Error()})
		return checks
	}
	checks = append(checks, Check{
		Name:   "configuration",
		OK:     true,
		Detail: fmt.Sprintf("endpoint %s, model %s", cfg.API.Endpoint, cfg.API.Model),
	})

	key := cfg.API.APIKey
	if key == "" {
		key = os.Getenv("MACROMATE_API_KEY")
	}
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		checks = append(checks, Check{
			Name:   "api credential",
			Detail: "no api key in config, MACROMATE_API_KEY or OPENAI_API_KEY",
		})
	} else {
		checks = append(checks, Check{Name: "api credential", OK: true, Detail: "present"})
	}

	if s.Storage == nil {
		checks = append(checks, Check{Name: "database", Detail: "store not initialized"})
	} else if err := s.Storage.Ping(ctx); err != nil {
		checks = append(checks, Check{Name: "database", Detail: err.Error()})
	} else {
		checks = append(checks, Check{Name: "database", OK: true, Detail: cfg.Storage.Path})
	}

	return checks
}
