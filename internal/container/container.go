// Package container wires the store, model provider and flow generators
// for the commands and the HTTP server.
package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/toppers/mocktest/internal/feedback"
	"github.com/toppers/mocktest/internal/llm"
	"github.com/toppers/mocktest/internal/mcqtest"
	"github.com/toppers/mocktest/internal/server"
	"github.com/toppers/mocktest/internal/store"
)

// Options configures New.
type Options struct {
	// DBPath is the ledger database; empty means store.DefaultDBPath.
	DBPath string
	LLM    llm.Config
	Log    *logrus.Logger

	// Provider replaces the configured vendor. It is still recorded in
	// the ledger under LLM.Provider.
	Provider llm.Provider

	MCQ      mcqtest.Config
	Feedback feedback.Config
}

// DefaultOptions reads the LLM configuration from the environment.
func DefaultOptions() (Options, error) {
	cfg, err := llm.LoadConfig()
	if err != nil {
		return Options{}, err
	}
	return Options{
		LLM:      cfg,
		MCQ:      mcqtest.DefaultConfig(),
		Feedback: feedback.DefaultConfig(),
	}, nil
}

type Container struct {
	Log      *logrus.Logger
	Store    *store.Store
	Provider llm.Provider
	Tests    *mcqtest.Generator
	Feedback *feedback.Generator
}

func New(ctx context.Context, opts Options) (*Container, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(ctx, opts, st.EventRepo(), log)
	if err != nil {
		st.Close()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"provider": providerName(opts),
		"model":    provider.ModelID(),
		"db":       dbPath,
	}).Debug("container ready")

	return &Container{
		Log:      log,
		Store:    st,
		Provider: provider,
		Tests:    mcqtest.New(provider, opts.MCQ, log),
		Feedback: feedback.New(provider, opts.Feedback, log),
	}, nil
}

func newProvider(ctx context.Context, opts Options, events store.EventRepo, log logrus.FieldLogger) (llm.Provider, error) {
	if opts.Provider == nil {
		if err := opts.LLM.Validate(); err != nil {
			return nil, err
		}
		return llm.NewProvider(ctx, opts.LLM, events, log)
	}
	logged := llm.WithLogging(opts.Provider, providerName(opts), events, log)
	return llm.WithTimeout(llm.WithRetry(logged, opts.LLM.Retry), opts.LLM.Timeout), nil
}

func providerName(opts Options) string {
	if opts.LLM.Provider != "" {
		return opts.LLM.Provider
	}
	return llm.ProviderMock
}

// Server builds the HTTP server over the container's generators.
func (c *Container) Server(cfg server.Config) *server.Server {
	return server.New(c.Tests, c.Feedback, c.Provider.ModelID(), cfg, c.Log)
}

func (c *Container) Close() error {
	return c.Store.Close()
}
