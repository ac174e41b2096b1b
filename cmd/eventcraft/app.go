package main

import (
	"context"
	"fmt"

	"eventcraft/internal/config"
	"eventcraft/internal/event"
	"eventcraft/internal/perm"
	"eventcraft/internal/registry"
	"eventcraft/internal/store"
	"eventcraft/internal/workflow"
)

const configPath = "eventcraft.yaml"

// app wires the config, the event store, and the workflow service for one
// command invocation.
type app struct {
	cfg      *config.ProjectConfig
	store    store.Store
	svc      *workflow.Service
	resolver *rosterResolver
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Load(cfg.Registry)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close(ctx)
		return nil, err
	}

	grants := perm.Grants{
		perm.TierBuild:            cfg.Permissions.Build,
		perm.TierBypassValidation: cfg.Permissions.BypassValidation,
		perm.TierValidate:         cfg.Permissions.Validate,
	}

	return &app{
		cfg:      cfg,
		store:    st,
		svc:      workflow.New(st, reg, grants),
		resolver: newRosterResolver(cfg.Objects),
	}, nil
}

func (a *app) Close(ctx context.Context) error {
	return a.store.Close(ctx)
}

func (a *app) object(nameOrID string) (event.ObjectRef, error) {
	obj, ok := a.resolver.Resolve(nameOrID)
	if !ok {
		return event.ObjectRef{}, fmt.Errorf("no object named %q", nameOrID)
	}
	return obj, nil
}
