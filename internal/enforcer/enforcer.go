// Package enforcer reconciles a desired service configuration against the
// remote store. A run obtains a mutable target version, computes the minimal
// create/update/delete set per resource kind, applies deletions with
// dependents first and creations with dependencies first, and optionally
// activates the result.
package enforcer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cdnops/fastly-sync/internal/fastly"
	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
	"github.com/cdnops/fastly-sync/internal/log"
)

// Operation names the remote call an OperationError belongs to.
type Operation string

const (
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpActivate Operation = "activate"
)

// kindVersion tags version-lifecycle failures in an OperationError.
const kindVersion = configuration.Kind("version")

// OperationError records one failed remote call. Failures are collected
// rather than raised so a run reports the complete picture of partial
// success.
type OperationError struct {
	Kind configuration.Kind
	Name string
	Op   Operation
	Err  error
}

func (e OperationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Kind, e.Name, e.Err)
}

func (e OperationError) Unwrap() error { return e.Err }

// Result reports what a run did. Version is always the target version
// number, even on partial failure, so re-running the same desired state is
// the documented recovery path.
type Result struct {
	Changed   bool
	ServiceID string
	Version   int
	Actions   []string
	Summary   []KindSummary
	Errors    []OperationError
}

// Ok reports whether the run completed without operation failures.
func (r *Result) Ok() bool { return len(r.Errors) == 0 }

// Enforcer drives reconciliation runs. One enforcer may be reused across
// runs; a single draft version must only ever be mutated by one run at a
// time.
type Enforcer struct {
	client *fastly.Client
	log    zerolog.Logger
}

func New(client *fastly.Client) *Enforcer {
	return &Enforcer{
		client: client,
		log:    log.WithComponent("enforcer"),
	}
}

// Apply reconciles cfg against the remote service, creating the service if
// it does not exist. cfg must be normalized (see configuration.ServiceConfig).
//
// Per-operation failures do not abort the run: remaining operations are
// still attempted and every failure is returned in Result.Errors. The
// target version is activated only when something changed, activation was
// requested and no failure occurred; otherwise it stays a mutable draft.
// A returned error (as opposed to Result.Errors) means the run aborted
// before any resource was mutated.
func (e *Enforcer) Apply(ctx context.Context, cfg configuration.ServiceConfig, activate bool) (*Result, error) {
	res := &Result{}

	svc, err := e.client.GetServiceByName(ctx, cfg.Name)
	switch {
	case errors.Is(err, fastly.ErrServiceNotFound):
		svc, err = e.client.CreateService(ctx, cfg.Name)
		if err != nil {
			return nil, fmt.Errorf("creating service %q: %w", cfg.Name, err)
		}
		e.log.Info().Str("service", cfg.Name).Str("id", svc.ID).Msg("created service")
		res.Actions = append(res.Actions, fmt.Sprintf("created service %q", cfg.Name))
		res.Changed = true
	case err != nil:
		return nil, fmt.Errorf("looking up service %q: %w", cfg.Name, err)
	}
	res.ServiceID = svc.ID

	version, actions, err := e.targetVersion(ctx, svc)
	if err != nil {
		return nil, err
	}
	res.Version = version.Number
	res.Actions = append(res.Actions, actions...)

	syncers, err := newSyncers(cfg)
	if err != nil {
		return nil, err
	}

	// Plan every collection before the first mutating call so that a
	// listing failure aborts the run while the draft is still untouched.
	for _, s := range syncers {
		if err := s.plan(ctx, e.client, svc.ID, version.Number); err != nil {
			return nil, err
		}
	}

	applied := 0

	// Deletion phase walks kinds in reverse order: dependents go before the
	// entities they reference.
	for i := len(syncers) - 1; i >= 0; i-- {
		n, errs := syncers[i].applyDeletes(ctx, e.client, svc.ID, version.Number, e.log)
		applied += n
		res.Errors = append(res.Errors, errs...)
	}

	// Creation and update phase walks forward.
	for _, s := range syncers {
		n, errs := s.applyUpserts(ctx, e.client, svc.ID, version.Number, e.log)
		applied += n
		res.Errors = append(res.Errors, errs...)
	}

	for _, s := range syncers {
		res.Summary = append(res.Summary, s.summary())
	}

	if applied > 0 {
		res.Changed = true
		res.Actions = append(res.Actions, fmt.Sprintf("applied %d operations to version %d", applied, version.Number))
	}

	if res.Changed && activate && res.Ok() {
		if err := e.client.ActivateVersion(ctx, svc.ID, version.Number); err != nil {
			res.Errors = append(res.Errors, OperationError{Kind: kindVersion, Op: OpActivate, Err: err})
		} else {
			e.log.Info().Int("version", version.Number).Msg("activated version")
			res.Actions = append(res.Actions, fmt.Sprintf("activated version %d", version.Number))
		}
	}

	e.log.Info().
		Bool("changed", res.Changed).
		Int("version", res.Version).
		Int("failures", len(res.Errors)).
		Msg("reconciliation finished")
	return res, nil
}

// Destroy deletes the named service, deactivating its active version first.
// Destroying an absent service is a no-op.
func (e *Enforcer) Destroy(ctx context.Context, name string) (*Result, error) {
	svc, err := e.client.GetServiceByName(ctx, name)
	if errors.Is(err, fastly.ErrServiceNotFound) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up service %q: %w", name, err)
	}

	if svc.ActiveVersion != nil {
		if err := e.client.DeactivateVersion(ctx, svc.ID, svc.ActiveVersion.Number); err != nil {
			return nil, fmt.Errorf("deactivating version %d: %w", svc.ActiveVersion.Number, err)
		}
	}
	if err := e.client.DeleteService(ctx, svc.ID); err != nil {
		return nil, fmt.Errorf("deleting service %q: %w", name, err)
	}

	e.log.Info().Str("service", name).Str("id", svc.ID).Msg("deleted service")
	return &Result{
		Changed:   true,
		ServiceID: svc.ID,
		Actions:   []string{fmt.Sprintf("deleted service %q", name)},
	}, nil
}
