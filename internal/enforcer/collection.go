package enforcer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cdnops/fastly-sync/internal/fastly"
	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
)

// KindSummary counts the operations applied (or attempted) for one kind.
type KindSummary struct {
	Kind    configuration.Kind
	Creates int
	Updates int
	Deletes int
}

// syncer is one resource collection being driven toward its desired state.
// plan lists the current entities and computes the change set; the apply
// methods issue the remote calls. plan never mutates remote state.
type syncer interface {
	kind() configuration.Kind
	plan(ctx context.Context, client *fastly.Client, serviceID string, version int) error
	applyDeletes(ctx context.Context, client *fastly.Client, serviceID string, version int, log zerolog.Logger) (int, []OperationError)
	applyUpserts(ctx context.Context, client *fastly.Client, serviceID string, version int, log zerolog.Logger) (int, []OperationError)
	summary() KindSummary
}

// collection binds one name-keyed kind to its entity type.
type collection[T configuration.Entity[T]] struct {
	k       configuration.Kind
	desired []T
	changes ChangeSet[T]
}

func (c *collection[T]) kind() configuration.Kind { return c.k }

func (c *collection[T]) plan(ctx context.Context, client *fastly.Client, serviceID string, version int) error {
	current, err := fastly.List[T](ctx, client, serviceID, version, c.k)
	if err != nil {
		return fmt.Errorf("listing %s entities in version %d: %w", c.k, version, err)
	}
	c.changes = Diff(c.desired, current)
	return nil
}

func (c *collection[T]) applyDeletes(ctx context.Context, client *fastly.Client, serviceID string, version int, log zerolog.Logger) (int, []OperationError) {
	applied := 0
	var errs []OperationError
	for _, name := range c.changes.Deletes {
		log.Info().Str("kind", string(c.k)).Str("name", name).Int("version", version).Msg("deleting entity")
		if err := fastly.Delete(ctx, client, serviceID, version, c.k, name); err != nil {
			errs = append(errs, OperationError{Kind: c.k, Name: name, Op: OpDelete, Err: err})
			continue
		}
		applied++
	}
	return applied, errs
}

func (c *collection[T]) applyUpserts(ctx context.Context, client *fastly.Client, serviceID string, version int, log zerolog.Logger) (int, []OperationError) {
	applied := 0
	var errs []OperationError
	for _, e := range c.changes.Creates {
		log.Info().Str("kind", string(c.k)).Str("name", e.EntityName()).Int("version", version).Msg("creating entity")
		if err := fastly.Create(ctx, client, serviceID, version, c.k, e); err != nil {
			errs = append(errs, OperationError{Kind: c.k, Name: e.EntityName(), Op: OpCreate, Err: err})
			continue
		}
		applied++
	}
	for _, e := range c.changes.Updates {
		name := e.EntityName()
		log.Info().Str("kind", string(c.k)).Str("name", name).Int("version", version).Msg("updating entity")
		log.Debug().Str("kind", string(c.k)).Str("name", name).Str("drift", c.changes.Drift[name]).Msg("attribute drift")
		if err := fastly.Update(ctx, client, serviceID, version, c.k, name, e); err != nil {
			errs = append(errs, OperationError{Kind: c.k, Name: name, Op: OpUpdate, Err: err})
			continue
		}
		applied++
	}
	return applied, errs
}

func (c *collection[T]) summary() KindSummary {
	return KindSummary{
		Kind:    c.k,
		Creates: len(c.changes.Creates),
		Updates: len(c.changes.Updates),
		Deletes: len(c.changes.Deletes),
	}
}

// settingsSyncer handles the settings singleton, which has no name-keyed
// identity and is only ever updated in place.
type settingsSyncer struct {
	desired configuration.Settings
	update  bool
}

func (s *settingsSyncer) kind() configuration.Kind { return configuration.KindSettings }

func (s *settingsSyncer) plan(ctx context.Context, client *fastly.Client, serviceID string, version int) error {
	current, err := client.GetSettings(ctx, serviceID, version)
	if err != nil {
		return fmt.Errorf("reading settings of version %d: %w", version, err)
	}
	s.update = current.Defaulted() != s.desired.Defaulted()
	return nil
}

func (s *settingsSyncer) applyDeletes(context.Context, *fastly.Client, string, int, zerolog.Logger) (int, []OperationError) {
	return 0, nil
}

func (s *settingsSyncer) applyUpserts(ctx context.Context, client *fastly.Client, serviceID string, version int, log zerolog.Logger) (int, []OperationError) {
	if !s.update {
		return 0, nil
	}
	log.Info().Int("version", version).Msg("updating settings")
	if err := client.UpdateSettings(ctx, serviceID, version, s.desired); err != nil {
		return 0, []OperationError{{Kind: configuration.KindSettings, Op: OpUpdate, Err: err}}
	}
	return 1, nil
}

func (s *settingsSyncer) summary() KindSummary {
	sum := KindSummary{Kind: configuration.KindSettings}
	if s.update {
		sum.Updates = 1
	}
	return sum
}

// newSyncers builds one syncer per kind, sequenced by the static apply
// order.
func newSyncers(cfg configuration.ServiceConfig) ([]syncer, error) {
	byKind := map[configuration.Kind]syncer{
		configuration.KindDomain:         &collection[configuration.Domain]{k: configuration.KindDomain, desired: cfg.Domains},
		configuration.KindCondition:      &collection[configuration.Condition]{k: configuration.KindCondition, desired: cfg.Conditions},
		configuration.KindHealthcheck:    &collection[configuration.Healthcheck]{k: configuration.KindHealthcheck, desired: cfg.Healthchecks},
		configuration.KindBackend:        &collection[configuration.Backend]{k: configuration.KindBackend, desired: cfg.Backends},
		configuration.KindDirector:       &collection[configuration.Director]{k: configuration.KindDirector, desired: cfg.Directors},
		configuration.KindCacheSetting:   &collection[configuration.CacheSetting]{k: configuration.KindCacheSetting, desired: cfg.CacheSettings},
		configuration.KindGzip:           &collection[configuration.Gzip]{k: configuration.KindGzip, desired: cfg.Gzips},
		configuration.KindHeader:         &collection[configuration.Header]{k: configuration.KindHeader, desired: cfg.Headers},
		configuration.KindRequestSetting: &collection[configuration.RequestSetting]{k: configuration.KindRequestSetting, desired: cfg.RequestSettings},
		configuration.KindResponseObject: &collection[configuration.ResponseObject]{k: configuration.KindResponseObject, desired: cfg.ResponseObjects},
		configuration.KindSnippet:        &collection[configuration.Snippet]{k: configuration.KindSnippet, desired: cfg.Snippets},
		configuration.KindS3Logging:      &collection[configuration.S3Logging]{k: configuration.KindS3Logging, desired: cfg.S3Loggers},
		configuration.KindSyslogLogging:  &collection[configuration.SyslogLogging]{k: configuration.KindSyslogLogging, desired: cfg.SyslogLoggers},
		configuration.KindCloudFiles:     &collection[configuration.CloudFilesLogging]{k: configuration.KindCloudFiles, desired: cfg.CloudFiles},
		configuration.KindSettings:       &settingsSyncer{desired: cfg.Settings},
	}

	ordered, err := Order(configuration.Kinds())
	if err != nil {
		return nil, err
	}
	syncers := make([]syncer, 0, len(ordered))
	for _, k := range ordered {
		s, ok := byKind[k]
		if !ok {
			return nil, fmt.Errorf("no syncer for resource kind %q", k)
		}
		syncers = append(syncers, s)
	}
	return syncers, nil
}
