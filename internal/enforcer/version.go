package enforcer

import (
	"context"
	"fmt"

	"github.com/cdnops/fastly-sync/internal/fastly"
)

// targetVersion yields the draft version a run will mutate. A draft latest
// version is reused as-is, which keeps repeated runs from piling up new
// versions; an active or locked latest is cloned; a service with no version
// at all gets a fresh one. Any failure here aborts the run before a single
// resource has been touched.
func (e *Enforcer) targetVersion(ctx context.Context, svc *fastly.Service) (fastly.Version, []string, error) {
	latest := svc.LatestVersion
	if latest == nil {
		v, err := e.client.CreateVersion(ctx, svc.ID)
		if err != nil {
			return fastly.Version{}, nil, fmt.Errorf("creating initial version: %w", err)
		}
		e.log.Info().Int("version", v.Number).Msg("created initial version")
		return v, []string{fmt.Sprintf("created initial version %d", v.Number)}, nil
	}

	if latest.Draft() {
		e.log.Debug().Int("version", latest.Number).Msg("reusing draft version")
		return *latest, nil, nil
	}

	v, err := e.client.CloneVersion(ctx, svc.ID, latest.Number)
	if err != nil {
		return fastly.Version{}, nil, fmt.Errorf("cloning version %d: %w", latest.Number, err)
	}
	e.log.Info().Int("from", latest.Number).Int("version", v.Number).Msg("cloned new draft version")
	return v, []string{fmt.Sprintf("cloned version %d from locked version %d", v.Number, latest.Number)}, nil
}
