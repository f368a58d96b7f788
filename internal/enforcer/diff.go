package enforcer

import (
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
)

// ChangeSet is the minimal operation set that moves one name-keyed
// collection from its current state to the desired state.
type ChangeSet[T configuration.Entity[T]] struct {
	Creates []T
	Updates []T
	Deletes []string

	// Drift maps an updated entity name to a rendering of the attribute
	// difference, kept for debug logging.
	Drift map[string]string
}

func (c ChangeSet[T]) Empty() bool {
	return len(c.Creates) == 0 && len(c.Updates) == 0 && len(c.Deletes) == 0
}

// Diff compares desired against current by entity name. Both sides are
// passed through Defaulted before comparison so an entity declared with only
// required fields is equal to a remote entity carrying the documented
// defaults. Creates and updates keep the desired declaration order; deletes
// are sorted by name for deterministic output.
func Diff[T configuration.Entity[T]](desired, current []T) ChangeSet[T] {
	var cs ChangeSet[T]

	currentByName := make(map[string]T, len(current))
	for _, e := range current {
		currentByName[e.EntityName()] = e
	}
	wanted := make(map[string]struct{}, len(desired))

	for _, d := range desired {
		name := d.EntityName()
		wanted[name] = struct{}{}
		cur, ok := currentByName[name]
		if !ok {
			cs.Creates = append(cs.Creates, d)
			continue
		}
		want, have := d.Defaulted(), cur.Defaulted()
		if diff := cmp.Diff(have, want); diff != "" {
			cs.Updates = append(cs.Updates, d)
			if cs.Drift == nil {
				cs.Drift = make(map[string]string)
			}
			cs.Drift[name] = diff
		}
	}

	for name := range currentByName {
		if _, ok := wanted[name]; !ok {
			cs.Deletes = append(cs.Deletes, name)
		}
	}
	sort.Strings(cs.Deletes)

	return cs
}
