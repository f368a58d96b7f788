package enforcer

import (
	"fmt"
	"sort"

	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
)

// applyOrder is the fixed creation order for resource kinds. The reference
// relation between kinds is known at design time, so this is a table rather
// than a graph: conditions and healthchecks come before the backends that
// name them, backends before directors, and every condition consumer after
// conditions. Deletion walks this order backwards so dependents are removed
// before what they reference.
var applyOrder = []configuration.Kind{
	configuration.KindDomain,
	configuration.KindCondition,
	configuration.KindHealthcheck,
	configuration.KindBackend,
	configuration.KindDirector,
	configuration.KindCacheSetting,
	configuration.KindGzip,
	configuration.KindHeader,
	configuration.KindRequestSetting,
	configuration.KindResponseObject,
	configuration.KindSnippet,
	configuration.KindS3Logging,
	configuration.KindSyslogLogging,
	configuration.KindCloudFiles,
	configuration.KindSettings,
}

// Order sorts kinds into creation order. Kinds the table does not know are
// an error; guessing a position for an unknown kind could violate the
// reference relation.
func Order(kinds []configuration.Kind) ([]configuration.Kind, error) {
	rank := make(map[configuration.Kind]int, len(applyOrder))
	for i, k := range applyOrder {
		rank[k] = i
	}
	for _, k := range kinds {
		if _, ok := rank[k]; !ok {
			return nil, fmt.Errorf("no sync order defined for resource kind %q", k)
		}
	}
	ordered := make([]configuration.Kind, len(kinds))
	copy(ordered, kinds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank[ordered[i]] < rank[ordered[j]]
	})
	return ordered, nil
}
