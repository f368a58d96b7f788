package enforcer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
)

func TestDiffCreatesMissingEntities(t *testing.T) {
	desired := []configuration.Backend{
		configuration.Backend{Name: "origin", Address: "10.0.0.1"}.Defaulted(),
	}

	cs := Diff(desired, nil)

	require.Len(t, cs.Creates, 1)
	assert.Equal(t, "origin", cs.Creates[0].Name)
	assert.Empty(t, cs.Updates)
	assert.Empty(t, cs.Deletes)
}

func TestDiffDeletesUnwantedEntities(t *testing.T) {
	current := []configuration.Backend{
		configuration.Backend{Name: "stale-b", Address: "10.0.0.2"}.Defaulted(),
		configuration.Backend{Name: "stale-a", Address: "10.0.0.3"}.Defaulted(),
	}

	cs := Diff(nil, current)

	assert.Empty(t, cs.Creates)
	assert.Empty(t, cs.Updates)
	assert.Equal(t, []string{"stale-a", "stale-b"}, cs.Deletes)
}

func TestDiffUpdatesChangedEntities(t *testing.T) {
	current := []configuration.Backend{
		configuration.Backend{Name: "origin", Address: "10.0.0.1", Port: 80}.Defaulted(),
	}
	desired := []configuration.Backend{
		configuration.Backend{Name: "origin", Address: "10.0.0.1", Port: 443}.Defaulted(),
	}

	cs := Diff(desired, current)

	assert.Empty(t, cs.Creates)
	assert.Empty(t, cs.Deletes)
	require.Len(t, cs.Updates, 1)
	assert.Equal(t, 443, cs.Updates[0].Port)
	assert.Contains(t, cs.Drift["origin"], "Port")
}

func TestDiffTreatsDefaultsAsEqual(t *testing.T) {
	// The remote entity carries materialized defaults; the desired one only
	// declares required fields.
	current := []configuration.Backend{
		{
			Name:                "origin",
			Address:             "10.0.0.1",
			Port:                80,
			Weight:              100,
			ConnectTimeout:      1000,
			FirstByteTimeout:    15000,
			BetweenBytesTimeout: 10000,
			MaxConn:             200,
		},
	}
	desired := []configuration.Backend{
		{Name: "origin", Address: "10.0.0.1"},
	}

	cs := Diff(desired, current)
	assert.True(t, cs.Empty())
}

func TestDiffIgnoresDirectorBackendOrder(t *testing.T) {
	current := []configuration.Director{
		configuration.Director{Name: "lb", Backends: []string{"a", "b"}}.Defaulted(),
	}
	desired := []configuration.Director{
		configuration.Director{Name: "lb", Backends: []string{"b", "a"}}.Defaulted(),
	}

	cs := Diff(desired, current)
	assert.True(t, cs.Empty())
}

func TestDiffReplacesRenamedEntity(t *testing.T) {
	current := []configuration.Domain{{Name: "old.example.net"}}
	desired := []configuration.Domain{{Name: "new.example.net"}}

	cs := Diff(desired, current)

	require.Len(t, cs.Creates, 1)
	assert.Equal(t, []string{"old.example.net"}, cs.Deletes)
	assert.Empty(t, cs.Updates)
}
