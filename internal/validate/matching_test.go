package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swcomp/internal/arch"
)

func addComponent(t *testing.T, s *arch.Composition, name string, ports ...arch.Port) *arch.Component {
	t.Helper()
	c := arch.NewComponent(name, "application")
	for _, p := range ports {
		_, err := c.AddPort(p.Name, p.Direction)
		require.NoError(t, err)
	}
	require.NoError(t, s.AddComponent(c))
	return c
}

func TestConnectionsAllMatched(t *testing.T) {
	s := arch.NewComposition("Vehicle")
	addComponent(t, s, "Sensor", arch.Port{Name: "speed", Direction: arch.DirectionSender})
	addComponent(t, s, "Dashboard", arch.Port{Name: "speed", Direction: arch.DirectionReceiver})

	assert.Empty(t, Connections(s))
}

func TestConnectionsUnmatchedSender(t *testing.T) {
	s := arch.NewComposition("Vehicle")
	addComponent(t, s, "Sensor", arch.Port{Name: "speed", Direction: arch.DirectionSender})

	findings := Connections(s)
	require.Len(t, findings, 1)
	assert.Equal(t, ErrUnmatchedSender, findings[0].Code)
	assert.Equal(t, CategoryConnection, findings[0].Category)
	assert.Equal(t, "Sensor", findings[0].Component)
	assert.Contains(t, findings[0].Detail, `"speed"`)
}

func TestConnectionsUnmatchedReceiver(t *testing.T) {
	s := arch.NewComposition("Vehicle")
	addComponent(t, s, "Dashboard", arch.Port{Name: "speed", Direction: arch.DirectionReceiver})

	findings := Connections(s)
	require.Len(t, findings, 1)
	assert.Equal(t, ErrUnmatchedReceiver, findings[0].Code)
	assert.Equal(t, "Dashboard", findings[0].Component)
}

func TestConnectionsMatchIsNameOnly(t *testing.T) {
	// A sender and receiver of the same name on the same component still
	// count as matched.
	s := arch.NewComposition("Vehicle")
	addComponent(t, s, "Loopback",
		arch.Port{Name: "speed", Direction: arch.DirectionSender},
		arch.Port{Name: "Speed", Direction: arch.DirectionReceiver},
	)

	findings := Connections(s)
	// Names are case sensitive, so both ports are unmatched.
	require.Len(t, findings, 2)
	assert.Equal(t, ErrUnmatchedSender, findings[0].Code)
	assert.Equal(t, ErrUnmatchedReceiver, findings[1].Code)
}

func TestConnectionsEnumeratesEveryInstance(t *testing.T) {
	// The same unmatched port name on two components yields two findings,
	// one per (component, port) instance.
	s := arch.NewComposition("Vehicle")
	addComponent(t, s, "SensorA", arch.Port{Name: "speed", Direction: arch.DirectionSender})
	addComponent(t, s, "SensorB", arch.Port{Name: "speed", Direction: arch.DirectionSender})

	findings := Connections(s)
	require.Len(t, findings, 2)
	assert.Equal(t, "SensorA", findings[0].Component)
	assert.Equal(t, "SensorB", findings[1].Component)
}

func TestConnectionsSendersReportedBeforeReceivers(t *testing.T) {
	s := arch.NewComposition("Vehicle")
	addComponent(t, s, "Dashboard", arch.Port{Name: "rpm", Direction: arch.DirectionReceiver})
	addComponent(t, s, "Sensor", arch.Port{Name: "speed", Direction: arch.DirectionSender})

	findings := Connections(s)
	require.Len(t, findings, 2)
	assert.Equal(t, ErrUnmatchedSender, findings[0].Code)
	assert.Equal(t, ErrUnmatchedReceiver, findings[1].Code)
}
