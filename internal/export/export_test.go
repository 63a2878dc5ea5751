package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swcomp/internal/arch"
)

func intPtr(v int) *int { return &v }

func sampleComposition(t *testing.T) *arch.Composition {
	t.Helper()
	s := arch.NewComposition("Vehicle")

	sensor := arch.NewComponent("Sensor", "application")
	_, err := sensor.AddPort("speed", arch.DirectionSender)
	require.NoError(t, err)
	require.NoError(t, sensor.AddRunnable(arch.Runnable{Name: "sample", Trigger: arch.TriggerPeriodic, Period: intPtr(10)}))
	iface := arch.NewInterface("ISpeed", arch.InterfaceSenderReceiver)
	iface.AddDataElement(arch.DataElement{Name: "value", Type: "uint16"})
	require.NoError(t, sensor.AddInterface(iface, []string{"speed"}))
	require.NoError(t, s.AddComponent(sensor))

	dash := arch.NewComponent("Dashboard", "application")
	_, err = dash.AddPort("speed", arch.DirectionReceiver)
	require.NoError(t, err)
	require.NoError(t, dash.AddRunnable(arch.Runnable{Name: "refresh", Trigger: arch.TriggerEvent}))
	require.NoError(t, s.AddComponent(dash))

	return s
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(sampleComposition(t))

	assert.Equal(t, "Vehicle", snap.CompositionName)
	require.Len(t, snap.Components, 2)

	sensor := snap.Components[0]
	assert.Equal(t, "Sensor", sensor.Name)
	assert.Equal(t, "application", sensor.Type)
	require.Len(t, sensor.Ports, 1)
	assert.Equal(t, PortSnapshot{Name: "speed", Type: "sender"}, sensor.Ports[0])
	require.Len(t, sensor.Runnables, 1)
	assert.Equal(t, "periodic", sensor.Runnables[0].Trigger)
	require.NotNil(t, sensor.Runnables[0].Period)
	assert.Equal(t, 10, *sensor.Runnables[0].Period)
	require.Len(t, sensor.Interfaces, 1)
	assert.Equal(t, []string{"speed"}, sensor.Interfaces[0].AssociatedPorts)
	require.Len(t, sensor.Interfaces[0].DataElements, 1)

	dash := snap.Components[1]
	assert.Nil(t, dash.Runnables[0].Period)
	assert.NotNil(t, dash.Interfaces)
	assert.Empty(t, dash.Interfaces)
}

func TestNewSnapshotEmptyComposition(t *testing.T) {
	snap := NewSnapshot(arch.NewComposition("Vehicle"))

	assert.NotNil(t, snap.Components)
	assert.Empty(t, snap.Components)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, snap))
	assert.Contains(t, buf.String(), `"components": []`)
}

func TestWriteJSONGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewSnapshot(sampleComposition(t))))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "snapshot", buf.Bytes())
}

func TestRenderGolden(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleComposition(t))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "render", buf.Bytes())
}

func TestWriteJSONOmitsPeriodForEventRunnables(t *testing.T) {
	s := arch.NewComposition("Vehicle")
	c := arch.NewComponent("Dashboard", "application")
	_, err := c.AddPort("speed", arch.DirectionReceiver)
	require.NoError(t, err)
	require.NoError(t, c.AddRunnable(arch.Runnable{Name: "refresh", Trigger: arch.TriggerEvent}))
	require.NoError(t, s.AddComponent(c))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewSnapshot(s)))
	assert.NotContains(t, buf.String(), `"period"`)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewSnapshot(sampleComposition(t))))

	var got Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Vehicle", got.CompositionName)
	require.Len(t, got.Components, 2)
	assert.Equal(t, "Sensor", got.Components[0].Name)

	// Re-read counts match the in-memory model exactly.
	s := sampleComposition(t)
	for i, c := range s.Components() {
		assert.Len(t, got.Components[i].Ports, len(c.Ports()))
		assert.Len(t, got.Components[i].Runnables, len(c.Runnables))
		assert.Len(t, got.Components[i].Interfaces, len(c.Interfaces()))
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleComposition(t))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Software Composition: Vehicle\n"))
	assert.Contains(t, out, "--Software Component 1: Sensor (Type: application)")
	assert.Contains(t, out, "--Software Component 2: Dashboard (Type: application)")
	assert.Contains(t, out, "----speed (Type: sender)")
	assert.Contains(t, out, "----sample (Trigger: periodic, Period: 10ms)")
	assert.Contains(t, out, "----refresh (Trigger: event-based, Period: N/A)")
	assert.Contains(t, out, "----ISpeed (Type: senderReceiver, Associated with ports: speed)")
	assert.Contains(t, out, "-------value (Type: uint16)")
	assert.Contains(t, out, "----No interfaces associated.")
}

func TestRenderEmptyComponent(t *testing.T) {
	s := arch.NewComposition("Vehicle")
	require.NoError(t, s.AddComponent(arch.NewComponent("Bare", "application")))

	var buf bytes.Buffer
	Render(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "----No ports associated.")
	assert.Contains(t, out, "----No runnables associated.")
	assert.Contains(t, out, "----No interfaces associated.")
}
