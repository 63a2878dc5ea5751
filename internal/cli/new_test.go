package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swcomp/internal/manifest"
)

func TestNewCommandBuildsComposition(t *testing.T) {
	dir := t.TempDir()
	savePath := filepath.Join(dir, "vehicle.yaml")
	exportPath := filepath.Join(dir, "vehicle.json")

	mockAskOne(t, []any{
		"Vehicle", // composition name
		true,      // add component?
		"Sensor",
		"application",
		true, // add port?
		"speed",
		"sender",
		false, // add port?
		true,  // add runnable?
		"sample",
		"periodic",
		"10",
		false, // add runnable?
		true,  // add interface?
		"ISpeed",
		"senderReceiver",
		[]string{"speed"}, // associate with ports
		true,              // add data element?
		"value",
		"uint16",
		false, // add data element?
		false, // add interface?
		true,  // add component?
		"Dashboard",
		"application",
		true, // add port?
		"speed",
		"receiver",
		false, // add port?
		false, // add runnable?
		false, // add interface?
		false, // add component?
	})

	stdout, _, err := executeCommand("new", "--save", savePath, "--export", exportPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Software Composition: Vehicle")
	assert.Contains(t, stdout, "✓ Composition is valid")
	assert.Contains(t, stdout, "Saved manifest to "+savePath)
	assert.Contains(t, stdout, "Exported configuration to "+exportPath)
	assert.FileExists(t, exportPath)

	s, err := manifest.Load(savePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sensor", "Dashboard"}, s.ComponentNames())

	sensor, ok := s.Component("Sensor")
	require.True(t, ok)
	require.Len(t, sensor.Runnables, 1)
	require.NotNil(t, sensor.Runnables[0].Period)
	assert.Equal(t, 10, *sensor.Runnables[0].Period)
	require.Len(t, sensor.Interfaces(), 1)
	assert.Equal(t, "ISpeed", sensor.Interfaces()[0].Name)
}

func TestNewCommandInvalidPeriodSkipsRunnable(t *testing.T) {
	mockAskOne(t, []any{
		"Vehicle",
		true, // add component?
		"Sensor",
		"application",
		true, // add port?
		"speed",
		"sender",
		false, // add port?
		true,  // add runnable?
		"sample",
		"periodic",
		"ten", // not a number
		false, // add runnable?
		false, // add interface?
		false, // add component?
		false, // save manifest?
		false, // export snapshot?
	})

	stdout, _, err := executeCommand("new")
	require.NoError(t, err)

	assert.Contains(t, stdout, `invalid period "ten", runnable not added`)
	assert.Contains(t, stdout, "----No runnables associated.")
	// The lone sender port has no receiver, so validation reports it.
	assert.Contains(t, stdout, "✗ 1 finding(s)")
	assert.Contains(t, stdout, "[V110] connection")
}

func TestNewCommandRejectsDuplicateComponentName(t *testing.T) {
	mockAskOne(t, []any{
		"Vehicle",
		true, // add component?
		"Sensor",
		"application",
		false, // add port?
		false, // add runnable?
		false, // add interface?
		true,  // add component?
		"Sensor", // duplicate, rejected before any further prompts
		false,    // add component?
		false,    // save manifest?
		false,    // export snapshot?
	})

	stdout, _, err := executeCommand("new")
	require.NoError(t, err)

	assert.Contains(t, stdout, `a component named "Sensor" already exists`)
	assert.Contains(t, stdout, "--Software Component 1: Sensor")
	assert.NotContains(t, stdout, "--Software Component 2")
}
