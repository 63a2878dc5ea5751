package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/require"
)

const validCUE = `package vehicle

composition: Vehicle: {
	component: Sensor: {
		type: "application"
		port: speed: "sender"
		runnable: sample: {
			trigger: "periodic"
			period:  10
		}
	}
	component: Dashboard: {
		type: "application"
		port: speed: "receiver"
	}
}
`

const invalidCUE = `package vehicle

composition: Vehicle: {
	component: Sensor: {
		type: "application"
		port: speed: "sender"
	}
}
`

// writeCUEDir writes src as a single CUE file in a fresh temp directory.
func writeCUEDir(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vehicle.cue"), []byte(src), 0o644))
	return dir
}

// executeCommand runs the root command with the given args and captured
// output streams.
func executeCommand(args ...string) (stdout, stderr string, err error) {
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

// mockAskOne replaces the survey prompt with a scripted answer list.
// Each prompt consumes the next answer in order.
func mockAskOne(t *testing.T, answers []any) {
	t.Helper()
	orig := askOneFunc
	t.Cleanup(func() { askOneFunc = orig })

	i := 0
	askOneFunc = func(p survey.Prompt, response any, opts ...survey.AskOpt) error {
		require.Less(t, i, len(answers), "ran out of scripted answers at prompt %v", p)
		ans := answers[i]
		i++
		switch r := response.(type) {
		case *string:
			*r = ans.(string)
		case *bool:
			*r = ans.(bool)
		case *[]string:
			*r = ans.([]string)
		default:
			t.Fatalf("unsupported response type %T", response)
		}
		return nil
	}
}
