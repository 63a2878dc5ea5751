package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"swcomp/internal/arch"
	"swcomp/internal/compiler"
	"swcomp/internal/manifest"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build or model construction failed
	ErrCodeWriteFailed = "E007" // File write error
)

// LoadError represents an error that occurred while loading compositions.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCompositions loads compositions from a path. A directory is loaded
// as CUE definition files; a .yaml or .yml file is loaded as a manifest.
// Compositions come back in CUE field order (one per manifest file).
func LoadCompositions(path string) ([]*arch.Composition, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", path, err)}
	}

	if !info.IsDir() {
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			s, err := manifest.Load(path)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
			}
			return []*arch.Composition{s}, nil
		default:
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("unsupported file %s: expected a directory of .cue files or a .yaml manifest", path)}
		}
	}

	return loadCUEDir(path)
}

// loadCUEDir loads every composition defined in a directory of CUE files.
func loadCUEDir(dir string) ([]*arch.Composition, error) {
	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	compositionsVal := value.LookupPath(cue.ParsePath("composition"))
	if !compositionsVal.Exists() {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no compositions found: expected a top-level composition field"}
	}

	iter, err := compositionsVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating compositions: %v", err)}
	}

	var compositions []*arch.Composition
	for iter.Next() {
		s, compileErr := compiler.CompileComposition(iter.Value())
		if compileErr != nil {
			return nil, convertCompileError(compileErr, "composition."+iter.Label())
		}
		compositions = append(compositions, s)
	}
	if len(compositions) == 0 {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no compositions found: expected a top-level composition field"}
	}

	return compositions, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with
// position info.
func convertCompileError(err error, context string) *LoadError {
	if compileErr, ok := err.(*compiler.CompileError); ok {
		return &LoadError{
			Code:    ErrCodeBuildFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}
