package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON writes the snapshot document with 4-space indentation.
func WriteJSON(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// WriteJSONFile writes the snapshot document to a file.
func WriteJSONFile(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteJSON(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
