package scrape

import (
	"encoding/json"
	"fmt"
	"io"

	"fretcode/internal/catalog"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTSV  = "tsv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Emitter writes decoded codes. TSV lines are written as they arrive; JSON
// and YAML collect a chord name -> codes mapping and write it on Flush.
type Emitter struct {
	w      io.Writer
	format string
	codes  map[string][]string
}

// NewEmitter creates an emitter for one of the supported formats.
func NewEmitter(w io.Writer, format string) (*Emitter, error) {
	switch format {
	case FormatTSV, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
	return &Emitter{w: w, format: format, codes: make(map[string][]string)}, nil
}

// Emit records one decoded diagram.
func (e *Emitter) Emit(key catalog.Key, code string) error {
	if e.format == FormatTSV {
		_, err := fmt.Fprintf(e.w, "%s\t,%s\n", key.Name(), code)
		return err
	}
	name := key.Name()
	e.codes[name] = append(e.codes[name], code)
	return nil
}

// Flush writes collected output. It is a no-op for TSV.
func (e *Emitter) Flush() error {
	switch e.format {
	case FormatJSON:
		enc := json.NewEncoder(e.w)
		enc.SetIndent("", "  ")
		return enc.Encode(e.codes)
	case FormatYAML:
		enc := yaml.NewEncoder(e.w)
		enc.SetIndent(2)
		if err := enc.Encode(e.codes); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}
