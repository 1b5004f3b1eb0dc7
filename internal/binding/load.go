package binding

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource []byte

// Load reads a binding file. The format is chosen by extension:
// .yaml and .yml are YAML, .cue is CUE checked against the binding schema.
func Load(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings file: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported bindings format %q (want .yaml, .yml or .cue)", ext)
	}
}

// ParseYAML decodes bindings from YAML. Unknown fields are rejected.
func ParseYAML(data []byte) (*Bindings, error) {
	var b Bindings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return finish(&b)
}

// ParseCUE decodes bindings from CUE source after unifying it with the
// embedded #Bindings schema. filename is used in error positions.
func ParseCUE(data []byte, filename string) (*Bindings, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling bindings schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fromCUE(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Bindings")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(err)
	}

	var b Bindings
	if err := unified.Decode(&b); err != nil {
		return nil, fromCUE(err)
	}
	return finish(&b)
}

func finish(b *Bindings) (*Bindings, error) {
	if err := b.Normalize(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
