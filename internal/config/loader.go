package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return decodeYAML(bytes.NewReader(b), out)
}

func decodeYAML(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Load reads rules from a yaml file. An empty path yields DefaultRules.
func Load(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	var r Rules
	if err := loadYAML(path, &r); err != nil {
		return Rules{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return finish(r)
}

// Parse decodes rules from yaml held in memory.
func Parse(r io.Reader) (Rules, error) {
	var rules Rules
	if err := decodeYAML(r, &rules); err != nil {
		return Rules{}, fmt.Errorf("config: decode: %w", err)
	}
	return finish(rules)
}

func finish(r Rules) (Rules, error) {
	r = r.withDefaults()
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}
