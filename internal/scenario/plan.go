package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanEntry selects one scenario. A missing enabled flag means enabled.
type PlanEntry struct {
	ID      string `json:"id" yaml:"id"`
	Enabled *bool  `json:"enabled" yaml:"enabled"`
}

// IsEnabled reports whether the entry should run.
func (e PlanEntry) IsEnabled() bool { return e.Enabled == nil || *e.Enabled }

// Plan narrows and orders the scenario catalog.
type Plan struct {
	Scenarios []PlanEntry `json:"scenarios" yaml:"scenarios"`
}

// LoadPlan reads a plan from a YAML or JSON file.
func LoadPlan(path string) (*Plan, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("scenarios file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenarios file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read scenarios file: %w", err)
	}
	return ParsePlan(raw, filepath.Ext(path))
}

type decodeFn func([]byte, *Plan) error

// ParsePlan decodes raw by extension; an empty extension tries YAML then JSON. Unknown
// keys are rejected and a plan must name at least one scenario.
func ParsePlan(data []byte, ext string) (*Plan, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   decodeFn
	}{
		{name: "yaml", ext: ".yaml", fn: decodeYAMLPlan},
		{name: "yaml", ext: ".yml", fn: decodeYAMLPlan},
		{name: "json", ext: ".json", fn: decodeJSONPlan},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var plan Plan
		if err := d.fn(data, &plan); err != nil {
			errs = append(errs, fmt.Errorf("decode %s plan: %w", d.name, err))
			continue
		}
		if len(plan.Scenarios) == 0 {
			return nil, errors.New("scenarios file contains no scenarios entries")
		}
		return &plan, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("scenarios file extension %q not recognized (expected YAML or JSON)", ext)
	}
	return nil, errors.Join(errs...)
}

func decodeYAMLPlan(data []byte, plan *Plan) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(plan); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("document is empty")
		}
		return err
	}
	return nil
}

func decodeJSONPlan(data []byte, plan *Plan) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(plan)
}

// Select returns the enabled scenarios in plan order. A nil or empty plan selects
// the whole catalog.
func (p *Plan) Select(catalog []Scenario) ([]Scenario, error) {
	if p == nil || len(p.Scenarios) == 0 {
		return catalog, nil
	}

	byID := make(map[string]Scenario, len(catalog))
	for _, s := range catalog {
		byID[s.ID] = s
	}

	seen := make(map[string]struct{}, len(p.Scenarios))
	out := make([]Scenario, 0, len(p.Scenarios))
	for i, entry := range p.Scenarios {
		id := strings.TrimSpace(entry.ID)
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("scenario[%d]: unknown id %q", i, entry.ID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("scenario[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
		if entry.IsEnabled() {
			out = append(out, s)
		}
	}
	return out, nil
}
