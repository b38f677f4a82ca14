// Package fixtures seeds a company with the default shift registry and
// rotation patterns, from the embedded defaults or a YAML file.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-shift-rotation/internal/domain/shift"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultFixtures []byte

type ShiftTypeFixture struct {
	Code              string `yaml:"code"`
	Name              string `yaml:"name"`
	ClockIn           string `yaml:"clock_in"`
	ClockOut          string `yaml:"clock_out"`
	IsNextDayCheckout bool   `yaml:"is_next_day_checkout"`
}

type PatternFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tokens      []string `yaml:"tokens"`
}

type Fixtures struct {
	ShiftTypes []ShiftTypeFixture `yaml:"shift_types"`
	Patterns   []PatternFixture   `yaml:"patterns"`
}

// Result counts what Seed created and what already existed.
type Result struct {
	TypesCreated     int
	TypesExisting    int
	PatternsCreated  int
	PatternsExisting int
}

// Defaults returns the embedded fixtures.
func Defaults() (Fixtures, error) {
	return Parse(defaultFixtures)
}

// Load reads fixtures from path, or the embedded defaults when path is empty.
func Load(path string) (Fixtures, error) {
	if path == "" {
		return Defaults()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return Fixtures{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML fixtures. Unknown keys are rejected.
func Parse(data []byte) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixtures{}, fmt.Errorf("invalid fixtures: %w", err)
	}
	return f, nil
}

// Seed creates the fixtures through the shift service, so they pass the same
// validation as API input. ctx must carry the target company. Shift types are
// matched by code and patterns by name; existing ones are left unchanged.
func Seed(ctx context.Context, svc shift.ShiftService, f Fixtures) (Result, error) {
	var res Result

	for _, st := range f.ShiftTypes {
		active := true
		_, err := svc.CreateShiftType(ctx, shift.CreateShiftTypeRequest{
			Code:              st.Code,
			Name:              st.Name,
			ClockIn:           st.ClockIn,
			ClockOut:          st.ClockOut,
			IsNextDayCheckout: st.IsNextDayCheckout,
			Active:            &active,
		})
		switch {
		case errors.Is(err, shift.ErrShiftTypeCodeExists):
			res.TypesExisting++
		case err != nil:
			return res, fmt.Errorf("failed to seed shift type %s: %w", st.Code, err)
		default:
			res.TypesCreated++
		}
	}

	existing, err := svc.ListShiftPatterns(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list shift patterns: %w", err)
	}
	names := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		names[p.Name] = struct{}{}
	}

	for _, p := range f.Patterns {
		if _, ok := names[p.Name]; ok {
			res.PatternsExisting++
			continue
		}
		req := shift.CreateShiftPatternRequest{Name: p.Name, Tokens: p.Tokens}
		if p.Description != "" {
			desc := p.Description
			req.Description = &desc
		}
		if _, err := svc.CreateShiftPattern(ctx, req); err != nil {
			return res, fmt.Errorf("failed to seed pattern %q: %w", p.Name, err)
		}
		names[p.Name] = struct{}{}
		res.PatternsCreated++
	}

	slog.Info("fixtures seeded",
		"types_created", res.TypesCreated,
		"types_existing", res.TypesExisting,
		"patterns_created", res.PatternsCreated,
		"patterns_existing", res.PatternsExisting,
	)
	return res, nil
}
