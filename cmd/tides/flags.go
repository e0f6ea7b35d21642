package main

import (
	"fmt"
	"strconv"
	"strings"

	"go.ngs.io/tides-core/internal/domain"
)

// constituentFlags collects repeated -constituent NAME:SPEED_DEG_HR:PHASE_DEG:AMP_M values.
type constituentFlags []domain.CorrectedConstituent

func (f *constituentFlags) String() string {
	names := make([]string, len(*f))
	for i, c := range *f {
		names[i] = c.Name
	}
	return strings.Join(names, ",")
}

func (f *constituentFlags) Set(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) != 4 || parts[0] == "" {
		return fmt.Errorf("expected NAME:SPEED_DEG_HR:PHASE_DEG:AMP_M, got %q", value)
	}
	nums, err := parseFloats(parts[1:])
	if err != nil {
		return fmt.Errorf("constituent %s: %w", parts[0], err)
	}
	*f = append(*f, domain.NewCorrectedConstituentDeg(strings.ToUpper(parts[0]), nums[0], nums[1], nums[2]))
	return nil
}

// datumFlags collects repeated -datum-offset NAME:M values.
type datumFlags map[string]float64

func (f datumFlags) String() string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	return strings.Join(names, ",")
}

func (f datumFlags) Set(value string) error {
	name, raw, ok := strings.Cut(value, ":")
	if !ok || name == "" {
		return fmt.Errorf("expected NAME:M, got %q", value)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("datum %s: %w", name, err)
	}
	f[name] = v
	return nil
}

// rawFlags collects repeated -raw NAME:RE:IM values, placed at the catalogue index of NAME.
type rawFlags []domain.ComplexAmplitude

func (f *rawFlags) String() string {
	return fmt.Sprint([]domain.ComplexAmplitude(*f))
}

func (f *rawFlags) Set(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return fmt.Errorf("expected NAME:RE:IM, got %q", value)
	}
	_, idx, ok := domain.LookupConstituent(strings.ToUpper(parts[0]))
	if !ok {
		return fmt.Errorf("unknown constituent %q", parts[0])
	}
	nums, err := parseFloats(parts[1:])
	if err != nil {
		return fmt.Errorf("constituent %s: %w", parts[0], err)
	}
	for len(*f) <= idx {
		*f = append(*f, domain.ComplexAmplitude{})
	}
	(*f)[idx] = domain.ComplexAmplitude{Re: nums[0], Im: nums[1]}
	return nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
