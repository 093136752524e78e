package main

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/coolbirds/bird"
)

// ParamVector maps a search point in [0,1]^n onto a subset of bird fields.
// Fields outside the subset keep the starting bird's values.
type ParamVector struct {
	Specs []bird.FieldSpec
	Base  bird.Params
}

// NewParamVector selects fields by name. An empty list selects every field
// except base_flat, whose negative range switches the cut off entirely.
func NewParamVector(base bird.Params, names []string) (*ParamVector, error) {
	pv := &ParamVector{Base: base}
	if len(names) == 0 {
		for _, spec := range bird.Fields {
			if spec.Field != bird.BaseFlat {
				pv.Specs = append(pv.Specs, spec)
			}
		}
		return pv, nil
	}

	seen := make(map[bird.Field]bool)
	for _, name := range names {
		spec, ok := fieldByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		if seen[spec.Field] {
			continue
		}
		seen[spec.Field] = true
		pv.Specs = append(pv.Specs, spec)
	}
	return pv, nil
}

func fieldByName(name string) (bird.FieldSpec, bool) {
	for _, spec := range bird.Fields {
		if spec.Name == name {
			return spec, true
		}
	}
	return bird.FieldSpec{}, false
}

// ParseFields splits a comma separated field list, dropping blanks.
func ParseFields(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Dim returns the number of searched parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Initial returns the starting bird as a normalized point.
func (pv *ParamVector) Initial() []float64 {
	x := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := float64(spec.Clamp(spec.Get(&pv.Base)))
		x[i] = (v - float64(spec.Min)) / float64(spec.Max-spec.Min)
	}
	return x
}

// Denormalize converts a search point to raw field values, clamping each
// coordinate to [0,1] first.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		t := min(max(x[i], 0), 1)
		raw[i] = float64(spec.Min) + t*float64(spec.Max-spec.Min)
	}
	return raw
}

// Apply returns the starting bird with the searched fields set from x.
func (pv *ParamVector) Apply(x []float64) bird.Params {
	p := pv.Base
	for i, v := range pv.Denormalize(x) {
		pv.Specs[i].Set(&p, float32(v))
	}
	return p
}

// OutOfRange is the squared distance of x outside the unit cube.
func OutOfRange(x []float64) float64 {
	var d float64
	for _, v := range x {
		switch {
		case v < 0:
			d += v * v
		case v > 1:
			d += (v - 1) * (v - 1)
		}
	}
	return d
}
