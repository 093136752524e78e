// Package bird defines the shape parameters that describe a bird.
package bird

import "log/slog"

// Params holds the 22 shape parameters of a bird.
// The documented ranges are slider and randomization bounds only; values outside
// them are legal and must be tolerated by every consumer.
type Params struct {
	BeakLength    float32 // [0:50]
	BeakSize      float32 // [20:100] ratio relative to the head, percent
	BeakWidth     float32 // [0:25] tip width, 0 is pointy
	BeakRoundness float32 // [10:200] tip shape, lowest is flat

	HeadSize          float32 // [10:40] diameter
	HeadToBelly       float32 // [-20:50] horizontal distance head to chest
	EyeSize           float32 // [0:20]
	HeadLateralOffset float32 // [-15:15]
	HeadLevel         float32 // [0:80] vertical height
	HeadYaw           float32 // [-45:45]
	HeadPitch         float32 // [-80:45] positive is upwards

	BellyLength   float32 // [10:100]
	BellySize     float32 // [20:60]
	BellyFat      float32 // [50:150] percent
	BellyToBottom float32 // [1:50] chest center to bottom center
	BottomSize    float32 // [5:50] diameter

	TailLength    float32 // [0:100]
	TailWidth     float32 // [1:50]
	TailYaw       float32 // [-45:45]
	TailPitch     float32 // [-45:90] positive is upwards
	TailRoundness float32 // [10:200] lowest is flat

	BaseFlat float32 // [-100:100], -100 disables the base cut
}

// BaseFlatDisabled is the BaseFlat value that turns off base flattening.
const BaseFlatDisabled = -100

// Default returns the reference bird.
func Default() Params {
	var p Params
	for _, spec := range Fields {
		spec.Set(&p, spec.Default)
	}
	return p
}

// Get returns the value of a single field.
func (p *Params) Get(f Field) float32 {
	return Fields[f].Get(p)
}

// Set assigns the value of a single field.
func (p *Params) Set(f Field, v float32) {
	Fields[f].Set(p, v)
}

// Values returns all fields in seed order.
func (p Params) Values() []float32 {
	out := make([]float32, len(Fields))
	for i, spec := range Fields {
		out[i] = spec.Get(&p)
	}
	return out
}

// FromValues builds a Params from values in seed order.
// Missing trailing values keep their defaults.
func FromValues(values []float32) Params {
	p := Default()
	for i, v := range values {
		if i >= len(Fields) {
			break
		}
		Fields[i].Set(&p, v)
	}
	return p
}

// CutEnabled reports whether the base should be flattened.
func (p Params) CutEnabled() bool {
	return p.BaseFlat > BaseFlatDisabled
}

// LogValue implements slog.LogValuer, grouping fields by anatomical section.
func (p Params) LogValue() slog.Value {
	groups := make([]slog.Attr, 0, len(Sections))
	for _, section := range Sections {
		var attrs []any
		for _, spec := range Fields {
			if spec.Section == section {
				attrs = append(attrs, slog.Float64(spec.Name, float64(spec.Get(&p))))
			}
		}
		groups = append(groups, slog.Group(string(section), attrs...))
	}
	return slog.GroupValue(groups...)
}
