package bird

// Section groups fields by the part of the bird they shape.
type Section string

const (
	SectionBeak   Section = "beak"
	SectionHead   Section = "head"
	SectionBelly  Section = "belly"
	SectionTail   Section = "tail"
	SectionCutoff Section = "cutoff"
)

// Sections lists the sections in seed order.
var Sections = []Section{SectionBeak, SectionHead, SectionBelly, SectionTail, SectionCutoff}

// Tag returns the one-letter seed tag of the section.
func (s Section) Tag() string {
	switch s {
	case SectionBeak:
		return "m"
	case SectionHead:
		return "h"
	case SectionBelly:
		return "b"
	case SectionTail:
		return "t"
	case SectionCutoff:
		return "c"
	default:
		return ""
	}
}

// SectionForTag resolves a seed tag back to its section.
func SectionForTag(tag string) (Section, bool) {
	for _, s := range Sections {
		if s.Tag() == tag {
			return s, true
		}
	}
	return "", false
}

// Field identifies one parameter. The order matches the seed layout.
type Field int

const (
	BeakLength Field = iota
	BeakSize
	BeakWidth
	BeakRoundness
	HeadSize
	HeadToBelly
	EyeSize
	HeadLateralOffset
	HeadLevel
	HeadYaw
	HeadPitch
	BellyLength
	BellySize
	BellyFat
	BellyToBottom
	BottomSize
	TailLength
	TailWidth
	TailYaw
	TailPitch
	TailRoundness
	BaseFlat

	NumFields int = iota
)

// String returns the field's snake_case name.
func (f Field) String() string {
	if f < 0 || int(f) >= len(Fields) {
		return "unknown"
	}
	return Fields[f].Name
}

// FieldSpec describes a single parameter and how to reach it.
type FieldSpec struct {
	Field   Field
	Section Section
	Name    string // snake_case, used for CSV columns and log keys
	Label   string // human-readable slider label
	Min     float32
	Max     float32
	Default float32
	Get     func(*Params) float32
	Set     func(*Params, float32)
}

// Clamp limits v to the documented range.
func (s FieldSpec) Clamp(v float32) float32 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Normalize maps v from the documented range to [0,1] without clamping.
func (s FieldSpec) Normalize(v float32) float32 {
	if s.Max == s.Min {
		return 0
	}
	return (v - s.Min) / (s.Max - s.Min)
}

// Fields is indexed by Field and lists every parameter in seed order.
var Fields = [NumFields]FieldSpec{
	// Beak
	{BeakLength, SectionBeak, "beak_length", "Beak length", 0, 50, 15,
		func(p *Params) float32 { return p.BeakLength }, func(p *Params, v float32) { p.BeakLength = v }},
	{BeakSize, SectionBeak, "beak_size", "Beak size (% of head)", 20, 100, 80,
		func(p *Params) float32 { return p.BeakSize }, func(p *Params, v float32) { p.BeakSize = v }},
	{BeakWidth, SectionBeak, "beak_width", "Beak width", 0, 25, 5,
		func(p *Params) float32 { return p.BeakWidth }, func(p *Params, v float32) { p.BeakWidth = v }},
	{BeakRoundness, SectionBeak, "beak_roundness", "Beak roundness", 10, 200, 10,
		func(p *Params) float32 { return p.BeakRoundness }, func(p *Params, v float32) { p.BeakRoundness = v }},

	// Head
	{HeadSize, SectionHead, "head_size", "Head size", 10, 40, 22,
		func(p *Params) float32 { return p.HeadSize }, func(p *Params, v float32) { p.HeadSize = v }},
	{HeadToBelly, SectionHead, "head_to_belly", "Head to belly", -20, 50, 32,
		func(p *Params) float32 { return p.HeadToBelly }, func(p *Params, v float32) { p.HeadToBelly = v }},
	{EyeSize, SectionHead, "eye_size", "Eye size", 0, 20, 7,
		func(p *Params) float32 { return p.EyeSize }, func(p *Params, v float32) { p.EyeSize = v }},
	{HeadLateralOffset, SectionHead, "head_lateral_offset", "Head lateral offset", -15, 15, 4,
		func(p *Params) float32 { return p.HeadLateralOffset }, func(p *Params, v float32) { p.HeadLateralOffset = v }},
	{HeadLevel, SectionHead, "head_level", "Head level", 0, 80, 32,
		func(p *Params) float32 { return p.HeadLevel }, func(p *Params, v float32) { p.HeadLevel = v }},
	{HeadYaw, SectionHead, "head_yaw", "Head yaw", -45, 45, 10,
		func(p *Params) float32 { return p.HeadYaw }, func(p *Params, v float32) { p.HeadYaw = v }},
	{HeadPitch, SectionHead, "head_pitch", "Head pitch", -80, 45, 9,
		func(p *Params) float32 { return p.HeadPitch }, func(p *Params, v float32) { p.HeadPitch = v }},

	// Belly
	{BellyLength, SectionBelly, "belly_length", "Belly length", 10, 100, 60,
		func(p *Params) float32 { return p.BellyLength }, func(p *Params, v float32) { p.BellyLength = v }},
	{BellySize, SectionBelly, "belly_size", "Belly size", 20, 60, 40,
		func(p *Params) float32 { return p.BellySize }, func(p *Params, v float32) { p.BellySize = v }},
	{BellyFat, SectionBelly, "belly_fat", "Belly fat (%)", 50, 150, 90,
		func(p *Params) float32 { return p.BellyFat }, func(p *Params, v float32) { p.BellyFat = v }},
	{BellyToBottom, SectionBelly, "belly_to_bottom", "Belly to bottom", 1, 50, 25,
		func(p *Params) float32 { return p.BellyToBottom }, func(p *Params, v float32) { p.BellyToBottom = v }},
	{BottomSize, SectionBelly, "bottom_size", "Bottom size", 5, 50, 25,
		func(p *Params) float32 { return p.BottomSize }, func(p *Params, v float32) { p.BottomSize = v }},

	// Tail
	{TailLength, SectionTail, "tail_length", "Tail length", 0, 100, 50,
		func(p *Params) float32 { return p.TailLength }, func(p *Params, v float32) { p.TailLength = v }},
	{TailWidth, SectionTail, "tail_width", "Tail width", 1, 50, 22,
		func(p *Params) float32 { return p.TailWidth }, func(p *Params, v float32) { p.TailWidth = v }},
	{TailYaw, SectionTail, "tail_yaw", "Tail yaw", -45, 45, -5,
		func(p *Params) float32 { return p.TailYaw }, func(p *Params, v float32) { p.TailYaw = v }},
	{TailPitch, SectionTail, "tail_pitch", "Tail pitch", -45, 90, 40,
		func(p *Params) float32 { return p.TailPitch }, func(p *Params, v float32) { p.TailPitch = v }},
	{TailRoundness, SectionTail, "tail_roundness", "Tail roundness", 10, 200, 80,
		func(p *Params) float32 { return p.TailRoundness }, func(p *Params, v float32) { p.TailRoundness = v }},

	// Cutoff
	{BaseFlat, SectionCutoff, "base_flat", "Base flat (-100 = off)", BaseFlatDisabled, 100, 100,
		func(p *Params) float32 { return p.BaseFlat }, func(p *Params, v float32) { p.BaseFlat = v }},
}

// SectionFields returns the specs belonging to a section, in seed order.
func SectionFields(s Section) []FieldSpec {
	var out []FieldSpec
	for _, spec := range Fields {
		if spec.Section == s {
			out = append(out, spec)
		}
	}
	return out
}
