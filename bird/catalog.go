package bird

// DefaultSeed encodes Default().
const DefaultSeed = "m.15.80.5.10.h.22.32.7.4.32.10.9.b.60.40.90.25.25.t.50.22.-5.40.80.c.100"

// Catalog lists hand-picked seeds that produce pleasing birds.
var Catalog = []string{
	DefaultSeed,
	"m.8.70.2.40.h.20.18.6.0.28.-5.5.b.45.34.110.18.22.t.40.14.0.20.60.c.100",
	"m.45.95.8.60.h.26.30.6.2.40.0.10.b.55.38.95.24.26.t.45.18.0.10.40.c.100",
	"m.6.50.3.80.h.20.30.5.0.38.0.-5.b.62.44.120.28.30.t.38.24.0.15.120.c.100",
	"m.40.40.1.10.h.18.-10.4.0.10.0.-30.b.50.50.140.10.40.t.0.10.0.0.100.c.100",
	"m.20.90.14.180.h.24.34.5.-3.35.5.0.b.70.42.100.30.30.t.20.30.0.45.150.c.100",
	"m.3.30.2.30.h.36.8.16.0.30.0.0.b.40.48.130.16.40.t.15.20.0.-20.150.c.100",
	"m.38.60.2.20.h.16.40.4.0.75.15.20.b.80.30.70.30.18.t.30.12.0.-10.40.c.100",
	"m.12.60.3.30.h.22.5.5.0.55.0.25.b.45.46.100.20.36.t.10.18.0.-40.60.c.100",
	"m.10.60.2.20.h.20.26.6.2.30.-10.12.b.58.34.80.26.20.t.95.16.5.30.40.c.100",
	"m.4.40.4.60.h.30.12.10.0.28.10.20.b.30.44.120.12.36.t.5.10.0.60.200.c.-100",
}
