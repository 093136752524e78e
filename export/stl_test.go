package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/csg"
	"github.com/pthm-cable/coolbirds/geometry"
)

func coarseExporter() *Exporter {
	opts := geometry.DefaultOptions()
	opts.Segments, opts.Stacks = 10, 10
	opts.EyeSegments, opts.EyeStacks = 6, 6
	return New(geometry.New(opts))
}

func countLinePrefix(s, prefix string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestSTLMergeStructure(t *testing.T) {
	e := coarseExporter()
	p := bird.Default()

	out, err := e.STL(p)
	if err != nil {
		t.Fatalf("STL: %v", err)
	}
	s := string(out)

	if n := countLinePrefix(s, "solid "); n != 1 {
		t.Errorf("solid headers = %d, want 1", n)
	}
	if !strings.HasPrefix(s, "solid bird\n") {
		t.Errorf("document starts with %q", s[:min(len(s), 16)])
	}
	if n := strings.Count(s, "endsolid"); n != 1 {
		t.Errorf("endsolid lines = %d, want 1", n)
	}
	if !strings.HasSuffix(s, "endsolid bird\n") {
		t.Error("document does not end with endsolid bird")
	}
	if strings.Contains(s, "solid head") {
		t.Error("head wrapper leaked into merged document")
	}

	b := e.Geometry.Build(p)
	want := b.Head.TriangleCount() + b.Body.TriangleCount()
	if got := FacetCount(s); got != want {
		t.Errorf("facets = %d, want head %d + body %d", got, b.Head.TriangleCount(), b.Body.TriangleCount())
	}
	if got := strings.Count(s, "endfacet"); got != want {
		t.Errorf("endfacet = %d, want %d", got, want)
	}
}

func TestMerge(t *testing.T) {
	e := &Exporter{SolidName: "bird", HeadName: "head"}
	body := csg.Cuboid(1, 1, 1).ToSTLASCII("bird")
	head := csg.Cuboid(1, 1, 1).Translate(5, 0, 0).ToSTLASCII("head")

	merged, err := e.Merge(body, head)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := FacetCount(merged); got != 24 {
		t.Errorf("facets = %d, want 24", got)
	}
	if !strings.HasPrefix(merged, body[:strings.LastIndex(body, "endsolid")]) {
		t.Error("body facets were not kept verbatim")
	}
	if !strings.Contains(merged, "\n  facet normal") {
		t.Error("facet indentation lost")
	}
}

func TestMergeEmptyHead(t *testing.T) {
	e := &Exporter{SolidName: "bird", HeadName: "head"}
	body := csg.Cuboid(1, 1, 1).ToSTLASCII("bird")
	head := (&csg.Mesh{}).ToSTLASCII("head")

	merged, err := e.Merge(body, head)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged != body {
		t.Errorf("merged with empty head differs from body:\n%s", merged)
	}
}

func TestMergeMissingMarkers(t *testing.T) {
	e := &Exporter{SolidName: "bird", HeadName: "head"}
	good := csg.Cuboid(1, 1, 1).ToSTLASCII("x")

	tests := []struct {
		name, body, head string
	}{
		{"body without endsolid", "solid bird\n", good},
		{"head without endsolid", good, "solid head\n  facet normal 0 0 1\n"},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Merge(tt.body, tt.head)
			if !errors.Is(err, ErrMalformedSTL) {
				t.Errorf("err = %v, want ErrMalformedSTL", err)
			}
		})
	}
}
