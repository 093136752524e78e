// Package export renders bird meshes to a single ASCII STL solid.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/coolbirds/bird"
	"github.com/pthm-cable/coolbirds/geometry"
)

// ErrMalformedSTL is returned when an STL text lacks the markers needed to splice it.
var ErrMalformedSTL = errors.New("malformed STL")

// Exporter writes head and body as one STL solid. Head and body are
// rendered separately and spliced as text so each keeps its own facets.
type Exporter struct {
	Geometry  *geometry.Builder
	SolidName string
	HeadName  string
}

// New returns an exporter with the standard solid names.
func New(g *geometry.Builder) *Exporter {
	return &Exporter{Geometry: g, SolidName: "bird", HeadName: "head"}
}

// STL builds both meshes for p and returns the merged document.
func (e *Exporter) STL(p bird.Params) ([]byte, error) {
	b := e.Geometry.Build(p)
	body := b.Body.ToSTLASCII(e.SolidName)
	head := b.Head.ToSTLASCII(e.HeadName)
	merged, err := e.Merge(body, head)
	if err != nil {
		return nil, err
	}
	return []byte(merged), nil
}

// Merge keeps the body document, drops its closing endsolid line, appends
// the head's facet blocks and closes the result with "endsolid <SolidName>".
func (e *Exporter) Merge(body, head string) (string, error) {
	end := strings.LastIndex(body, "endsolid")
	if end < 0 {
		return "", fmt.Errorf("%w: body has no endsolid line", ErrMalformedSTL)
	}
	headStart := strings.Index(head, "facet")
	headEnd := strings.LastIndex(head, "endsolid")
	if headEnd < 0 {
		return "", fmt.Errorf("%w: head has no endsolid line", ErrMalformedSTL)
	}

	var sb strings.Builder
	sb.Grow(len(body) + len(head))
	sb.WriteString(body[:end])
	// A head without facets contributes nothing
	if headStart >= 0 && headStart < headEnd {
		// Keep the indentation that precedes the first facet
		lineStart := strings.LastIndex(head[:headStart], "\n") + 1
		sb.WriteString(head[lineStart:headEnd])
	}
	sb.WriteString("endsolid ")
	sb.WriteString(e.SolidName)
	sb.WriteString("\n")
	return sb.String(), nil
}

// FacetCount counts facet blocks in an STL text.
func FacetCount(stl string) int {
	return strings.Count(stl, "facet normal")
}
