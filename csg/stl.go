package csg

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteSTLASCII writes the mesh as an ASCII STL solid. Each facet carries
// its polygon's plane normal.
func (m *Mesh) WriteSTLASCII(w io.Writer, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range m.Triangles() {
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		bw.WriteString("    outer loop\n")
		for _, v := range t.Vertices {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.Pos.X, v.Pos.Y, v.Pos.Z)
		}
		bw.WriteString("    endloop\n")
		bw.WriteString("  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// ToSTLASCII renders the mesh as an ASCII STL document.
func (m *Mesh) ToSTLASCII(name string) string {
	var sb strings.Builder
	_ = m.WriteSTLASCII(&sb, name)
	return sb.String()
}
