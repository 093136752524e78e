package csg

// node is a BSP tree node. Each node's polygons lie in its plane; front and
// back subtrees hold everything on either side.
type node struct {
	plane    *Plane
	front    *node
	back     *node
	polygons []Polygon
}

func newNode(polygons []Polygon) *node {
	n := &node{}
	n.build(polygons)
	return n
}

// invert swaps solid and empty space.
func (n *node) invert() {
	for i := range n.polygons {
		n.polygons[i] = n.polygons[i].flip()
	}
	if n.plane != nil {
		flipped := n.plane.flip()
		n.plane = &flipped
	}
	if n.front != nil {
		n.front.invert()
	}
	if n.back != nil {
		n.back.invert()
	}
	n.front, n.back = n.back, n.front
}

// clipPolygons removes the parts of polygons that are inside this tree.
func (n *node) clipPolygons(polygons []Polygon) []Polygon {
	if n.plane == nil {
		out := make([]Polygon, len(polygons))
		copy(out, polygons)
		return out
	}
	var fronts, backs []Polygon
	for _, p := range polygons {
		n.plane.split(p, &fronts, &backs, &fronts, &backs)
	}
	if n.front != nil {
		fronts = n.front.clipPolygons(fronts)
	}
	if n.back != nil {
		backs = n.back.clipPolygons(backs)
	} else {
		backs = nil
	}
	return append(fronts, backs...)
}

// clipTo removes every polygon of this tree that lies inside other.
func (n *node) clipTo(other *node) {
	n.polygons = other.clipPolygons(n.polygons)
	if n.front != nil {
		n.front.clipTo(other)
	}
	if n.back != nil {
		n.back.clipTo(other)
	}
}

func (n *node) allPolygons() []Polygon {
	out := make([]Polygon, 0, len(n.polygons))
	out = append(out, n.polygons...)
	if n.front != nil {
		out = append(out, n.front.allPolygons()...)
	}
	if n.back != nil {
		out = append(out, n.back.allPolygons()...)
	}
	return out
}

// build inserts polygons into the tree, splitting them where needed.
func (n *node) build(polygons []Polygon) {
	if len(polygons) == 0 {
		return
	}
	if n.plane == nil {
		plane := polygons[0].Plane
		n.plane = &plane
	}
	var fronts, backs []Polygon
	for _, p := range polygons {
		n.plane.split(p, &n.polygons, &n.polygons, &fronts, &backs)
	}
	if len(fronts) > 0 {
		if n.front == nil {
			n.front = &node{}
		}
		n.front.build(fronts)
	}
	if len(backs) > 0 {
		if n.back == nil {
			n.back = &node{}
		}
		n.back.build(backs)
	}
}
