package bsp

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func cross2(o, a, b v2.Vec) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func inTriangle(p, a, b, c v2.Vec) bool {
	return cross2(a, b, p) >= 0 && cross2(b, c, p) >= 0 && cross2(c, a, p) >= 0
}

// triangulate splits a simple counter-clockwise outline into triangles by
// ear clipping. If no ear can be found, which only happens for
// self-intersecting outlines, the rest of the outline is fanned.
func triangulate(pts []v2.Vec) [][3]int {
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}
	tris := make([][3]int, 0, len(pts)-2)
	for len(idx) > 3 {
		ear := -1
		for i := range idx {
			a := idx[(i+len(idx)-1)%len(idx)]
			b := idx[i]
			c := idx[(i+1)%len(idx)]
			if isEar(pts, idx, a, b, c) {
				tris = append(tris, [3]int{a, b, c})
				ear = i
				break
			}
		}
		if ear < 0 {
			for i := 1; i+1 < len(idx); i++ {
				tris = append(tris, [3]int{idx[0], idx[i], idx[i+1]})
			}
			return tris
		}
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	return append(tris, [3]int{idx[0], idx[1], idx[2]})
}

func isEar(pts []v2.Vec, idx []int, a, b, c int) bool {
	if cross2(pts[a], pts[b], pts[c]) <= 0 {
		return false
	}
	for _, i := range idx {
		if i == a || i == b || i == c {
			continue
		}
		if inTriangle(pts[i], pts[a], pts[b], pts[c]) {
			return false
		}
	}
	return true
}
