package geometry

import "image"

// Centroid returns the area centroid of the closed polygon through vertices
// (the last vertex connects back to the first), using first-order area moments.
// A polygon with zero signed area, including any with fewer than 3 vertices,
// yields (0, 0). Coordinates are truncated toward zero.
func Centroid(vertices []image.Point) image.Point {
	n := len(vertices)
	if n < 3 {
		return image.Point{}
	}
	var a2, mx, my float64 // 2*m00, 6*m10, 6*m01
	for i, p := range vertices {
		q := vertices[(i+1)%n]
		cross := float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
		a2 += cross
		mx += float64(p.X+q.X) * cross
		my += float64(p.Y+q.Y) * cross
	}
	if a2 == 0 {
		return image.Point{}
	}
	// m10/m00 = (mx/6)/(a2/2)
	return image.Pt(int(mx/(3*a2)), int(my/(3*a2)))
}

// SignedArea returns the shoelace area of the closed polygon; positive when the
// vertices run counter-clockwise in a y-up frame.
func SignedArea(vertices []image.Point) float64 {
	n := len(vertices)
	var a2 float64
	for i, p := range vertices {
		q := vertices[(i+1)%n]
		a2 += float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
	}
	return a2 / 2
}
