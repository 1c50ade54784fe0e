package core

import "math"

// CellAspect is the assumed width/height ratio of a terminal cell.
// Terminal cells are roughly twice as tall as they are wide, so horizontal
// angles must be stretched by 1/CellAspect to look undistorted.
const CellAspect = 0.5

// Camera projects world-space points onto the screen cell grid using a
// simple perspective transform. The game keeps the camera aligned with the
// shooter orientation so the crosshair stays at screen center.
type Camera struct {
	Eye  Vec3    // camera position in world space
	Rot  Quat    // camera orientation; view transform uses the conjugate
	FovY float64 // vertical field of view in radians
}

// NewCamera returns a camera at eye with the given orientation and a
// default field of view suited to a 80x24 viewport.
func NewCamera(eye Vec3, rot Quat) Camera {
	return Camera{Eye: eye, Rot: rot, FovY: 1.15}
}

// Project maps a world point into cell coordinates on a w x h screen.
// ok is false when the point is behind the camera or outside the viewport.
// depth is the distance along the view axis, for painter-order sorting.
func (c Camera) Project(p Vec3, w, h int) (x, y int, depth float64, ok bool) {
	view := c.Rot.Conj().Rotate(p.Sub(c.Eye))
	depth = -view.Z
	if depth < 0.05 {
		return 0, 0, depth, false
	}

	halfTan := math.Tan(c.FovY / 2)
	aspect := float64(w) * CellAspect / float64(h)
	ndcX := view.X / (depth * halfTan * aspect)
	ndcY := view.Y / (depth * halfTan)

	x = int((ndcX + 1) / 2 * float64(w))
	y = int((1 - ndcY) / 2 * float64(h))
	if x < 0 || x >= w || y < 0 || y >= h {
		return x, y, depth, false
	}
	return x, y, depth, true
}
