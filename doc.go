// Package polystrip generates quad strips ("polystrips") that follow chains of
// cubic Bézier segments and lie on a target surface mesh. It is the geometry
// engine of a retopology tool: a user places control vertices, the engine
// interpolates cross-sections between them, snaps those onto the surface being
// retopologized and emits the resulting quads.
//
// # Frames, vertices and edges
//
// A [Frame] is an oriented cross-section: a position, a right-handed
// orthonormal basis (TangentX along the strip, TangentY across it, Normal off
// the surface) and a radius, the strip's half width. Frames are values and
// are only constructed through validating functions such as [NewFrame].
//
// A [GVert] is a control vertex, a frame placed by the user. A [GEdge] is a
// cubic Bézier between two vertices, shaped by two handles. Each edge caches
// a sequence of [IGVert]s, the frames interpolated along it.
//
// [PolyStrips] owns a network of vertices and edges and references the
// [Surface] they are snapped to.
//
// # Recomputation
//
// Editing a vertex marks the edges that end at it dirty; nothing else is
// recomputed until the caller asks. [GEdge.RecalcApprox] samples the curve
// evenly by arc length, interpolates the radius and carries the start frame's
// orientation along the curve with a rotation minimizing frame, blending it
// into the end frame. [GEdge.SnapToSurface] then moves the interior samples to
// the closest points of the surface, which a [Projector] finds exactly with a
// bounding volume hierarchy. [PolyStrips.RebuildAll] does both for every edge
// that needs it.
//
// Failures leave the previously computed frames intact. Errors wrap one of
// [ErrInvalidParameter], [ErrDegenerateInput] and [ErrEmptySurface], among
// others; test for them with [errors.Is].
//
// # Meshes
//
// [StripMeshBuilder] offsets every interpolated frame by ± radius along
// TangentY and connects consecutive frames with quads. The resulting [Mesh]
// can be welded, triangulated, written as Wavefront OBJ or converted to GPU
// buffers.
//
// # Literature
//
//   - [Computation of Rotation Minimizing Frames] by Wang, Jüttler, Zheng and Liu
//   - Real-Time Collision Detection by Christer Ericson, section 5.1.5
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]
//
// [Computation of Rotation Minimizing Frames]: https://doi.org/10.1145/1330511.1330513
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
package polystrip
