package modifier

import (
	"fmt"

	"github.com/bloodmagesoftware/hemesh/geom"
	"github.com/bloodmagesoftware/hemesh/hemesh"
	"github.com/bloodmagesoftware/hemesh/meshop"
	"github.com/bloodmagesoftware/hemesh/progress"
)

// CenterLabel is the internal label given to the center vertices created by
// QuadSplit.
const CenterLabel int32 = 2

const quadSplitName = "QuadSplit"

// QuadSplit splits every n-gon into n quads around a new center vertex. Each
// edge gets a midpoint; each quad joins one original corner, the two
// midpoints next to it and the center.
type QuadSplit struct {
	offset     float64
	tracker    progress.Tracker
	splitFaces *hemesh.Selection
}

var _ Modifier = (*QuadSplit)(nil)

// NewQuadSplit creates a QuadSplit with offset 0: centers sit on the face
// centroids.
func NewQuadSplit() *QuadSplit {
	return &QuadSplit{tracker: progress.Nop()}
}

// SetOffset sets the distance the center vertex is moved along the face
// normal.
func (q *QuadSplit) SetOffset(d float64) *QuadSplit {
	q.offset = d
	return q
}

// Offset returns the configured offset.
func (q *QuadSplit) Offset() float64 {
	return q.offset
}

// WithTracker sets the status sink.
func (q *QuadSplit) WithTracker(t progress.Tracker) *QuadSplit {
	if t == nil {
		t = progress.Nop()
	}
	q.tracker = t
	return q
}

// SplitFaces returns the elements created by the last Apply or
// ApplySelection call: every new vertex (midpoints and centers) and every
// resulting quad. It is nil before the first call.
func (q *QuadSplit) SplitFaces() *hemesh.Selection {
	return q.splitFaces
}

// Apply splits every face of m.
func (q *QuadSplit) Apply(m *hemesh.Mesh) (*hemesh.Mesh, error) {
	return q.apply(wholeMesh(m))
}

// ApplySelection splits the selected faces. New faces are added to sel.
func (q *QuadSplit) ApplySelection(sel *hemesh.Selection) (*hemesh.Mesh, error) {
	t, err := selected(sel)
	if err != nil {
		return nil, fmt.Errorf("quadsplit: %w", err)
	}
	return q.apply(t)
}

// faceSnapshot is taken before edge splitting changes the face loops.
type faceSnapshot struct {
	face   *hemesh.Face
	center geom.Vec3
	order  int
	uvw    geom.Vec3
	hasUVW bool
}

func (q *QuadSplit) apply(t target) (*hemesh.Mesh, error) {
	offset := q.offset
	m := t.mesh
	out := hemesh.NewSelection(m)
	q.splitFaces = out

	q.tracker.SetStatus(quadSplitName, "Starting QuadSplit.", +1)
	defer q.tracker.SetStatus(quadSplitName, "Exiting QuadSplit.", -1)

	// Preconditions, checked before anything is touched
	if err := t.checkFaceOrders("quadsplit", 3); err != nil {
		return nil, err
	}
	if err := m.CheckPairing(); err != nil {
		return nil, fmt.Errorf("quadsplit: %w: %w", hemesh.ErrUnsupported, err)
	}

	counter := progress.NewCounter(q.tracker, quadSplitName, "Getting face centers.", len(t.faces), 10)
	snapshots := make([]faceSnapshot, len(t.faces))
	for i, f := range t.faces {
		snapshots[i] = snapshotFace(m, f, offset)
		counter.Increment()
	}

	orig, err := t.selection()
	if err != nil {
		return nil, fmt.Errorf("quadsplit: %w", err)
	}
	mids, err := meshop.SplitEdges(orig)
	if err != nil {
		return nil, fmt.Errorf("quadsplit: %w", err)
	}
	if err := out.Union(mids); err != nil {
		return nil, fmt.Errorf("quadsplit: %w", err)
	}

	counter = progress.NewCounter(q.tracker, quadSplitName, "Splitting faces into quads.", len(snapshots), 10)
	for _, snap := range snapshots {
		if err := splitFace(m, snap, mids, out, t.input); err != nil {
			return nil, fmt.Errorf("quadsplit: %w", err)
		}
		counter.Increment()
	}

	if err := m.PairHalfedges(); err != nil {
		return nil, fmt.Errorf("quadsplit: %w", err)
	}
	return m, nil
}

func snapshotFace(m *hemesh.Mesh, f *hemesh.Face, offset float64) faceSnapshot {
	corners := m.FaceHalfedges(f)
	snap := faceSnapshot{
		face:   f,
		center: m.FaceCenter(f).AddMul(offset, m.FaceNormal(f)),
		order:  len(corners),
		hasUVW: true,
	}

	// the center parameter is the mean over the original corners
	var sum geom.Vec3
	for _, h := range corners {
		uvw, ok := m.UVW(m.Origin(h), f)
		if !ok {
			snap.hasUVW = false
			break
		}
		sum = sum.Add(uvw)
	}
	if snap.hasUVW {
		snap.uvw = sum.Scale(1 / float64(snap.order))
	}
	return snap
}

// splitFace rewires one face whose edges have already been split. The loop
// alternates midpoints and corners; starting at a midpoint, each pair of
// half-edges (mid -> corner -> next mid) is closed into a quad with one edge
// into the center and one edge back out of it.
func splitFace(m *hemesh.Mesh, snap faceSnapshot, mids, out, input *hemesh.Selection) error {
	f := snap.face

	center := hemesh.NewVertex(snap.center)
	center.SetInternalLabel(CenterLabel)
	if snap.hasUVW {
		center.SetUVW(snap.uvw)
	}
	if err := m.AddVertex(center); err != nil {
		return err
	}
	if err := out.AddVertices(center); err != nil {
		return err
	}

	var start *hemesh.Halfedge
	for _, h := range m.FaceHalfedges(f) {
		if mids.ContainsVertex(h.Vertex()) {
			start = h
			break
		}
	}
	if start == nil {
		return fmt.Errorf("face %d has no split edges: %w", f.Key(), hemesh.ErrInvalidMesh)
	}

	seconds := make([]*hemesh.Halfedge, 0, snap.order)
	toCenter := make([]*hemesh.Halfedge, 0, snap.order)
	fromCenter := make([]*hemesh.Halfedge, 0, snap.order)

	he := start
	for {
		sub := f
		if len(seconds) > 0 {
			sub = hemesh.NewFace()
			sub.CopyProperties(f)
			if err := m.AddFace(sub); err != nil {
				return err
			}
			if input != nil {
				if err := input.AddFaces(sub); err != nil {
					return err
				}
			}
		}
		if err := out.AddFaces(sub); err != nil {
			return err
		}

		second := m.Next(he)
		after := m.Next(second)
		m.SetFace(he, sub)
		m.SetFaceHalfedge(sub, he)
		m.SetFace(second, sub)

		in := hemesh.NewHalfedge()
		back := hemesh.NewHalfedge()
		if err := m.AddHalfedge(in); err != nil {
			return err
		}
		if err := m.AddHalfedge(back); err != nil {
			return err
		}
		m.SetVertex(in, m.Origin(after))
		if uvw, ok := after.UVW(); ok {
			in.SetUVW(uvw)
		}
		m.SetVertex(back, center)
		if snap.hasUVW {
			back.SetUVW(snap.uvw)
		}
		m.SetNext(in, back)
		m.SetNext(back, he)
		m.SetFace(in, sub)
		m.SetFace(back, sub)

		seconds = append(seconds, second)
		toCenter = append(toCenter, in)
		fromCenter = append(fromCenter, back)

		he = after
		if he == start {
			break
		}
	}

	m.SetVertexHalfedge(center, fromCenter[0])
	// close the quads only now, the walk above follows the old links
	for i, second := range seconds {
		m.SetNext(second, toCenter[i])
	}
	return nil
}
