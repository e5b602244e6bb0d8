package meshgen

// Handle identifies an object created by an Instancer.
type Handle any

// Instancer materializes segments and placements. Clear destroys everything
// created since the previous Clear.
type Instancer interface {
	Clear()
	CreateSegment(seg Segment) error
	CreateMesh(p Placement) (Handle, error)
}

// Recorder is an Instancer that keeps what it is given in memory.
type Recorder struct {
	Segments   []Segment
	Placements []Placement
	Clears     int
}

// Clear drops all recorded segments and placements.
func (r *Recorder) Clear() {
	r.Segments = nil
	r.Placements = nil
	r.Clears++
}

// CreateSegment records seg.
func (r *Recorder) CreateSegment(seg Segment) error {
	r.Segments = append(r.Segments, seg)
	return nil
}

// CreateMesh records p. The handle is its index in Placements.
func (r *Recorder) CreateMesh(p Placement) (Handle, error) {
	r.Placements = append(r.Placements, p)
	return len(r.Placements) - 1, nil
}
