package app

// mark is one heading sample as seen against the target at that moment.
type mark struct {
	distance int // circular distance to the bearing, 0..180
	inside   bool
}

// track keeps the most recent heading samples relative to the bearing, oldest
// first. Samples without a heading are not recorded.
type track struct {
	marks []mark
	limit int
}

func newTrack(limit int) *track {
	if limit < 1 {
		limit = 1
	}
	return &track{marks: make([]mark, 0, limit), limit: limit}
}

// record appends a sample, evicting the oldest once the track is full.
func (t *track) record(distance, threshold int) {
	m := mark{distance: distance, inside: distance <= threshold}
	if len(t.marks) == t.limit {
		copy(t.marks, t.marks[1:])
		t.marks[len(t.marks)-1] = m
		return
	}
	t.marks = append(t.marks, m)
}

// distances returns the recorded distances in degrees, oldest first.
func (t *track) distances() []int {
	if len(t.marks) == 0 {
		return nil
	}
	out := make([]int, len(t.marks))
	for i, m := range t.marks {
		out[i] = m.distance
	}
	return out
}

// last returns the most recent distance.
func (t *track) last() (int, bool) {
	if len(t.marks) == 0 {
		return 0, false
	}
	return t.marks[len(t.marks)-1].distance, true
}

// streak counts how many of the latest samples in a row were inside the
// alert window.
func (t *track) streak() int {
	n := 0
	for i := len(t.marks) - 1; i >= 0 && t.marks[i].inside; i-- {
		n++
	}
	return n
}
