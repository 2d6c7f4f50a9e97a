package activity

// Stats counts the clicks delivered to one element.
type Stats struct {
	// Element is the element name.
	Element string
	// Group is the name of the group whose guard protects the element.
	Group string
	// Clicks is the number of clicks delivered to the element.
	Clicks int
	// Accepted is the number of clicks that reached the element's own listener.
	Accepted int
}

// Ignored returns the number of clicks suppressed by the guard.
func (s *Stats) Ignored() int {
	return s.Clicks - s.Accepted
}

// Clone returns a copy of the stats to avoid leaking internal references.
func (s *Stats) Clone() *Stats {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}
