package game

// View is everything a renderer needs after an event. It shares no memory
// with the session.
type View struct {
	Board       [][]Cell
	Active      []Point
	ActiveColor Color
	Ghost       []Point
	Current     Piece
	Next        Piece
	Held        Piece
	HoldUsed    bool
	FastSlide   bool
	Stats       Stats
	Status      Status
	Phase       Phase
}

func (s *Session) View() View {
	v := View{
		Board:     s.board.Rows(),
		Next:      s.next,
		Held:      s.held,
		HoldUsed:  s.holdUsed,
		FastSlide: s.fastSlide,
		Stats:     s.stats,
		Status:    s.Status(),
		Phase:     s.phase,
	}
	if s.phase != PhaseFalling {
		return v
	}
	active, ok := s.ctl.Active()
	if !ok {
		return v
	}
	v.Current = s.current
	v.Active = append([]Point(nil), active.Cells[:]...)
	v.ActiveColor = active.Color
	ghost := s.ctl.Ghost()
	v.Ghost = append([]Point(nil), ghost[:]...)
	return v
}
