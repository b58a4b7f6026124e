package layout

// resolveCollision returns the free x closest to want in generation g.
//
// The search alternates between want+δ and want-δ with δ growing in steps of
// MinSpacing/4. It gives up after 16*(placed+2) steps, which is far more than
// any row of placed persons can block.
func (s *session) resolveCollision(id string, g int, want float64) (float64, error) {
	if s.free(g, want, nil) {
		return want, nil
	}
	step := s.cfg.MinSpacing / 4
	limit := 16 * (len(s.order) + 2)
	for i := 1; i <= limit; i++ {
		d := float64(i) * step
		if s.free(g, want+d, nil) {
			return want + d, nil
		}
		if s.free(g, want-d, nil) {
			return want - d, nil
		}
	}
	return 0, placementFailed(id, "no free slot within %d steps of x=%g in generation %d", limit, want, g)
}
