package layout

import "math"

// expandCrowded widens every generation whose tightest gap is below
// MinSpacing. Such a generation is scaled once about its centroid so that
// the tightest gap becomes MinSpacing*ExpansionFactor. Order is preserved.
//
// Two persons sharing a position cannot be separated by scaling and are
// reported as PLACEMENT_FAILED.
func (s *session) expandCrowded() error {
	for _, g := range s.generations() {
		row := s.row(g)
		if len(row) < 2 {
			continue
		}
		gap, at := math.Inf(1), ""
		for i := 1; i < len(row); i++ {
			if d := s.x(row[i]) - s.x(row[i-1]); d < gap {
				gap, at = d, row[i]
			}
		}
		if gap <= eps {
			return placementFailed(at, "shares position x=%g with another person in generation %d", s.x(at), g)
		}
		if gap >= s.cfg.MinSpacing-eps {
			continue
		}

		factor := s.cfg.MinSpacing * s.cfg.ExpansionFactor / gap
		c := s.centroid(row)
		for _, id := range row {
			s.slots[id].x = c + (s.x(id)-c)*factor
		}
		s.logger.Debug("expanded generation", "generation", g, "gap", gap, "factor", factor)
	}
	return nil
}
