package chart

// Segment is a run of bar cells painted in one color, offset from the
// interior origin.
type Segment struct {
	Start int
	Len   int
	FG    Color
	BG    Color
}

// End returns the first cell after the segment.
func (s Segment) End() int {
	return s.Start + s.Len
}

// Composite splits a bar of barLen cells into colored segments.
//
// Each breakpoint claims the cells from the end of the previous band up to
// its own threshold. Painting stops at the bar end or the interior edge, so
// the segments always cover exactly min(barLen, InteriorWidth) cells from
// zero. Cells past the last threshold keep the last band's colors. Without
// a gradient the whole bar is one segment in fg/bg.
func Composite(barLen int, l Layout, gradient []Breakpoint, fg, bg Color) []Segment {
	limit := barLen
	if limit > l.InteriorWidth {
		limit = l.InteriorWidth
	}
	if limit <= 0 {
		return nil
	}

	if len(gradient) == 0 {
		return []Segment{{Start: 0, Len: limit, FG: fg, BG: bg}}
	}

	var segs []Segment
	last, painted := 0, 0
	for _, bp := range gradient {
		value := l.Cells(bp.Threshold)
		if value > last {
			size := value
			if barLen < size {
				size = barLen
			}
			if size > l.InteriorWidth {
				size = l.InteriorWidth
			}
			if size > last {
				segs = append(segs, Segment{
					Start: last,
					Len:   size - last,
					FG:    bp.FG.Or(fg),
					BG:    bp.BG.Or(bg),
				})
				painted = size
			}
		}

		if barLen < value || painted >= l.InteriorWidth {
			return segs
		}
		if value > last {
			last = value
		}
	}

	if painted < limit {
		top := gradient[len(gradient)-1]
		segs = append(segs, Segment{
			Start: painted,
			Len:   limit - painted,
			FG:    top.FG.Or(fg),
			BG:    top.BG.Or(bg),
		})
	}
	return segs
}
