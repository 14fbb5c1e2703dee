package render

// Surface is a 2D addressable color buffer over a caller-owned pixel
// slice. Stride is the row pitch of the backing slice and may exceed W,
// which lets a Surface address a sub-region of a larger frame (the minimap
// inset). Pixels are packed 0xRRGGBB.
type Surface struct {
	Pix    []uint32
	W, H   int
	Stride int
}

// NewSurface wraps pix as a w by h surface with the given row stride.
// The slice must hold at least stride*h pixels.
func NewSurface(pix []uint32, w, h, stride int) *Surface {
	return &Surface{Pix: pix, W: w, H: h, Stride: stride}
}

// Sub returns a w by h view onto the top-left corner of s, sharing the
// backing pixels and stride.
func (s *Surface) Sub(w, h int) *Surface {
	if w > s.W {
		w = s.W
	}
	if h > s.H {
		h = s.H
	}
	return &Surface{Pix: s.Pix, W: w, H: h, Stride: s.Stride}
}

// Fill paints every pixel of the surface.
func (s *Surface) Fill(color uint32) {
	for y := 0; y < s.H; y++ {
		row := s.Pix[y*s.Stride : y*s.Stride+s.W]
		for x := range row {
			row[x] = color
		}
	}
}

// DrawBar fills the axis-aligned rectangle [x0,x1) x [y0,y1), clamped to
// the surface bounds. Coordinates may be given in any order.
func (s *Surface) DrawBar(x0, y0, x1, y1 int, color uint32) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, s.W)
	y1 = min(y1, s.H)

	for y := y0; y < y1; y++ {
		row := s.Pix[y*s.Stride+x0 : y*s.Stride+x1]
		for x := range row {
			row[x] = color
		}
	}
}

// Cohen-Sutherland outcodes.
const (
	clipInside = 0
	clipLeft   = 1 << iota
	clipRight
	clipBottom
	clipTop
)

func (s *Surface) outcode(x, y int) int {
	code := clipInside
	switch {
	case x < 0:
		code |= clipLeft
	case x >= s.W:
		code |= clipRight
	}
	switch {
	case y < 0:
		code |= clipTop
	case y >= s.H:
		code |= clipBottom
	}
	return code
}

// DrawLine draws a line segment from (x0,y0) to (x1,y1), Cohen-Sutherland
// clipped to the surface and rasterized with Bresenham's algorithm.
func (s *Surface) DrawLine(x0, y0, x1, y1 int, color uint32) {
	// Clip against the surface rectangle first so the Bresenham walk
	// below never has to bounds-check.
	code0 := s.outcode(x0, y0)
	code1 := s.outcode(x1, y1)

	for {
		if code0|code1 == 0 {
			break
		}
		if code0&code1 != 0 {
			// Both endpoints share an outside half-plane.
			return
		}

		code := code0
		if code == clipInside {
			code = code1
		}

		var x, y int
		switch {
		case code&clipTop != 0:
			x = x0 + (x1-x0)*(0-y0)/(y1-y0)
			y = 0
		case code&clipBottom != 0:
			x = x0 + (x1-x0)*(s.H-1-y0)/(y1-y0)
			y = s.H - 1
		case code&clipLeft != 0:
			y = y0 + (y1-y0)*(0-x0)/(x1-x0)
			x = 0
		default: // clipRight
			y = y0 + (y1-y0)*(s.W-1-x0)/(x1-x0)
			x = s.W - 1
		}

		if code == code0 {
			x0, y0 = x, y
			code0 = s.outcode(x0, y0)
		} else {
			x1, y1 = x, y
			code1 = s.outcode(x1, y1)
		}
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		s.Pix[y0*s.Stride+x0] = color
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
