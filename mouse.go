package vtio

// Mouse button-code decoding.
//
// Bit layout of the button code carried by both X10 and SGR reports:
// bits 2-4 (value 4,8,16) are Shift/Alt/Ctrl modifiers, bit 5 (32) is the
// "this is a drag, not a click" flag, bit 6 (64) is the scroll flag (with
// the low two bits then selecting up/down/left/right instead of a
// button), and the low two bits otherwise select Left/Middle/Right.

func modifiersFromButtonCode(code int) Modifiers {
	var m Modifiers
	if code&4 != 0 {
		m |= ModShift
	}
	if code&8 != 0 {
		m |= ModAlt
	}
	if code&16 != 0 {
		m |= ModCtrl
	}
	return m
}

// mouseFromButtonCode decodes the kind+button pair for a mouse report.
// isRelease distinguishes SGR's 'M' (press/drag/move) from 'm' (release);
// X10 reports releases via a dedicated low-bits value (3) instead, which
// the (base &^ 32) == 3 case below turns into MouseUp.
func mouseFromButtonCode(code int, isRelease bool) (MouseEventKind, MouseButton, int) {
	base := code &^ 0x1C // clear the modifier bits, keep button/drag/scroll bits
	isDrag := code&32 != 0

	switch {
	case base >= 64:
		switch base & 0x03 {
		case 0:
			return MouseScrollUp, MouseNone, 0
		case 1:
			return MouseScrollDown, MouseNone, 0
		case 2:
			return MouseScrollLeft, MouseNone, 0
		default:
			return MouseScrollRight, MouseNone, 0
		}
	case (base &^ 32) == 3:
		// Unknown-button release/move: X10 has no separate "moved, no
		// button" code, it reuses button value 3.
		if isDrag {
			return MouseMoved, MouseNone, 0
		}
		return MouseUp, MouseLeft, 0
	default:
		btn := base & 0x03
		button := MouseButton(btn + 1) // MouseLeft=1,Middle=2,Right=3 line up with btn 0,1,2
		switch {
		case isRelease:
			return MouseUp, button, btn
		case isDrag:
			return MouseDrag, button, btn
		default:
			return MouseDown, button, btn
		}
	}
}

// decodeSGRMouse decodes "CSI < b ; x ; y M" (press/drag/move) or
// "CSI < b ; x ; y m" (release). pixels selects SGR-Pixel coordinate
// semantics (DEC private mode 1016) versus plain cell coordinates.
func decodeSGRMouse(buttonCode, x, y int, isRelease, pixels bool) (Mouse, bool) {
	kind, button, raw := mouseFromButtonCode(buttonCode, isRelease)
	m := Mouse{
		Kind:       kind,
		Button:     button,
		ButtonCode: raw,
		Modifiers:  modifiersFromButtonCode(buttonCode),
	}
	if pixels {
		m.HasPixels = true
		m.PixelX, m.PixelY = x, y
		m.Column, m.Row = 1, 1
	} else {
		m.Column, m.Row = x, y
	}
	return m, true
}

// decodeX10MouseBytes decodes the legacy "CSI M" + 3 raw bytes format.
// Coordinates are bias-32 and clamped to a minimum of 1, matching the
// original's b2-32/b3-32 with saturating_sub semantics.
func decodeX10MouseBytes(b0, b1, b2 byte) (Mouse, bool) {
	code := int(b0) - 32
	if code < 0 {
		return Mouse{}, false
	}
	col := int(b1) - 32
	if col < 1 {
		col = 1
	}
	row := int(b2) - 32
	if row < 1 {
		row = 1
	}
	kind, button, raw := mouseFromButtonCode(code, false)
	return Mouse{
		Kind:       kind,
		Button:     button,
		ButtonCode: raw,
		Modifiers:  modifiersFromButtonCode(code),
		Column:     col,
		Row:        row,
	}, true
}

// encodeButtonCode is the inverse of mouseFromButtonCode/
// modifiersFromButtonCode, used by the SGR mouse encoder in encode.go.
func encodeButtonCode(m Mouse) int {
	var code int
	switch m.Kind {
	case MouseScrollUp:
		code = 64
	case MouseScrollDown:
		code = 65
	case MouseScrollLeft:
		code = 66
	case MouseScrollRight:
		code = 67
	case MouseMoved:
		code = 3 | 32
	default:
		if m.Button >= MouseLeft && m.Button <= MouseRight {
			code = int(m.Button) - 1
		} else {
			code = 0
		}
		if m.Kind == MouseDrag {
			code |= 32
		}
	}
	if m.Modifiers.Has(ModShift) {
		code |= 4
	}
	if m.Modifiers.Has(ModAlt) {
		code |= 8
	}
	if m.Modifiers.Has(ModCtrl) {
		code |= 16
	}
	return code
}
