package vtio

import (
	"strconv"
)

// Command encoders: the inverse direction of decode.go, producing the
// bytes an application would write to the terminal to request a
// feature or, in tests, to round-trip a decoded Event back to wire
// form. Every encoder writes into a caller-supplied buffer and returns
// ErrBufferOverflow rather than allocating, mirroring the tokenizer's
// own bounded-buffer discipline. EncodeKey chooses between legacy and
// CSI-u form by KeyboardDisambiguateEscapeCodes; the decoder accepts
// either form whatever flags are set.

func appendChecked(dst []byte, b []byte) (int, error) {
	if len(b) > len(dst) {
		logE.Printf("encode buffer too small: need %d bytes, have %d", len(b), len(dst))
		return 0, ErrBufferOverflow
	}
	copy(dst, b)
	return len(b), nil
}

// EncodeKey writes the bytes a terminal-emulator-facing application would
// send for k. When flags has KeyboardDisambiguateEscapeCodes unset, plain
// unmodified cursor/editing keys and printable characters are encoded in
// their legacy VT form; everything else (and every key once
// DisambiguateEscapeCodes is active) uses Kitty CSI-u.
func EncodeKey(dst []byte, k Key, flags KeyboardFlags) (int, error) {
	if flags&KeyboardDisambiguateEscapeCodes == 0 && k.Kind == KeyPress {
		if b, ok := encodeLegacyKey(k); ok {
			return appendChecked(dst, b)
		}
	}
	return appendChecked(dst, encodeCsiUKey(k, flags))
}

func encodeLegacyKey(k Key) ([]byte, bool) {
	if k.Modifiers&^ModShift != 0 || (k.Modifiers != 0 && k.Code.Kind != KeyChar) {
		return nil, false // only a printable character carries bare Shift without CSI-u's param
	}
	switch k.Code.Kind {
	case KeyChar:
		if k.Modifiers.Has(ModShift) && k.Code.Char >= 'a' && k.Code.Char <= 'z' {
			return []byte(string([]rune{k.Code.Char - 'a' + 'A'})), true
		}
		return []byte(string(k.Code.Char)), true
	case KeyEnter:
		return []byte{'\r'}, true
	case KeyLineFeed:
		return []byte{'\n'}, true
	case KeyTab:
		return []byte{'\t'}, true
	case KeyBackspace:
		return []byte{0x7F}, true
	case KeyEsc:
		return []byte{cESC}, true
	case KeyUp:
		return []byte("\x1b[A"), true
	case KeyDown:
		return []byte("\x1b[B"), true
	case KeyRight:
		return []byte("\x1b[C"), true
	case KeyLeft:
		return []byte("\x1b[D"), true
	case KeyEnd:
		return []byte("\x1b[F"), true
	case KeyHome:
		return []byte("\x1b[H"), true
	case KeyBackTab:
		return []byte("\x1b[Z"), true
	default:
		return nil, false
	}
}

// encodeCsiUKey builds "ESC [ keycode [; modifiers [: event_type]] u",
// omitting the modifier/event-type sub-parameters when they are at their
// default value, matching what real Kitty-protocol terminals emit.
func encodeCsiUKey(k Key, flags KeyboardFlags) []byte {
	code := kittyEncodeKeyCode(k.Code)
	out := append([]byte("\x1b["), []byte(strconv.Itoa(code))...)

	modValue := EncodeModifierParam(k.Modifiers)
	eventValue := 1
	if flags&KeyboardReportEventTypes != 0 {
		switch k.Kind {
		case KeyRepeat:
			eventValue = 2
		case KeyRelease:
			eventValue = 3
		}
	}
	if modValue != 0 || eventValue != 1 {
		out = append(out, ';')
		out = append(out, []byte(strconv.Itoa(modValue))...)
		if eventValue != 1 {
			out = append(out, ':')
			out = append(out, []byte(strconv.Itoa(eventValue))...)
		}
	}
	if flags&KeyboardReportAssociatedText != 0 && k.Text != "" {
		// Text is the third position; an empty modifiers position stands
		// in when none was written above.
		if modValue == 0 && eventValue == 1 {
			out = append(out, ';')
		}
		out = append(out, ';')
		for i, r := range []rune(k.Text) {
			if i > 0 {
				out = append(out, ':')
			}
			out = append(out, []byte(strconv.Itoa(int(r)))...)
		}
	}
	out = append(out, 'u')
	return out
}

func kittyEncodeKeyCode(c KeyCode) int {
	switch c.Kind {
	case KeyChar:
		return int(c.Char)
	case KeyFunction, KeyCapsLockKey, KeyScrollLock, KeyNumLockKey, KeyPrintScreen, KeyPause, KeyMenu:
		for code, kc := range kittyFunctionKey {
			if kc == c {
				return code
			}
		}
	case KeyMedia:
		for code, m := range kittyMediaKey {
			if m == c.Media {
				return code
			}
		}
	case KeyModifierKey:
		for code, mk := range kittyModifierKey {
			if mk.Kind == KeyModifierKey && mk.Modifier == c.Modifier && mk.ModifierSide == c.ModifierSide {
				return code
			}
		}
	case KeyTab, KeyEnter, KeyEsc, KeyBackspace:
		for code, kc := range kittyLegacyKey {
			if kc == c {
				return code
			}
		}
	default:
		for code, kc := range kittyKeypadKey {
			if kc == c {
				return code
			}
		}
	}
	return 0
}

// EncodeMouse writes "CSI < b ; x ; y M" / "... m". pixels
// selects SGR-Pixel coordinates (DEC mode 1016); the caller's m.PixelX/Y
// must already be populated in that case.
func EncodeMouse(dst []byte, m Mouse, pixels bool) (int, error) {
	final := byte('M')
	if m.Kind == MouseUp {
		final = 'm'
	}
	x, y := m.Column, m.Row
	if pixels {
		x, y = m.PixelX, m.PixelY
	}
	code := encodeButtonCode(m)
	raw := append([]byte("\x1b[<"), []byte(encodeParams(ParamList{{code}, {x}, {y}}))...)
	raw = append(raw, final)
	return appendChecked(dst, raw)
}

// EncodeFocus writes "CSI I" (gained) or "CSI O" (lost).
func EncodeFocus(dst []byte, f Focus) (int, error) {
	if f.Gained {
		return appendChecked(dst, []byte("\x1b[I"))
	}
	return appendChecked(dst, []byte("\x1b[O"))
}

// EncodePaste wraps data in the bracketed-paste start/end markers. It
// does not escape data in any way: a paste's content is
// opaque bytes, and a caller pasting content that itself contains the
// literal terminator has no way to disambiguate it either, on the wire
// or off it.
func EncodePaste(dst []byte, data []byte) (int, error) {
	total := len(pasteStart) + len(data) + len(pasteTerminator)
	if total > len(dst) {
		logE.Printf("encode buffer too small: need %d bytes, have %d", total, len(dst))
		return 0, ErrBufferOverflow
	}
	n := copy(dst, pasteStart)
	n += copy(dst[n:], data)
	n += copy(dst[n:], pasteTerminator)
	return n, nil
}

var pasteStart = []byte("\x1b[200~")

// EncodePushKeyboardFlags writes "CSI > flags u".
func EncodePushKeyboardFlags(dst []byte, flags KeyboardFlags) (int, error) {
	raw := append([]byte("\x1b[>"), []byte(strconv.Itoa(int(flags)))...)
	raw = append(raw, 'u')
	return appendChecked(dst, raw)
}

// EncodePopKeyboardFlags writes "CSI < u".
func EncodePopKeyboardFlags(dst []byte) (int, error) {
	return appendChecked(dst, []byte("\x1b[<u"))
}

// EncodeQueryKeyboardFlags writes "CSI ? u".
func EncodeQueryKeyboardFlags(dst []byte) (int, error) {
	return appendChecked(dst, []byte("\x1b[?u"))
}

// DEC private mode numbers an application toggles to request the event
// streams this package decodes.
const (
	ModeX10Mouse       = 9
	ModeVT200Mouse     = 1000
	ModeBtnEventMouse  = 1002
	ModeAnyEventMouse  = 1003
	ModeSGRMouse       = 1006
	ModeSGRPixelMouse  = 1016
	ModeFocusTracking  = 1004
	ModeBracketedPaste = 2004
)

// EncodeSetMode writes "CSI ? mode h" (enable) or "CSI ? mode l"
// (disable) — DECSET/DECRST for any of the private mode numbers above.
func EncodeSetMode(dst []byte, mode int, enable bool) (int, error) {
	final := byte('h')
	if !enable {
		final = 'l'
	}
	raw := append([]byte("\x1b[?"), []byte(strconv.Itoa(mode))...)
	raw = append(raw, final)
	return appendChecked(dst, raw)
}

// --- Cursor movement ------------------------------------------------------
//
// Encoders for the cursor/screen/window command catalog: absolute and
// relative cursor motion, visibility and shape, screen/scrollback
// clearing, the alternate screen and line-wrap toggles, window title and
// size, and the query family (DSR/DA/DECRQM/DECRQSS). Every function
// writes one self-contained control sequence into dst, the same
// convention as EncodeKey/EncodeMouse above.

// EncodeMoveTo writes "CSI row;col H" (CUP), 1-based.
func EncodeMoveTo(dst []byte, col, row int) (int, error) {
	raw := append([]byte("\x1b["), []byte(encodeParams(ParamList{{row}, {col}}))...)
	raw = append(raw, 'H')
	return appendChecked(dst, raw)
}

func encodeCursorRelative(dst []byte, n int, final byte) (int, error) {
	raw := append([]byte("\x1b["), []byte(strconv.Itoa(n))...)
	raw = append(raw, final)
	return appendChecked(dst, raw)
}

// EncodeMoveUp writes "CSI n A" (CUU).
func EncodeMoveUp(dst []byte, n int) (int, error) { return encodeCursorRelative(dst, n, 'A') }

// EncodeMoveDown writes "CSI n B" (CUD).
func EncodeMoveDown(dst []byte, n int) (int, error) { return encodeCursorRelative(dst, n, 'B') }

// EncodeMoveRight writes "CSI n C" (CUF).
func EncodeMoveRight(dst []byte, n int) (int, error) { return encodeCursorRelative(dst, n, 'C') }

// EncodeMoveLeft writes "CSI n D" (CUB).
func EncodeMoveLeft(dst []byte, n int) (int, error) { return encodeCursorRelative(dst, n, 'D') }

// EncodeMoveToNextLine writes "CSI n E" (CNL): down n rows, column 1.
func EncodeMoveToNextLine(dst []byte, n int) (int, error) { return encodeCursorRelative(dst, n, 'E') }

// EncodeMoveToPreviousLine writes "CSI n F" (CPL): up n rows, column 1.
func EncodeMoveToPreviousLine(dst []byte, n int) (int, error) {
	return encodeCursorRelative(dst, n, 'F')
}

// EncodeMoveToColumn writes "CSI col G" (CHA), 1-based.
func EncodeMoveToColumn(dst []byte, col int) (int, error) { return encodeCursorRelative(dst, col, 'G') }

// EncodeShowCursor writes "CSI ?25h"; EncodeHideCursor writes "CSI ?25l".
func EncodeShowCursor(dst []byte) (int, error) { return EncodeSetMode(dst, 25, true) }
func EncodeHideCursor(dst []byte) (int, error) { return EncodeSetMode(dst, 25, false) }

// EncodeCursorBlinking writes "CSI ?12h"/"CSI ?12l" (ATT610 cursor-blink
// private mode).
func EncodeCursorBlinking(dst []byte, enable bool) (int, error) {
	return EncodeSetMode(dst, 12, enable)
}

// CursorShape selects the DECSCUSR cursor style.
type CursorShape uint8

const (
	CursorShapeDefault CursorShape = iota
	CursorShapeBlinkingBlock
	CursorShapeSteadyBlock
	CursorShapeBlinkingUnderline
	CursorShapeSteadyUnderline
	CursorShapeBlinkingBar
	CursorShapeSteadyBar
)

// EncodeSetCursorShape writes "CSI Ps SP q" (DECSCUSR).
func EncodeSetCursorShape(dst []byte, shape CursorShape) (int, error) {
	raw := append([]byte("\x1b["), []byte(strconv.Itoa(int(shape)))...)
	raw = append(raw, ' ', 'q')
	return appendChecked(dst, raw)
}

// EncodeSaveCursorPosition writes the bare "ESC 7" (DECSC).
func EncodeSaveCursorPosition(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b7")) }

// EncodeRestoreCursorPosition writes the bare "ESC 8" (DECRC).
func EncodeRestoreCursorPosition(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b8")) }

// --- Screen ----------------------------------------------------------------

// EncodeScrollUp writes "CSI n S" (SU).
func EncodeScrollUp(dst []byte, n int) (int, error) { return encodeCursorRelative(dst, n, 'S') }

// EncodeScrollDown writes "CSI n T" (SD). Final byte 'T' is shared on the
// wire with EncodeTrackMouse's 5-parameter form below; real terminals
// disambiguate by parameter count, not by a distinct final byte.
func EncodeScrollDown(dst []byte, n int) (int, error) { return encodeCursorRelative(dst, n, 'T') }

// EncodeLineWrap writes "CSI ?7h"/"CSI ?7l" (DECAWM).
func EncodeLineWrap(dst []byte, enable bool) (int, error) { return EncodeSetMode(dst, 7, enable) }

// EncodeAlternateScreen writes "CSI ?1049h"/"CSI ?1049l".
func EncodeAlternateScreen(dst []byte, enable bool) (int, error) {
	return EncodeSetMode(dst, 1049, enable)
}

// --- Clearing ----------------------------------------------------------

// EncodeClearAll writes "CSI 2J" (ED, whole screen).
func EncodeClearAll(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[2J")) }

// EncodeClearFromCursorDown writes "CSI J" (ED 0).
func EncodeClearFromCursorDown(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[J")) }

// EncodeClearFromCursorUp writes "CSI 1J" (ED 1).
func EncodeClearFromCursorUp(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[1J")) }

// EncodeClearScrollback writes "CSI 3J" (the xterm scrollback-clear
// extension).
func EncodeClearScrollback(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[3J")) }

// EncodeClearLine writes "CSI 2K" (EL, whole line).
func EncodeClearLine(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[2K")) }

// EncodeClearUntilNewLine writes "CSI K" (EL 0).
func EncodeClearUntilNewLine(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[K")) }

// --- Modes ---------------------------------------------------------------

// EncodeBracketedPasteMode writes "CSI ?2004h"/"CSI ?2004l".
func EncodeBracketedPasteMode(dst []byte, enable bool) (int, error) {
	return EncodeSetMode(dst, ModeBracketedPaste, enable)
}

// EncodeFocusReportingMode writes "CSI ?1004h"/"CSI ?1004l".
func EncodeFocusReportingMode(dst []byte, enable bool) (int, error) {
	return EncodeSetMode(dst, ModeFocusTracking, enable)
}

// EncodeApplicationKeypad writes the bare "ESC ="/"ESC >" (DECKPAM/DECKPNM).
func EncodeApplicationKeypad(dst []byte, enable bool) (int, error) {
	if enable {
		return appendChecked(dst, []byte("\x1b="))
	}
	return appendChecked(dst, []byte("\x1b>"))
}

// EncodeSynchronizedUpdate writes "CSI ?2026h"/"CSI ?2026l" (the
// begin/end-synchronized-update private mode).
func EncodeSynchronizedUpdate(dst []byte, begin bool) (int, error) {
	return EncodeSetMode(dst, 2026, begin)
}

// --- Window ----------------------------------------------------------------

// EncodeSetTitle writes "OSC 0 ; title BEL".
func EncodeSetTitle(dst []byte, title string) (int, error) {
	raw := append([]byte("\x1b]0;"), []byte(title)...)
	raw = append(raw, 0x07)
	return appendChecked(dst, raw)
}

// EncodeSetWindowSize writes "CSI 8;rows;cols t" (the xterm window-ops
// resize command).
func EncodeSetWindowSize(dst []byte, rows, cols int) (int, error) {
	raw := append([]byte("\x1b[8;"), []byte(encodeParams(ParamList{{rows}, {cols}}))...)
	raw = append(raw, 't')
	return appendChecked(dst, raw)
}

// --- Queries ---------------------------------------------------------------

// EncodeRequestCursorPosition writes "CSI 6n" (DSR, cursor position).
func EncodeRequestCursorPosition(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[6n")) }

// EncodeRequestTerminalSize writes "CSI 18t" (xterm window-ops, report the
// text-area size in characters).
func EncodeRequestTerminalSize(dst []byte) (int, error) { return appendChecked(dst, []byte("\x1b[18t")) }

// EncodeRequestPrimaryDeviceAttributes writes "CSI c" (DA1).
func EncodeRequestPrimaryDeviceAttributes(dst []byte) (int, error) {
	return appendChecked(dst, []byte("\x1b[c"))
}

// EncodeRequestSecondaryDeviceAttributes writes "CSI > c" (DA2).
func EncodeRequestSecondaryDeviceAttributes(dst []byte) (int, error) {
	return appendChecked(dst, []byte("\x1b[>c"))
}

// EncodeRequestTertiaryDeviceAttributes writes "CSI = c" (DA3).
func EncodeRequestTertiaryDeviceAttributes(dst []byte) (int, error) {
	return appendChecked(dst, []byte("\x1b[=c"))
}

// EncodeRequestMode writes "CSI [?]mode $ p" (DECRQM), querying a DEC
// private mode when private is true, an ANSI mode otherwise.
func EncodeRequestMode(dst []byte, mode int, private bool) (int, error) {
	raw := []byte("\x1b[")
	if private {
		raw = append(raw, '?')
	}
	raw = append(raw, []byte(strconv.Itoa(mode))...)
	raw = append(raw, '$', 'p')
	return appendChecked(dst, raw)
}

// EncodeRequestDefaultForeground writes "OSC 10 ; ? BEL".
func EncodeRequestDefaultForeground(dst []byte) (int, error) {
	return appendChecked(dst, []byte("\x1b]10;?\x07"))
}

// EncodeRequestDefaultBackground writes "OSC 11 ; ? BEL".
func EncodeRequestDefaultBackground(dst []byte) (int, error) {
	return appendChecked(dst, []byte("\x1b]11;?\x07"))
}

// encodeDECRQSS writes "DCS $ q Pt ST", the generic request-status-string
// form; mnemonic identifies which setting is being queried.
func encodeDECRQSS(dst []byte, mnemonic string) (int, error) {
	raw := append([]byte("\x1bP$q"), []byte(mnemonic)...)
	raw = append(raw, '\x1b', '\\')
	return appendChecked(dst, raw)
}

// EncodeRequestCursorShape writes a DECRQSS query for DECSCUSR (" q").
func EncodeRequestCursorShape(dst []byte) (int, error) { return encodeDECRQSS(dst, " q") }

// EncodeRequestTextAttributes writes a DECRQSS query for SGR ("m").
func EncodeRequestTextAttributes(dst []byte) (int, error) { return encodeDECRQSS(dst, "m") }

// EncodeRequestScrollingRegion writes a DECRQSS query for DECSTBM ("r").
func EncodeRequestScrollingRegion(dst []byte) (int, error) { return encodeDECRQSS(dst, "r") }

// EncodeRequestScrollingColumns writes a DECRQSS query for DECSCPP ("$|").
func EncodeRequestScrollingColumns(dst []byte) (int, error) { return encodeDECRQSS(dst, "$|") }

// EncodeTrackMouse writes "CSI cmd;start_column;start_row;first_row;last_row T":
// cmd==0 aborts highlight tracking, cmd!=0 starts a tracked selection at
// (start_column, start_row) constrained to rows [first_row, last_row).
// An AnsiOutput-only command in the family this package otherwise decodes
// events for — the terminal never sends this back, so there is no
// matching descriptor in descriptors.go.
func EncodeTrackMouse(dst []byte, cmd, startColumn, startRow, firstRow, lastRow int) (int, error) {
	raw := append([]byte("\x1b["), []byte(encodeParams(ParamList{{cmd}, {startColumn}, {startRow}, {firstRow}, {lastRow}}))...)
	raw = append(raw, 'T')
	return appendChecked(dst, raw)
}

// EncodeLinuxMousePointerStyle writes "CSI attr_xor;char_xor m", the Linux
// console private escape that XORs the given attribute/character masks
// into the mouse pointer's screen cell. No private marker, and (like
// EncodeTrackMouse) AnsiOutput-only in the source family: it is never
// something a terminal reports back, so it has no descriptors.go
// descriptor either.
func EncodeLinuxMousePointerStyle(dst []byte, attrXor, charXor byte) (int, error) {
	raw := append([]byte("\x1b["), []byte(encodeParams(ParamList{{int(attrXor)}, {int(charXor)}}))...)
	raw = append(raw, 'm')
	return appendChecked(dst, raw)
}
