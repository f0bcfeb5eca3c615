package vtio

import "testing"

func TestEncodeDecodeKeyRoundTripCsiU(t *testing.T) {
	k := Key{Code: CharCode('a'), Modifiers: ModCtrl | ModAlt, Kind: KeyPress}
	buf := make([]byte, 32)
	n, err := EncodeKey(buf, k, KeyboardDisambiguateEscapeCodes)
	if err != nil {
		t.Fatalf("EncodeKey error: %v", err)
	}
	events := DecodeBuffer(buf[:n])
	if len(events) != 1 || events[0].Kind != EventKey {
		t.Fatalf("events = %+v", events)
	}
	got := events[0].Key
	if got.Code.Char != 'a' || got.Modifiers != k.Modifiers {
		t.Fatalf("round-trip key = %+v, want %+v", got, k)
	}
}

func TestEncodeDecodeLegacyArrowRoundTrip(t *testing.T) {
	k := Key{Code: simpleCode(KeyUp), Kind: KeyPress}
	buf := make([]byte, 16)
	n, err := EncodeKey(buf, k, 0)
	if err != nil {
		t.Fatalf("EncodeKey error: %v", err)
	}
	events := DecodeBuffer(buf[:n])
	if len(events) != 1 || events[0].Key.Code.Kind != KeyUp {
		t.Fatalf("events = %+v", events)
	}
}

func TestEncodeKeyBufferOverflow(t *testing.T) {
	k := Key{Code: CharCode('a'), Kind: KeyPress}
	buf := make([]byte, 1)
	if _, err := EncodeKey(buf, k, KeyboardDisambiguateEscapeCodes); err != ErrBufferOverflow {
		t.Fatalf("err = %v, want ErrBufferOverflow", err)
	}
}

func TestEncodeDecodeMouseRoundTrip(t *testing.T) {
	m := Mouse{Kind: MouseDown, Button: MouseLeft, Column: 10, Row: 20, Modifiers: ModShift}
	buf := make([]byte, 32)
	n, err := EncodeMouse(buf, m, false)
	if err != nil {
		t.Fatalf("EncodeMouse error: %v", err)
	}
	events := DecodeBuffer(buf[:n])
	if len(events) != 1 || events[0].Kind != EventMouse {
		t.Fatalf("events = %+v", events)
	}
	got := events[0].Mouse
	if got.Button != m.Button || got.Column != m.Column || got.Row != m.Row || !got.Modifiers.Has(ModShift) {
		t.Fatalf("round-trip mouse = %+v, want %+v", got, m)
	}
}

func TestEncodeDecodeFocusRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	n, err := EncodeFocus(buf, Focus{Gained: true})
	if err != nil {
		t.Fatalf("EncodeFocus error: %v", err)
	}
	events := DecodeBuffer(buf[:n])
	if len(events) != 1 || !events[0].Focus.Gained {
		t.Fatalf("events = %+v", events)
	}
}

func TestEncodeDecodePasteRoundTrip(t *testing.T) {
	data := []byte("pasted text")
	buf := make([]byte, 64)
	n, err := EncodePaste(buf, data)
	if err != nil {
		t.Fatalf("EncodePaste error: %v", err)
	}
	events := DecodeBuffer(buf[:n])
	if len(events) != 1 || events[0].Kind != EventPaste || string(events[0].Paste.Data) != string(data) {
		t.Fatalf("events = %+v", events)
	}
}

func TestEncodePushKeyboardFlagsDecodesAsUnknown(t *testing.T) {
	buf := make([]byte, 16)
	flags := KeyboardDisambiguateEscapeCodes | KeyboardReportEventTypes
	n, err := EncodePushKeyboardFlags(buf, flags)
	if err != nil {
		t.Fatalf("EncodePushKeyboardFlags error: %v", err)
	}
	events := DecodeBuffer(buf[:n])
	// Push uses final byte 'u' with private '>', which has no registered
	// descriptor (only the '?' query-response form does) — it decodes as
	// Unknown by design, since CSI > ... u is outbound-only.
	if len(events) != 1 || events[0].Kind != EventUnknown {
		t.Fatalf("events = %+v", events)
	}
}

func TestEncodeMoveTo(t *testing.T) {
	buf := make([]byte, 16)
	n, err := EncodeMoveTo(buf, 80, 24)
	if err != nil {
		t.Fatalf("EncodeMoveTo error: %v", err)
	}
	if got, want := string(buf[:n]), "\x1b[24;80H"; got != want {
		t.Fatalf("EncodeMoveTo = %q, want %q", got, want)
	}
}

func TestEncodeCursorRelativeMotion(t *testing.T) {
	cases := []struct {
		encode func([]byte, int) (int, error)
		want   string
	}{
		{EncodeMoveUp, "\x1b[3A"},
		{EncodeMoveDown, "\x1b[3B"},
		{EncodeMoveRight, "\x1b[3C"},
		{EncodeMoveLeft, "\x1b[3D"},
		{EncodeMoveToNextLine, "\x1b[3E"},
		{EncodeMoveToPreviousLine, "\x1b[3F"},
		{EncodeMoveToColumn, "\x1b[3G"},
	}
	for _, c := range cases {
		buf := make([]byte, 16)
		n, err := c.encode(buf, 3)
		if err != nil {
			t.Fatalf("encode error: %v", err)
		}
		if got := string(buf[:n]); got != c.want {
			t.Fatalf("encode = %q, want %q", got, c.want)
		}
	}
}

func TestEncodeCursorVisibilityAndShape(t *testing.T) {
	buf := make([]byte, 16)

	if n, err := EncodeShowCursor(buf); err != nil || string(buf[:n]) != "\x1b[?25h" {
		t.Fatalf("EncodeShowCursor = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeHideCursor(buf); err != nil || string(buf[:n]) != "\x1b[?25l" {
		t.Fatalf("EncodeHideCursor = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeCursorBlinking(buf, true); err != nil || string(buf[:n]) != "\x1b[?12h" {
		t.Fatalf("EncodeCursorBlinking = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeSetCursorShape(buf, CursorShapeSteadyBar); err != nil || string(buf[:n]) != "\x1b[6 q" {
		t.Fatalf("EncodeSetCursorShape = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeSaveCursorPosition(buf); err != nil || string(buf[:n]) != "\x1b7" {
		t.Fatalf("EncodeSaveCursorPosition = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRestoreCursorPosition(buf); err != nil || string(buf[:n]) != "\x1b8" {
		t.Fatalf("EncodeRestoreCursorPosition = %q, err %v", buf[:n], err)
	}
}

func TestEncodeScreenAndClearing(t *testing.T) {
	buf := make([]byte, 16)

	cases := []struct {
		encode func([]byte) (int, error)
		want   string
	}{
		{EncodeClearAll, "\x1b[2J"},
		{EncodeClearFromCursorDown, "\x1b[J"},
		{EncodeClearFromCursorUp, "\x1b[1J"},
		{EncodeClearScrollback, "\x1b[3J"},
		{EncodeClearLine, "\x1b[2K"},
		{EncodeClearUntilNewLine, "\x1b[K"},
	}
	for _, c := range cases {
		n, err := c.encode(buf)
		if err != nil {
			t.Fatalf("encode error: %v", err)
		}
		if got := string(buf[:n]); got != c.want {
			t.Fatalf("encode = %q, want %q", got, c.want)
		}
	}

	if n, err := EncodeScrollUp(buf, 2); err != nil || string(buf[:n]) != "\x1b[2S" {
		t.Fatalf("EncodeScrollUp = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeScrollDown(buf, 2); err != nil || string(buf[:n]) != "\x1b[2T" {
		t.Fatalf("EncodeScrollDown = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeAlternateScreen(buf, true); err != nil || string(buf[:n]) != "\x1b[?1049h" {
		t.Fatalf("EncodeAlternateScreen = %q, err %v", buf[:n], err)
	}
}

func TestEncodeModesAndWindow(t *testing.T) {
	buf := make([]byte, 32)

	if n, err := EncodeBracketedPasteMode(buf, true); err != nil || string(buf[:n]) != "\x1b[?2004h" {
		t.Fatalf("EncodeBracketedPasteMode = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeFocusReportingMode(buf, false); err != nil || string(buf[:n]) != "\x1b[?1004l" {
		t.Fatalf("EncodeFocusReportingMode = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeApplicationKeypad(buf, true); err != nil || string(buf[:n]) != "\x1b=" {
		t.Fatalf("EncodeApplicationKeypad = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeSynchronizedUpdate(buf, true); err != nil || string(buf[:n]) != "\x1b[?2026h" {
		t.Fatalf("EncodeSynchronizedUpdate = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeSetTitle(buf, "foo"); err != nil || string(buf[:n]) != "\x1b]0;foo\x07" {
		t.Fatalf("EncodeSetTitle = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeSetWindowSize(buf, 24, 80); err != nil || string(buf[:n]) != "\x1b[8;24;80t" {
		t.Fatalf("EncodeSetWindowSize = %q, err %v", buf[:n], err)
	}
}

func TestEncodeQueries(t *testing.T) {
	buf := make([]byte, 32)

	if n, err := EncodeRequestCursorPosition(buf); err != nil || string(buf[:n]) != "\x1b[6n" {
		t.Fatalf("EncodeRequestCursorPosition = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRequestTerminalSize(buf); err != nil || string(buf[:n]) != "\x1b[18t" {
		t.Fatalf("EncodeRequestTerminalSize = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRequestPrimaryDeviceAttributes(buf); err != nil || string(buf[:n]) != "\x1b[c" {
		t.Fatalf("EncodeRequestPrimaryDeviceAttributes = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRequestSecondaryDeviceAttributes(buf); err != nil || string(buf[:n]) != "\x1b[>c" {
		t.Fatalf("EncodeRequestSecondaryDeviceAttributes = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRequestTertiaryDeviceAttributes(buf); err != nil || string(buf[:n]) != "\x1b[=c" {
		t.Fatalf("EncodeRequestTertiaryDeviceAttributes = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRequestMode(buf, 2004, true); err != nil || string(buf[:n]) != "\x1b[?2004$p" {
		t.Fatalf("EncodeRequestMode = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRequestDefaultForeground(buf); err != nil || string(buf[:n]) != "\x1b]10;?\x07" {
		t.Fatalf("EncodeRequestDefaultForeground = %q, err %v", buf[:n], err)
	}
	if n, err := EncodeRequestDefaultBackground(buf); err != nil || string(buf[:n]) != "\x1b]11;?\x07" {
		t.Fatalf("EncodeRequestDefaultBackground = %q, err %v", buf[:n], err)
	}
}

func TestEncodeDECRQSSQueries(t *testing.T) {
	buf := make([]byte, 32)

	cases := []struct {
		encode func([]byte) (int, error)
		want   string
	}{
		{EncodeRequestCursorShape, "\x1bP$q q\x1b\\"},
		{EncodeRequestTextAttributes, "\x1bP$qm\x1b\\"},
		{EncodeRequestScrollingRegion, "\x1bP$qr\x1b\\"},
		{EncodeRequestScrollingColumns, "\x1bP$q$|\x1b\\"},
	}
	for _, c := range cases {
		n, err := c.encode(buf)
		if err != nil {
			t.Fatalf("encode error: %v", err)
		}
		if got := string(buf[:n]); got != c.want {
			t.Fatalf("encode = %q, want %q", got, c.want)
		}
	}
}

func TestEncodeTrackMouse(t *testing.T) {
	buf := make([]byte, 32)
	n, err := EncodeTrackMouse(buf, 1, 5, 10, 1, 24)
	if err != nil {
		t.Fatalf("EncodeTrackMouse error: %v", err)
	}
	if got, want := string(buf[:n]), "\x1b[1;5;10;1;24T"; got != want {
		t.Fatalf("EncodeTrackMouse = %q, want %q", got, want)
	}
}

func TestEncodeLinuxMousePointerStyle(t *testing.T) {
	buf := make([]byte, 16)
	n, err := EncodeLinuxMousePointerStyle(buf, 0x0f, 0xff)
	if err != nil {
		t.Fatalf("EncodeLinuxMousePointerStyle error: %v", err)
	}
	if got, want := string(buf[:n]), "\x1b[15;255m"; got != want {
		t.Fatalf("EncodeLinuxMousePointerStyle = %q, want %q", got, want)
	}
}

func TestEncodeRequestTextAttributesDecodesAsResponse(t *testing.T) {
	// The request itself (EncodeRequestTextAttributes) has no matching
	// descriptor — only the terminal's answer does. Exercise that answer
	// shape directly to confirm the DECRQSS response wiring.
	events := DecodeBuffer([]byte("\x1bP1$r0;4m\x1b\\"))
	if len(events) != 1 || events[0].Kind != EventTerminalResponse || events[0].TerminalResponse.Kind != RespTextAttributes {
		t.Fatalf("events = %+v", events)
	}
	if events[0].TerminalResponse.Text != "0;4m" {
		t.Fatalf("response text = %q", events[0].TerminalResponse.Text)
	}
}

func TestEncodeModifierParamRoundTrip(t *testing.T) {
	for _, m := range []Modifiers{0, ModShift, ModCtrl | ModAlt, ModSuper | ModHyper | ModMeta} {
		encoded := EncodeModifierParam(m)
		if got := DecodeModifierParam(encoded); got != m {
			t.Fatalf("modifier round trip: %v -> %d -> %v", m, encoded, got)
		}
	}
}
