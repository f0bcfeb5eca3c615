package vtio

import "testing"

func collectEvents(p *Parser, b []byte) []Event {
	var events []Event
	sink := func(e *Event) { events = append(events, *e) }
	p.FeedWith(b, sink)
	p.Idle(sink)
	return events
}

func TestDecodePlainChar(t *testing.T) {
	events := DecodeBuffer([]byte("a"))
	if len(events) != 1 || events[0].Kind != EventKey || events[0].Key.Code.Char != 'a' {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeUppercaseSetsShift(t *testing.T) {
	events := DecodeBuffer([]byte("A"))
	if len(events) != 1 || !events[0].Key.Modifiers.Has(ModShift) {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeC0CtrlLetter(t *testing.T) {
	events := DecodeBuffer([]byte{0x01}) // Ctrl+A
	if len(events) != 1 || events[0].Key.Code.Char != 'a' || !events[0].Key.Modifiers.Has(ModCtrl) {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeAltPrefixFoldsIntoChar(t *testing.T) {
	events := DecodeBuffer([]byte("\x1ba"))
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	k := events[0].Key
	if k.Code.Char != 'a' || !k.Modifiers.Has(ModAlt) {
		t.Fatalf("key = %+v, want Alt+a", k)
	}
}

func TestDecodeAltPrefixFoldsIntoC0(t *testing.T) {
	events := DecodeBuffer([]byte{0x1b, 0x01})
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	k := events[0].Key
	if k.Code.Char != 'a' || !k.Modifiers.Has(ModAlt) || !k.Modifiers.Has(ModCtrl) {
		t.Fatalf("key = %+v, want Alt+Ctrl+a", k)
	}
}

func TestDecodeBareEscapeOnIdle(t *testing.T) {
	events := DecodeBuffer([]byte{cESC})
	if len(events) != 1 || events[0].Key.Code.Kind != KeyEsc {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeLegacyArrowKey(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b[A"))
	if len(events) != 1 || events[0].Key.Code.Kind != KeyUp {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeLegacyArrowWithModifier(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b[1;5A"))
	if len(events) != 1 || events[0].Key.Code.Kind != KeyUp || !events[0].Key.Modifiers.Has(ModCtrl) {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeCsiUFunctionKey(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b[57344u")) // F1
	if len(events) != 1 || events[0].Key.Code.Kind != KeyFunction || events[0].Key.Code.Function != 1 {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeSGRMouse(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b[<0;10;20M"))
	if len(events) != 1 || events[0].Kind != EventMouse {
		t.Fatalf("events = %+v", events)
	}
	m := events[0].Mouse
	if m.Kind != MouseDown || m.Button != MouseLeft || m.Column != 10 || m.Row != 20 {
		t.Fatalf("mouse = %+v", m)
	}
}

func TestDecodeSGRPixelMode(t *testing.T) {
	p := NewParser()
	p.SetMouseSGRPixels(true)
	events := collectEvents(p, []byte("\x1b[<0;123;456M"))
	if len(events) != 1 || !events[0].Mouse.HasPixels || events[0].Mouse.PixelX != 123 || events[0].Mouse.PixelY != 456 {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeX10Mouse(t *testing.T) {
	// CSI M + 3 raw bytes: button 0 (Left press), column 5, row 5.
	events := DecodeBuffer([]byte{cESC, '[', 'M', 32, 32 + 5, 32 + 5})
	if len(events) != 1 || events[0].Kind != EventMouse {
		t.Fatalf("events = %+v", events)
	}
	m := events[0].Mouse
	if m.Button != MouseLeft || m.Column != 5 || m.Row != 5 {
		t.Fatalf("mouse = %+v", m)
	}
}

func TestDecodeBracketedPaste(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b[200~hello, world\x1b[201~"))
	if len(events) != 1 || events[0].Kind != EventPaste {
		t.Fatalf("events = %+v", events)
	}
	if string(events[0].Paste.Data) != "hello, world" {
		t.Fatalf("paste data = %q", events[0].Paste.Data)
	}
}

func TestDecodeBracketedPasteContentNotInterpreted(t *testing.T) {
	// An escape sequence inside the paste must come through as literal
	// bytes, not as a decoded CSI frame.
	payload := "foo\x1b[31mbar"
	var buf []byte
	buf = append(buf, []byte("\x1b[200~")...)
	buf = append(buf, []byte(payload)...)
	buf = append(buf, []byte("\x1b[201~")...)
	events := DecodeBuffer(buf)
	if len(events) != 1 || events[0].Kind != EventPaste {
		t.Fatalf("events = %+v", events)
	}
	if string(events[0].Paste.Data) != payload {
		t.Fatalf("paste data = %q, want %q", events[0].Paste.Data, payload)
	}
}

func TestDecodeFocus(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b[I\x1b[O"))
	if len(events) != 2 || !events[0].Focus.Gained || events[1].Focus.Gained {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeCursorPositionReport(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b[24;80R"))
	if len(events) != 1 || events[0].TerminalResponse.Kind != RespCursorPosition {
		t.Fatalf("events = %+v", events)
	}
	r := events[0].TerminalResponse
	if r.Row != 24 || r.Col != 80 {
		t.Fatalf("response = %+v", r)
	}
}

func TestDecodeOSCWorkingDirectory(t *testing.T) {
	events := DecodeBuffer([]byte("\x1b]7;file:///home/user\x07"))
	if len(events) != 1 || events[0].TerminalResponse.Kind != RespWorkingDirectory {
		t.Fatalf("events = %+v", events)
	}
	if events[0].TerminalResponse.WorkingDirectory != "file:///home/user" {
		t.Fatalf("response = %+v", events[0].TerminalResponse)
	}
}

func TestDecodeUnknownCsiPreservesRaw(t *testing.T) {
	// final byte 'y' with no matching descriptor key (no "$" intermediate,
	// no private marker) should come back as Unknown rather than vanish.
	events := DecodeBuffer([]byte("\x1b[5y"))
	if len(events) != 1 || events[0].Kind != EventUnknown {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeInvalidUTF8Surfaced(t *testing.T) {
	events := DecodeBuffer([]byte{0xff})
	if len(events) != 1 || events[0].Kind != EventInvalidUTF8 || events[0].InvalidUTF8.Byte != 0xff {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeEscClassRequestTerminalID(t *testing.T) {
	events := DecodeBuffer([]byte("\x1bZ"))
	if len(events) != 1 || events[0].Kind != EventTerminalResponse || events[0].TerminalResponse.Kind != RespTerminalID {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeEscClassFullReset(t *testing.T) {
	events := DecodeBuffer([]byte("\x1bc"))
	if len(events) != 1 || events[0].Kind != EventTerminalResponse || events[0].TerminalResponse.Kind != RespFullReset {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeSs2FunctionKey(t *testing.T) {
	// Single-shift-two mirrors SS3's F1-F4/cursor-key table (VT52/VT100
	// mode), not just SS3 alone.
	events := DecodeBuffer([]byte("\x1bNP"))
	if len(events) != 1 || events[0].Kind != EventKey || events[0].Key.Code.Kind != KeyFunction || events[0].Key.Code.Function != 1 {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeSs2ArrowKey(t *testing.T) {
	events := DecodeBuffer([]byte("\x1bNA"))
	if len(events) != 1 || events[0].Kind != EventKey || events[0].Key.Code.Kind != KeyUp {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeEscUnrecognizedStillFoldsToAlt(t *testing.T) {
	// 'z' has no ClassEsc descriptor, so the ALT-prefix fold must still
	// apply exactly as it does for every other unrecognized ESC+byte.
	events := DecodeBuffer([]byte("\x1bz"))
	if len(events) != 1 || events[0].Kind != EventKey || events[0].Key.Code.Char != 'z' || !events[0].Key.Modifiers.Has(ModAlt) {
		t.Fatalf("events = %+v", events)
	}
}

func TestDecodeBracketedPasteOverflowTruncates(t *testing.T) {
	// A ninth byte past the 8-byte PayloadBufferSize aborts the paste
	// capture with a bounded recovery Unknown event; the overflowing byte
	// is dropped with the capture and whatever follows it re-enters
	// ordinary tokenizer dispatch.
	p := NewParser(WithPayloadBufferSize(8))
	var events []Event
	sink := func(e *Event) { events = append(events, *e) }
	p.FeedWith([]byte("\x1b[200~012345678"), sink)
	p.Idle(sink)
	if len(events) != 1 || events[0].Kind != EventUnknown {
		t.Fatalf("events = %+v", events)
	}
	if len(events[0].Unknown.Raw) > 8 {
		t.Fatalf("overflow payload = %d bytes, want at most 8", len(events[0].Unknown.Raw))
	}
}

func TestDecodeChunkingInvariance(t *testing.T) {
	whole := []byte("a\x1b[1;5A\x1b]7;file:///x\x07b")
	want := DecodeBuffer(whole)

	p := NewParser()
	var got []Event
	sink := func(e *Event) { got = append(got, *e) }
	for _, b := range whole {
		p.FeedWith([]byte{b}, sink)
	}
	p.Idle(sink)

	if len(got) != len(want) {
		t.Fatalf("chunked produced %d events, whole produced %d: %+v vs %+v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i].Kind != want[i].Kind {
			t.Fatalf("event %d kind mismatch: %+v vs %+v", i, got[i], want[i])
		}
	}
}
