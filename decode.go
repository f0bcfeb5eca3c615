package vtio

// Semantic decoder. Turns tokenizer frames into Events: dispatches
// recognized CSI/DCS/SS3 frames through the frozen registry trie, OSC
// frames through the command-number table, folds a C0/Print byte that
// followed a bare ESC into an ALT-modified key, maps C0 bytes to
// Ctrl+key, and runs the two byte-counted capture modes that sit
// outside the normal grammar: bracketed paste and the legacy X10
// "CSI M" + 3 raw bytes mouse report.

// pasteTerminator is the exact byte sequence that ends a bracketed
// paste; any prefix of it appearing inside the paste is plain data.
var pasteTerminator = []byte("\x1b[201~")

type captureMode uint8

const (
	captureNone captureMode = iota
	capturePaste
	captureX10Mouse
)

// decoder holds the state a Parser needs beyond the tokenizer itself:
// the pending-ALT flag left by an EscPrefix frame, and the two capture
// modes that consume raw bytes outside the tokenizer's own grammar.
type decoder struct {
	tok *tokenizer

	altPending bool

	capture    captureMode
	captureBuf []byte
	pasteLimit int

	mouseSGRPixels bool
}

func newDecoder(cfg Config) *decoder {
	return &decoder{tok: newTokenizer(cfg), pasteLimit: cfg.PayloadBufferSize}
}

// feed consumes b, invoking sink for every decoded event in order.
func (d *decoder) feed(b []byte, sink Sink) {
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch d.capture {
		case captureX10Mouse:
			d.captureBuf = append(d.captureBuf, c)
			if len(d.captureBuf) == 3 {
				d.finishX10Mouse(sink)
			}
		case capturePaste:
			d.feedPasteByte(c, sink)
		default:
			d.tok.feedByte(c, func(f tokenFrame) { d.handleFrame(f, sink) })
		}
	}
}

func (d *decoder) idle(sink Sink) {
	d.tok.idle(func(f tokenFrame) { d.handleFrame(f, sink) })
}

func (d *decoder) finishX10Mouse(sink Sink) {
	buf := d.captureBuf
	d.captureBuf = nil
	d.capture = captureNone
	m, ok := decodeX10MouseBytes(buf[0], buf[1], buf[2])
	if !ok {
		sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: buf}})
		return
	}
	sink(&Event{Kind: EventMouse, Mouse: m})
}

// feedPasteByte accumulates raw paste bytes verbatim (bracketed paste
// content is never escape-interpreted) and watches the tail of the
// buffer for the literal terminator, closing the capture as soon as it
// appears. This trades a bounded "watchdog window" of trailing bytes for a single
// accumulate-then-emit buffer: pastes are caller-sized and the suffix
// check is O(len(pasteTerminator)) per byte regardless of paste length, so
// the simplification costs nothing but a large single paste's peak memory
// — bounded by pasteLimit, past which the capture aborts rather than
// growing without limit.
func (d *decoder) feedPasteByte(b byte, sink Sink) {
	if len(d.captureBuf) >= d.pasteLimit {
		d.overflowPaste(sink)
		return
	}
	d.captureBuf = append(d.captureBuf, b)
	n := len(d.captureBuf)
	t := len(pasteTerminator)
	if n < t {
		return
	}
	if string(d.captureBuf[n-t:]) != string(pasteTerminator) {
		return
	}
	data := d.captureBuf[:n-t]
	d.captureBuf = nil
	d.capture = captureNone
	sink(&Event{Kind: EventPaste, Paste: Paste{Data: data}})
}

// overflowPaste aborts a paste whose content exceeded pasteLimit,
// surfacing what was captured so far as a recovery Unknown event rather
// than either dropping it silently or growing the buffer forever. The
// byte that overflowed is dropped with the capture. The captured buffer
// is never longer than pasteLimit, so truncateGraphemeSafe returns it
// unchanged: the payload is cut at exactly pasteLimit bytes, and its
// last grapheme cluster or UTF-8 scalar may be incomplete.
func (d *decoder) overflowPaste(sink Sink) {
	truncated := []byte(truncateGraphemeSafe(string(d.captureBuf), d.pasteLimit))
	d.captureBuf = nil
	d.capture = captureNone
	logW.Printf("bracketed paste exceeded %d-byte buffer, aborting", d.pasteLimit)
	sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: truncated}})
}

func (d *decoder) handleFrame(f tokenFrame, sink Sink) {
	switch f.kind {
	case frPrint:
		d.handlePrint(f, sink)
	case frC0:
		d.handleC0(f, sink)
	case frEscPrefix:
		d.handleEscPrefix(f, sink)
	case frCsi:
		d.handleCsi(f, sink)
	case frDcs:
		d.dispatchTrie(ClassDcs, f.private, f.intermediates, f.final, f.params, f.data, sink)
	case frOsc:
		d.handleOsc(f, sink)
	case frSs2:
		d.dispatchTrie(ClassSs2, 0, nil, f.b, nil, nil, sink)
	case frSs3:
		d.dispatchTrie(ClassSs3, 0, nil, f.b, nil, nil, sink)
	case frPm, frApc:
		sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: f.data}})
	case frInvalidUTF8:
		logW.Printf("invalid UTF-8 byte %#x", f.b)
		sink(&Event{Kind: EventInvalidUTF8, InvalidUTF8: InvalidUTF8{Byte: f.b}})
	case frOverflow:
		logW.Printf("sequence buffer overflow, %d bytes dropped", len(f.data))
		sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: f.data}})
	}
}

func (d *decoder) handlePrint(f tokenFrame, sink Sink) {
	var mods Modifiers
	if f.ch >= 'A' && f.ch <= 'Z' {
		mods |= ModShift
	}
	if d.altPending {
		mods |= ModAlt
		d.altPending = false
	}
	sink(&Event{Kind: EventKey, Key: Key{Code: CharCode(f.ch), Modifiers: mods, Kind: KeyPress}})
}

func (d *decoder) handleC0(f tokenFrame, sink Sink) {
	key, ok := decodeC0(f.b)
	if !ok {
		logT.Printf("unmapped C0 byte %#x", f.b)
		sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: []byte{f.b}}})
		return
	}
	if d.altPending {
		key.Modifiers |= ModAlt
		d.altPending = false
	}
	sink(&Event{Kind: EventKey, Key: key})
}

// handleEscPrefix implements the ALT-prefix rule: ESC followed by a
// Print/C0 byte is that key with Alt added, not a separate Escape
// keypress — unless the byte is itself a recognized ESC-class final byte
// (e.g. 'Z'/'c'), in which case it dispatches as that control function
// instead. b==0 is idle()'s synthetic marker for a bare, unfollowed ESC.
func (d *decoder) handleEscPrefix(f tokenFrame, sink Sink) {
	if f.b == 0 {
		sink(&Event{Kind: EventKey, Key: Key{Code: simpleCode(KeyEsc), Kind: KeyPress}})
		return
	}
	if event, ok := d.tryDispatchTrie(ClassEsc, 0, nil, f.b, nil, nil); ok {
		sink(&event)
		return
	}
	d.altPending = true
	d.tok.feedByte(f.b, func(nf tokenFrame) { d.handleFrame(nf, sink) })
}

// decodeC0 maps a C0 control byte (and DEL) to the Key it produces,
// reusing keyboard.go's charFromControlCode for the generic Ctrl+letter
// case.
func decodeC0(b byte) (Key, bool) {
	switch b {
	case 0x00:
		return Key{Code: CharCode(' '), Modifiers: ModCtrl, Kind: KeyPress}, true
	case 0x09:
		return Key{Code: simpleCode(KeyTab), Kind: KeyPress}, true
	case 0x0A:
		return Key{Code: simpleCode(KeyLineFeed), Kind: KeyPress}, true
	case 0x0D:
		return Key{Code: simpleCode(KeyEnter), Kind: KeyPress}, true
	case 0x08, 0x7F:
		return Key{Code: simpleCode(KeyBackspace), Kind: KeyPress}, true
	case 0x1C, 0x1D, 0x1E, 0x1F:
		r, _ := charFromControlCode(b)
		return Key{Code: CharCode(r), Modifiers: ModCtrl, Kind: KeyPress}, true
	default:
		if b >= 0x01 && b <= 0x1A {
			r, _ := charFromControlCode(b)
			return Key{Code: CharCode(r), Modifiers: ModCtrl, Kind: KeyPress}, true
		}
		return Key{}, false
	}
}

// handleCsi intercepts the two CSI shapes that need Parser-level capture
// state before falling through to the registry trie: bracketed-paste
// start/end and the bare "CSI M" X10 mouse introducer.
func (d *decoder) handleCsi(f tokenFrame, sink Sink) {
	if f.final == '~' && f.private == 0 && len(f.intermediates) == 0 {
		params := parseParams(f.params)
		switch params.Int(0, -1) {
		case 200:
			d.capture = capturePaste
			d.captureBuf = nil
			return
		case 201:
			// A stray paste-end with no matching start: nothing was
			// captured, so surface it as Unknown rather than guessing.
			sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: reconstructCsiRaw(f)}})
			return
		}
	}
	if f.final == 'M' && f.private == 0 && len(f.params) == 0 && len(f.intermediates) == 0 {
		d.capture = captureX10Mouse
		d.captureBuf = nil
		return
	}
	d.dispatchTrie(ClassCsi, f.private, f.intermediates, f.final, f.params, nil, sink)
}

func (d *decoder) handleOsc(f tokenFrame, sink Sink) {
	cmd, payload, ok := splitOSC(f.data)
	if !ok {
		sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: f.data}})
		return
	}
	desc, ok := defaultRegistry.osc[cmd]
	if !ok {
		sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: f.data}})
		return
	}
	event, ok := desc.Decode(payload)
	if !ok {
		sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: f.data}})
		return
	}
	sink(&event)
}

// dispatchTrie looks a (class, private, intermediates, final) key up in
// the frozen registry trie and, on a match, decodes it; on a miss or a
// schema failure it emits Unknown rather than dropping the frame.
// rawParams is the raw CSI parameter byte string (nil for classes that
// carry none); data is the DCS string body (nil otherwise).
func (d *decoder) dispatchTrie(class Class, private byte, intermediates []byte, final byte, rawParams, data []byte, sink Sink) {
	if event, ok := d.tryDispatchTrie(class, private, intermediates, final, rawParams, data); ok {
		sink(&event)
		return
	}
	key := descriptorKey(class, private, intermediates, final)
	sink(&Event{Kind: EventUnknown, Unknown: Unknown{Raw: rawOrKey(rawParams, data, key)}})
}

// tryDispatchTrie is dispatchTrie's non-emitting core: it reports ok=false
// on a trie miss or schema failure instead of producing an Unknown event,
// so a caller can fall back to different handling of its own (the
// ALT-prefix fold in handleEscPrefix is the only current user of that).
func (d *decoder) tryDispatchTrie(class Class, private byte, intermediates []byte, final byte, rawParams, data []byte) (Event, bool) {
	trie := defaultRegistry.freeze()
	key := descriptorKey(class, private, intermediates, final)
	cursor := trie.cursor()
	answer := cursor.advanceSlice(key)
	if !answer.isMatch() {
		return Event{}, false
	}
	idx, _ := cursor.value()
	desc := defaultRegistry.lookup(idx)
	if desc == nil {
		return Event{}, false
	}
	params := parseParams(rawParams)
	event, ok := desc.Decode(params, intermediates, final, data)
	if !ok {
		return Event{}, false
	}
	d.applySGRPixelMode(desc.Name, &event)
	return event, true
}

// applySGRPixelMode converts an SGR mouse event's cell coordinates into
// pixel coordinates when SGR-Pixel (DEC mode 1016) is the active variant.
// The wire format is byte-identical between SGR and SGR-Pixel (confirmed
// against mouse.rs: no distinct struct exists for the pixel variant), so
// the distinction can only be made with out-of-band state the application
// sets via Parser.SetMouseSGRPixels after enabling mode 1016.
func (d *decoder) applySGRPixelMode(name string, event *Event) {
	if !d.mouseSGRPixels || event.Kind != EventMouse {
		return
	}
	if name != "SGRMouseEvent" && name != "SGRMouseRelease" {
		return
	}
	event.Mouse.HasPixels = true
	event.Mouse.PixelX = event.Mouse.Column
	event.Mouse.PixelY = event.Mouse.Row
	event.Mouse.Column = 1
	event.Mouse.Row = 1
}

func rawOrKey(rawParams, data, key []byte) []byte {
	if data != nil {
		return append([]byte(nil), data...)
	}
	if rawParams != nil {
		return append([]byte(nil), rawParams...)
	}
	return append([]byte(nil), key...)
}

// reconstructCsiRaw rebuilds the original parameter bytes of a CSI frame
// for an Unknown event, so a caller that logs or re-transmits unmatched
// input never loses information rather than silently dropping it.
func reconstructCsiRaw(f tokenFrame) []byte {
	raw := make([]byte, 0, 2+len(f.params)+len(f.intermediates))
	if f.private != 0 {
		raw = append(raw, f.private)
	}
	raw = append(raw, f.params...)
	raw = append(raw, f.intermediates...)
	raw = append(raw, f.final)
	return raw
}
