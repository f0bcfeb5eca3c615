package vtio

// Parser is the public façade: it owns a decoder (tokenizer plus the
// small amount of cross-frame state the semantic layer needs — the
// pending-ALT flag, capture modes, keyboard-flags/SGR-pixel expectations)
// and turns incremental byte chunks into a strictly-ordered stream of
// Events. It is not safe for concurrent use from multiple goroutines,
// mirroring a single-threaded per-connection emulator.
type Parser struct {
	cfg Config
	dec *decoder
}

// NewParser constructs a Parser with DefaultConfig, modified by opts.
func NewParser(opts ...Option) *Parser {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	defaultRegistry.freeze()
	return &Parser{cfg: cfg, dec: newDecoder(cfg)}
}

// FeedWith processes b incrementally, invoking sink once per decoded
// event in strict input order. It never blocks.
func (p *Parser) FeedWith(b []byte, sink Sink) {
	p.dec.feed(b, sink)
}

// Idle flushes a bare, unfollowed ESC left parked by the last FeedWith
// call into an Escape keypress. Call it
// after a read timeout with no further bytes pending.
func (p *Parser) Idle(sink Sink) {
	p.dec.idle(sink)
}

// DecodeBuffer is a convenience one-shot: NewParser(opts...), FeedWith(b),
// then Idle, collecting every Event into a slice.
func DecodeBuffer(b []byte, opts ...Option) []Event {
	p := NewParser(opts...)
	var events []Event
	sink := func(e *Event) { events = append(events, *e) }
	p.FeedWith(b, sink)
	p.Idle(sink)
	return events
}

// SetKeyboardFlags records which Kitty keyboard enhancements the
// application has told the terminal are active. The tokenizer/trie
// dispatch itself does not depend on these flags — CSI-u frames are
// self-describing — but callers that also drive EncodeKey or
// EncodePushKeyboardFlags need the current flags remembered somewhere,
// and this is the natural
// home for that piece of state.
func (p *Parser) SetKeyboardFlags(flags KeyboardFlags) {
	p.cfg.KeyboardFlags = flags
}

// KeyboardFlags returns the flags last set by SetKeyboardFlags or
// supplied via WithKeyboardFlags.
func (p *Parser) KeyboardFlags() KeyboardFlags {
	return p.cfg.KeyboardFlags
}

// SetMouseSGRPixels tells the decoder whether the terminal is currently
// reporting mouse events in SGR-Pixel form (DEC private mode 1016) rather
// than plain SGR cell coordinates. Call it immediately after the
// application enables or disables mode 1016 — the wire format gives the
// decoder no other way to tell the two apart (see decode.go's
// applySGRPixelMode).
func (p *Parser) SetMouseSGRPixels(enabled bool) {
	p.dec.mouseSGRPixels = enabled
}
