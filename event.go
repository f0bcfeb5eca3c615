package vtio

// Modifiers is the Kitty keyboard protocol's modifier bit layout:
// bit 0 shift, 1 alt, 2 ctrl, 3 super, 4 hyper, 5 meta,
// 6 caps-lock, 7 num-lock. It is shared by Key and Mouse events. The
// on-wire encoded value is 1+bits, or 0 when no bit is set; EncodeModifierParam and
// DecodeModifierParam are the exact inverse of one another, which is what
// the Kitty modifier round-trip property checks.
type Modifiers uint8

const (
	ModShift    Modifiers = 1 << 0
	ModAlt      Modifiers = 1 << 1
	ModCtrl     Modifiers = 1 << 2
	ModSuper    Modifiers = 1 << 3
	ModHyper    Modifiers = 1 << 4
	ModMeta     Modifiers = 1 << 5
	ModCapsLock Modifiers = 1 << 6
	ModNumLock  Modifiers = 1 << 7
)

// EncodeModifierParam returns the on-wire `modifiers` sub-parameter value
// for m: 0 (the param is typically omitted) when m has no bits set,
// otherwise 1+bits.
func EncodeModifierParam(m Modifiers) int {
	if m == 0 {
		return 0
	}
	return 1 + int(m)
}

// DecodeModifierParam is the inverse of EncodeModifierParam: value 0 or 1
// both mean "no modifiers" (0 for an absent/omitted parameter, 1 for an
// explicit but empty bit set).
func DecodeModifierParam(value int) Modifiers {
	if value <= 1 {
		return 0
	}
	return Modifiers(value - 1)
}

func (m Modifiers) Has(bit Modifiers) bool { return m&bit != 0 }

// KeyEventKind is Press, Repeat or Release. It defaults to Press when the
// Kitty event-type sub-parameter is absent.
type KeyEventKind uint8

const (
	KeyPress KeyEventKind = iota
	KeyRepeat
	KeyRelease
)

// KeyEventState tracks flags that are orthogonal to Modifiers: whether the
// key arrived on the numeric keypad, and the live toggle state of
// Caps Lock / Num Lock as reported by REPORT_ALL_KEYS_AS_ESCAPE_CODES.
type KeyEventState struct {
	Keypad   bool
	CapsLock bool
	NumLock  bool
}

// KeyCodeKind discriminates the KeyCode sum type.
type KeyCodeKind uint8

const (
	KeyChar KeyCodeKind = iota
	KeyFunction
	KeyBackspace
	KeyEnter
	KeyLineFeed
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyEsc
	KeyCapsLockKey
	KeyScrollLock
	KeyNumLockKey
	KeyPrintScreen
	KeyPause
	KeyMenu
	KeyKeypadBegin
	KeyMedia
	KeyModifierKey
	KeyNull
)

// MediaKeyCode enumerates the Kitty media functional keys (57428-57440).
type MediaKeyCode uint8

const (
	MediaPlay MediaKeyCode = iota
	MediaPause
	MediaPlayPause
	MediaReverse
	MediaStop
	MediaFastForward
	MediaRewind
	MediaTrackNext
	MediaTrackPrevious
	MediaRecord
	MediaLowerVolume
	MediaRaiseVolume
	MediaMuteVolume
)

// ModifierKeyCode enumerates the Kitty "report this modifier as its own
// key" functional codes (57441-57454), independent of ModifierSide.
type ModifierKeyCode uint8

const (
	ModKeyShift ModifierKeyCode = iota
	ModKeyControl
	ModKeyAlt
	ModKeySuper
	ModKeyHyper
	ModKeyMeta
	ModKeyIsoLevel3Shift
	ModKeyIsoLevel5Shift
)

// ModifierSide distinguishes left/right for the four modifiers that come
// in pairs. It is meaningless (Unspecified) for IsoLevel3Shift/
// IsoLevel5Shift, which have no left/right distinction on the wire.
type ModifierSide uint8

const (
	SideUnspecified ModifierSide = iota
	SideLeft
	SideRight
)

// KeyCode is a closed sum type: exactly one of its fields is meaningful,
// selected by Kind. This mirrors the original's Rust enum without paying
// for an interface-per-variant allocation.
type KeyCode struct {
	Kind         KeyCodeKind
	Char         rune
	Function     int // 1..=35 when Kind == KeyFunction
	Media        MediaKeyCode
	Modifier     ModifierKeyCode
	ModifierSide ModifierSide
}

func CharCode(r rune) KeyCode          { return KeyCode{Kind: KeyChar, Char: r} }
func FunctionCode(n int) KeyCode       { return KeyCode{Kind: KeyFunction, Function: n} }
func MediaCode(m MediaKeyCode) KeyCode { return KeyCode{Kind: KeyMedia, Media: m} }
func ModifierCode(m ModifierKeyCode, side ModifierSide) KeyCode {
	return KeyCode{Kind: KeyModifierKey, Modifier: m, ModifierSide: side}
}
func simpleCode(k KeyCodeKind) KeyCode { return KeyCode{Kind: k} }

// Key is the event emitted for every keyboard activation: a plain
// printable character, a C0 control byte, a legacy VT function/arrow key,
// or a fully disambiguated Kitty CSI-u report.
type Key struct {
	Code          KeyCode
	Modifiers     Modifiers
	Kind          KeyEventKind
	State         KeyEventState
	BaseLayoutKey *KeyCode // present only when the Kitty base-layout sub-param was sent
	ShiftedKey    *KeyCode // present only when the Kitty shifted-key sub-param was sent
	Text          string   // associated text codepoints, Kitty REPORT_ASSOCIATED_TEXT
}

// MouseEventKind discriminates the kind of mouse activity reported.
type MouseEventKind uint8

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseDrag
	MouseMoved
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// MouseButton identifies which button a Down/Up/Drag event concerns. It
// is meaningless for Moved/Scroll* kinds.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseOther // button number is carried out-of-band; see ButtonCode on Mouse
)

// Mouse is the event emitted for X10, SGR and SGR-Pixel mouse reports.
// Column/Row are 1-based terminal cell coordinates, always present.
// PixelX/PixelY are populated only under SGR-Pixel (DEC mode 1016); when
// unset the cell coordinates are the only positional information.
type Mouse struct {
	Kind       MouseEventKind
	Button     MouseButton
	ButtonCode int // raw low-order button bits, meaningful when Button == MouseOther
	Column     int
	Row        int
	Modifiers  Modifiers
	HasPixels  bool
	PixelX     int
	PixelY     int
}

// Focus reports a terminal focus-in (gained=true) or focus-out event.
type Focus struct {
	Gained bool
}

// Paste is the event emitted for the contents of a bracketed paste. The
// parser collapses Start/Data/End into a single event; the
// data slice it carries is owned by the caller's sink invocation and must
// be copied if retained past the callback.
type Paste struct {
	Data []byte
}

// Resize reports a terminal size change communicated out-of-band (e.g. by
// a host environment that synthesizes this event; no VT sequence carries
// it, it exists purely so embedders have a uniform event sum type).
type Resize struct {
	Cols int
	Rows int
}

// TerminalResponseKind discriminates the TerminalResponse payload.
type TerminalResponseKind uint8

const (
	RespCursorPosition TerminalResponseKind = iota
	RespPrimaryDeviceAttributes
	RespSecondaryDeviceAttributes
	RespTertiaryDeviceAttributes
	RespModeReport
	RespKeyboardFlags
	RespColor
	RespWorkingDirectory
	RespShellIntegration
	RespTerminalID
	RespConformanceLevel
	RespDeviceStatus
	RespTextAttributes
	RespFullReset
)

// TerminalResponse carries a decoded OSC/DCS/CSI query response. Only the
// field(s) relevant to Kind are populated; the rest are zero values.
type TerminalResponse struct {
	Kind TerminalResponseKind

	// RespCursorPosition
	Row, Col int

	// RespPrimaryDeviceAttributes / RespSecondaryDeviceAttributes /
	// RespTertiaryDeviceAttributes
	DAClass    int
	DAFeatures []int

	// RespModeReport (ModeNumber/ModeValue are also used by
	// RespConformanceLevel, and ModeValue by RespTextAttributes)
	ModePrivate bool
	ModeNumber  int
	ModeValue   int

	// RespKeyboardFlags
	KeyboardFlags KeyboardFlags

	// RespColor (OSC 4 indexed palette, OSC 10/11 fg/bg). ColorSpec is
	// the color-text payload verbatim (e.g. "rgb:1a1a/2b2b/3c3c" or an
	// X11 name) — parsing that text is an external collaborator's job,
	// not this package's; see DESIGN.md.
	ColorIndex int // -1 foreground, -2 background (OSC 10/11), >=0 palette (OSC 4)
	ColorSpec  string

	// RespWorkingDirectory (OSC 7)
	WorkingDirectory string

	// RespShellIntegration (OSC 133)
	ShellMarker   byte // 'A' prompt, 'B' command-start, 'C' output-start, 'D' finished
	ShellExitCode int
	ShellHasExit  bool

	// RespTextAttributes (DECRQSS report body). RespTerminalID (ESC Z) and
	// RespFullReset leave Text empty since the ESC-class control function
	// itself carries no payload.
	Text string

	// RespDeviceStatus (CSI Ps n)
	StatusCode int
}

// Unknown carries a recognized-class frame whose final byte/parameters
// the registry has no descriptor for, or a malformed frame truncated by a
// buffer overflow. Per the "never silently drop" design note the raw
// bytes are preserved verbatim.
type Unknown struct {
	Raw []byte
}

// InvalidUTF8 is the recovery event for a malformed UTF-8 scalar: an
// explicitly named event rather than folding it into an unrelated key.
type InvalidUTF8 struct {
	Byte byte
}

// EventKind discriminates the Event tagged union. Go lacks sum types, so
// Event carries every payload type as a plain value field instead of an
// interface — the Print/C0 hot path (by far the most frequent event)
// never allocates, at the cost of Event itself being somewhat larger
// than its active field alone.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventFocus
	EventPaste
	EventResize
	EventTerminalResponse
	EventUnknown
	EventInvalidUTF8
)

// Event is the concrete value handed to a Sink. Only the field matching
// Kind is populated.
type Event struct {
	Kind             EventKind
	Key              Key
	Mouse            Mouse
	Focus            Focus
	Paste            Paste
	Resize           Resize
	TerminalResponse TerminalResponse
	Unknown          Unknown
	InvalidUTF8      InvalidUTF8
}

// Sink receives decoded events in strict input order. It must not retain
// slices held by the event (Unknown.Raw, Paste.Data) beyond the call.
type Sink func(*Event)
