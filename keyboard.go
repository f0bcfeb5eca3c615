package vtio

// KeyboardFlags is the Kitty keyboard protocol's progressive-enhancement
// bitset, pushed with CSI > flags u and reported back by CSI ? u.
type KeyboardFlags uint8

const (
	KeyboardDisambiguateEscapeCodes KeyboardFlags = 1 << 0
	KeyboardReportEventTypes        KeyboardFlags = 1 << 1
	KeyboardReportAlternateKeys     KeyboardFlags = 1 << 2
	KeyboardReportAllKeysAsEscapes  KeyboardFlags = 1 << 3
	KeyboardReportAssociatedText    KeyboardFlags = 1 << 4
)

// Kitty functional-key numeric ranges, Unicode Private Use Area. The
// function-key range itself is gapped, not contiguous: F1-F12 sit at
// 57344-57355, the lock/menu keys take the next six codes (57358-57363),
// and F13-F35 resume at 57376-57398, leaving 57356-57357/57364-57375
// unused. kittyFunctionKey below is the authoritative table (it also
// holds the lock/menu keys); these bounds only delimit where it lives.
const (
	kittyFunctionBase = 57344
	kittyFunctionMax  = 57398
	kittyKeypadBase   = 57399 // 57399-57427
	kittyKeypadMax    = 57427
	kittyMediaBase    = 57428 // 57428-57440
	kittyMediaMax     = 57440
	kittyModifierBase = 57441 // 57441-57454
	kittyModifierMax  = 57454
)

// kittyFunctionKey maps the gapped F1-F35 codes to KeyCode, and the six
// lock/menu codes interleaved in the same range to their own KeyCodeKind.
var kittyFunctionKey = map[int]KeyCode{
	57344: FunctionCode(1),
	57345: FunctionCode(2),
	57346: FunctionCode(3),
	57347: FunctionCode(4),
	57348: FunctionCode(5),
	57349: FunctionCode(6),
	57350: FunctionCode(7),
	57351: FunctionCode(8),
	57352: FunctionCode(9),
	57353: FunctionCode(10),
	57354: FunctionCode(11),
	57355: FunctionCode(12),
	57358: simpleCode(KeyCapsLockKey),
	57359: simpleCode(KeyScrollLock),
	57360: simpleCode(KeyNumLockKey),
	57361: simpleCode(KeyPrintScreen),
	57362: simpleCode(KeyPause),
	57363: simpleCode(KeyMenu),
	57376: FunctionCode(13),
	57377: FunctionCode(14),
	57378: FunctionCode(15),
	57379: FunctionCode(16),
	57380: FunctionCode(17),
	57381: FunctionCode(18),
	57382: FunctionCode(19),
	57383: FunctionCode(20),
	57384: FunctionCode(21),
	57385: FunctionCode(22),
	57386: FunctionCode(23),
	57387: FunctionCode(24),
	57388: FunctionCode(25),
	57389: FunctionCode(26),
	57390: FunctionCode(27),
	57391: FunctionCode(28),
	57392: FunctionCode(29),
	57393: FunctionCode(30),
	57394: FunctionCode(31),
	57395: FunctionCode(32),
	57396: FunctionCode(33),
	57397: FunctionCode(34),
	57398: FunctionCode(35),
}

func isKittyKeypadCode(code int) bool {
	return code >= kittyKeypadBase && code <= kittyKeypadMax
}

// kittyKeypadKey maps a keypad numeric code to the character it normally
// produces (digits, operators) — the keypad-ness itself is signaled via
// KeyEventState.Keypad, the code still decodes to an ordinary KeyCode.
var kittyKeypadKey = map[int]KeyCode{
	57399: CharCode('0'),
	57400: CharCode('1'),
	57401: CharCode('2'),
	57402: CharCode('3'),
	57403: CharCode('4'),
	57404: CharCode('5'),
	57405: CharCode('6'),
	57406: CharCode('7'),
	57407: CharCode('8'),
	57408: CharCode('9'),
	57409: CharCode('.'),
	57410: CharCode('/'),
	57411: CharCode('*'),
	57412: CharCode('-'),
	57413: CharCode('+'),
	57414: simpleCode(KeyEnter),
	57415: CharCode('='),
	57416: CharCode(','),
	57417: simpleCode(KeyLeft),
	57418: simpleCode(KeyRight),
	57419: simpleCode(KeyUp),
	57420: simpleCode(KeyDown),
	57421: simpleCode(KeyPageUp),
	57422: simpleCode(KeyPageDown),
	57423: simpleCode(KeyHome),
	57424: simpleCode(KeyEnd),
	57425: simpleCode(KeyInsert),
	57426: simpleCode(KeyDelete),
	57427: simpleCode(KeyKeypadBegin),
}

var kittyMediaKey = map[int]MediaKeyCode{
	57428: MediaPlay,
	57429: MediaPause,
	57430: MediaPlayPause,
	57431: MediaReverse,
	57432: MediaStop,
	57433: MediaFastForward,
	57434: MediaRewind,
	57435: MediaTrackNext,
	57436: MediaTrackPrevious,
	57437: MediaRecord,
	57438: MediaLowerVolume,
	57439: MediaRaiseVolume,
	57440: MediaMuteVolume,
}

var kittyModifierKey = map[int]KeyCode{
	57441: ModifierCode(ModKeyShift, SideLeft),
	57442: ModifierCode(ModKeyControl, SideLeft),
	57443: ModifierCode(ModKeyAlt, SideLeft),
	57444: ModifierCode(ModKeySuper, SideLeft),
	57445: ModifierCode(ModKeyHyper, SideLeft),
	57446: ModifierCode(ModKeyMeta, SideLeft),
	57447: ModifierCode(ModKeyShift, SideRight),
	57448: ModifierCode(ModKeyControl, SideRight),
	57449: ModifierCode(ModKeyAlt, SideRight),
	57450: ModifierCode(ModKeySuper, SideRight),
	57451: ModifierCode(ModKeyHyper, SideRight),
	57452: ModifierCode(ModKeyMeta, SideRight),
	57453: ModifierCode(ModKeyIsoLevel3Shift, SideUnspecified),
	57454: ModifierCode(ModKeyIsoLevel5Shift, SideUnspecified),
}

// kittyLegacyKey names the handful of ASCII control codepoints Kitty
// reports through the ordinary keycode position rather than the
// 57344+ functional range (encoding.rs's legacy key table).
var kittyLegacyKey = map[int]KeyCode{
	9:   simpleCode(KeyTab),
	13:  simpleCode(KeyEnter),
	27:  simpleCode(KeyEsc),
	127: simpleCode(KeyBackspace),
}

// kittyCodeToKey resolves one of the four Kitty functional
// ranges (function/keypad/media/modifier) or falls back to a raw Unicode
// codepoint. It returns ok=false for code 0, which the CSI-u grammar uses
// as a "no keycode, look at the text sub-parameter instead" sentinel.
func kittyCodeToKey(code int) (KeyCode, bool) {
	switch {
	case code == 0:
		return KeyCode{}, false
	case code >= kittyFunctionBase && code <= kittyFunctionMax:
		if k, ok := kittyFunctionKey[code]; ok {
			return k, true
		}
		return KeyCode{}, false
	case isKittyKeypadCode(code):
		if k, ok := kittyKeypadKey[code]; ok {
			return k, true
		}
		return KeyCode{}, false
	case code >= kittyMediaBase && code <= kittyMediaMax:
		if m, ok := kittyMediaKey[code]; ok {
			return MediaCode(m), true
		}
		return KeyCode{}, false
	case code >= kittyModifierBase && code <= kittyModifierMax:
		if k, ok := kittyModifierKey[code]; ok {
			return k, true
		}
		return KeyCode{}, false
	default:
		if k, ok := kittyLegacyKey[code]; ok {
			return k, true
		}
		return CharCode(rune(code)), true
	}
}

// kittyModifierBits maps Kitty's wire bit position to our Modifiers bit,
// grounded on keyboard/modifier.rs's KITTY_MODIFIER_BITS table. Kitty's
// own bit order (shift,alt,ctrl,super,hyper,meta) already matches the
// Modifiers layout bit-for-bit, so decoding is a
// straight copy of bits 0-5; bits 6/7 (caps-lock/num-lock) are state
// flags on the wire but fold into Modifiers too, per invariant 3.
func kittyModifiersFromBits(bits int) Modifiers {
	return Modifiers(bits & 0xFF)
}

// controlCodeFor returns the C0 control byte produced by Ctrl+c for an
// ASCII letter/punctuation c, mirroring keyboard/encoding.rs's
// control_code_for. ok is false for characters with no Ctrl mapping.
func controlCodeFor(c rune) (byte, bool) {
	switch {
	case c == '@' || c == ' ':
		return 0x00, true
	case c >= 'a' && c <= 'z':
		return byte(c-'a') + 1, true
	case c >= 'A' && c <= 'Z':
		return byte(c-'A') + 1, true
	case c == '[':
		return 0x1b, true
	case c == '\\':
		return 0x1c, true
	case c == ']':
		return 0x1d, true
	case c == '^':
		return 0x1e, true
	case c == '_':
		return 0x1f, true
	case c == '?':
		return 0x7f, true
	default:
		return 0, false
	}
}

// charFromControlCode is the inverse of controlCodeFor, used to decode a
// C0 byte into Ctrl+letter.
func charFromControlCode(b byte) (rune, bool) {
	switch {
	case b == 0x00:
		return ' ', true
	case b >= 0x01 && b <= 0x1a:
		return rune('a' + b - 1), true
	case b == 0x1b:
		return '[', true
	case b == 0x1c:
		return '\\', true
	case b == 0x1d:
		return ']', true
	case b == 0x1e:
		return '^', true
	case b == 0x1f:
		return '_', true
	case b == 0x7f:
		return '?', true
	default:
		return 0, false
	}
}

// legacyCsiFinal maps a bare CSI final byte (no tilde) to a key, both
// with and without the "CSI 1;mods" modifier prefix. Only the finals
// registerKeyDescriptors registers under ClassCsi (A-D, F, H, Z) reach
// it; P-S are not registered there, so their entries are never looked up
// (CSI R decodes as a cursor position report). SS3 uses ss3Key.
var legacyCsiFinal = map[byte]KeyCode{
	'A': simpleCode(KeyUp),
	'B': simpleCode(KeyDown),
	'C': simpleCode(KeyRight),
	'D': simpleCode(KeyLeft),
	'F': simpleCode(KeyEnd),
	'H': simpleCode(KeyHome),
	'P': FunctionCode(1),
	'Q': FunctionCode(2),
	'R': FunctionCode(3),
	'S': FunctionCode(4),
	'Z': simpleCode(KeyBackTab),
}

// legacyCsiTilde maps the numeric parameter of a "CSI n ~" sequence to a
// key.
var legacyCsiTilde = map[int]KeyCode{
	1:  simpleCode(KeyHome),
	2:  simpleCode(KeyInsert),
	3:  simpleCode(KeyDelete),
	4:  simpleCode(KeyEnd),
	5:  simpleCode(KeyPageUp),
	6:  simpleCode(KeyPageDown),
	7:  simpleCode(KeyHome),
	8:  simpleCode(KeyEnd),
	11: FunctionCode(1),
	12: FunctionCode(2),
	13: FunctionCode(3),
	14: FunctionCode(4),
	15: FunctionCode(5),
	17: FunctionCode(6),
	18: FunctionCode(7),
	19: FunctionCode(8),
	20: FunctionCode(9),
	21: FunctionCode(10),
	23: FunctionCode(11),
	24: FunctionCode(12),
	25: FunctionCode(13),
	26: FunctionCode(14),
	28: FunctionCode(15),
	29: FunctionCode(16),
	31: FunctionCode(17),
	32: FunctionCode(18),
	33: FunctionCode(19),
	34: FunctionCode(20),
}

// decodeCsiU decodes the Kitty CSI-u parameter layout
// "keycode[:shifted[:base]];modifiers[:event_type];text[:text...]".
func decodeCsiU(params ParamList) (Key, bool) {
	if params.Len() == 0 {
		return Key{}, false
	}

	keyCodeNum := params.Int(0, 0)
	var code KeyCode
	if keyCodeNum == 0 {
		code = CharCode(0) // placeholder; may be replaced by the text sub-parameter below
	} else {
		kc, ok := kittyCodeToKey(keyCodeNum)
		if !ok {
			return Key{}, false
		}
		code = kc
	}

	modValue := params.SubInt(1, 0, 1)
	eventValue := params.SubInt(1, 1, 1)
	mods := DecodeModifierParam(modValue)

	kind := KeyPress
	switch eventValue {
	case 2:
		kind = KeyRepeat
	case 3:
		kind = KeyRelease
	}

	state := KeyEventState{
		Keypad:   isKittyKeypadCode(keyCodeNum),
		CapsLock: mods.Has(ModCapsLock),
		NumLock:  mods.Has(ModNumLock),
	}

	var baseLayoutKey, shiftedKey *KeyCode
	if params.HasSub(0, 2) {
		if blk, ok := kittyCodeToKey(params.SubInt(0, 2, 0)); ok {
			baseLayoutKey = &blk
		}
	}
	if params.HasSub(0, 1) {
		if sk, ok := kittyCodeToKey(params.SubInt(0, 1, 0)); ok {
			shiftedKey = &sk
			if mods.Has(ModShift) {
				code = sk
				mods &^= ModShift
			}
		}
	}

	if code.Kind == KeyTab && mods.Has(ModShift) {
		code = simpleCode(KeyBackTab)
		mods &^= ModShift
	}

	// Modifier-only keycodes set their own bit ("reported
	// with their own press/release lifecycle").
	if code.Kind == KeyModifierKey {
		switch code.Modifier {
		case ModKeyShift:
			mods |= ModShift
		case ModKeyControl:
			mods |= ModCtrl
		case ModKeyAlt:
			mods |= ModAlt
		case ModKeySuper:
			mods |= ModSuper
		case ModKeyHyper:
			mods |= ModHyper
		case ModKeyMeta:
			mods |= ModMeta
		}
	}

	text := parseTextCodepoints(params.Tail(2))
	if keyCodeNum == 0 {
		if text != "" {
			code = CharCode([]rune(text)[0])
		} else {
			return Key{}, false
		}
	}

	return Key{
		Code:          code,
		Modifiers:     mods,
		Kind:          kind,
		State:         state,
		BaseLayoutKey: baseLayoutKey,
		ShiftedKey:    shiftedKey,
		Text:          text,
	}, true
}

// decodeLegacyCsiFinal decodes "CSI final" or "CSI 1 ; mods final" for
// the plain (no tilde) arrow/Home/End/F1-F4 family.
func decodeLegacyCsiFinal(final byte, params ParamList) (Key, bool) {
	code, ok := legacyCsiFinal[final]
	if !ok {
		return Key{}, false
	}
	mods := DecodeModifierParam(params.Int(1, 0))
	return Key{Code: code, Modifiers: mods, Kind: KeyPress}, true
}

// decodeLegacyCsiTilde decodes "CSI n [; mods] ~".
func decodeLegacyCsiTilde(params ParamList) (Key, bool) {
	n := params.Int(0, 0)
	code, ok := legacyCsiTilde[n]
	if !ok {
		return Key{}, false
	}
	mods := DecodeModifierParam(params.Int(1, 0))
	return Key{Code: code, Modifiers: mods, Kind: KeyPress}, true
}

// ss3Key maps a single-shift-three final byte to a key (legacy
// application-keypad cursor keys and F1-F4).
var ss3Key = map[byte]KeyCode{
	'A': simpleCode(KeyUp),
	'B': simpleCode(KeyDown),
	'C': simpleCode(KeyRight),
	'D': simpleCode(KeyLeft),
	'F': simpleCode(KeyEnd),
	'H': simpleCode(KeyHome),
	'P': FunctionCode(1),
	'Q': FunctionCode(2),
	'R': FunctionCode(3),
	'S': FunctionCode(4),
}
