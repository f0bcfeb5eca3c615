package vtio

import (
	"strconv"
	"strings"
)

// must panics on a registration error. It is only ever called from
// init(), against the built-in descriptor set, where a failure means a
// programming mistake in this file rather than a runtime condition a
// caller could recover from — equivalent in spirit to the source's
// link-time duplicate-descriptor check.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

func init() {
	registerKeyDescriptors()
	registerMouseDescriptors()
	registerEscDescriptors()
	registerTerminalResponseDescriptors()
	registerOSCDescriptors()
}

// registerEscDescriptors wires up the two-byte ESC-class control
// functions that decode.go's handleEscPrefix tries before folding an
// unrecognized ESC+byte into an ALT-modified key: DECID ("ESC Z",
// answerback/terminal-ID request) and RIS ("ESC c", full reset).
func registerEscDescriptors() {
	must(Register(Descriptor{
		Class: ClassEsc,
		Final: 'Z',
		Name:  "RequestTerminalID",
		Decode: func(_ ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind: RespTerminalID,
			}}, true
		},
	}))
	must(Register(Descriptor{
		Class: ClassEsc,
		Final: 'c',
		Name:  "FullReset",
		Decode: func(_ ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind: RespFullReset,
			}}, true
		},
	}))
}

// registerKeyDescriptors wires up the legacy VT and Kitty CSI-u keyboard
// descriptors covering legacy keyboard sequences and Kitty CSI-u decoding.
func registerKeyDescriptors() {
	for _, final := range []byte{'A', 'B', 'C', 'D', 'F', 'H', 'Z'} {
		final := final
		must(Register(Descriptor{
			Class: ClassCsi,
			Final: final,
			Name:  "LegacyCursorKey",
			Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
				k, ok := decodeLegacyCsiFinal(final, params)
				if !ok {
					return Event{}, false
				}
				return Event{Kind: EventKey, Key: k}, true
			},
		}))
	}

	must(Register(Descriptor{
		Class: ClassCsi,
		Final: '~',
		Name:  "LegacyTildeKey",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			k, ok := decodeLegacyCsiTilde(params)
			if !ok {
				return Event{}, false
			}
			return Event{Kind: EventKey, Key: k}, true
		},
	}))

	must(Register(Descriptor{
		Class: ClassCsi,
		Final: 'u',
		Name:  "CsiUKeyEvent",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			k, ok := decodeCsiU(params)
			if !ok {
				return Event{}, false
			}
			return Event{Kind: EventKey, Key: k}, true
		},
	}))

	for _, final := range []byte{'A', 'B', 'C', 'D', 'F', 'H', 'P', 'Q', 'R', 'S'} {
		final := final
		must(Register(Descriptor{
			Class: ClassSs3,
			Final: final,
			Name:  "Ss3Key",
			Decode: func(_ ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
				code, ok := ss3Key[final]
				if !ok {
					return Event{}, false
				}
				return Event{Kind: EventKey, Key: Key{Code: code, Kind: KeyPress}}, true
			},
		}))
	}

	// VT52/VT100 mode also reports F1-F4 and the cursor keys under a
	// single-shift-two prefix (ESC N final); same final-byte table as
	// SS3, just a distinct trie namespace, matching spec.md's "Ss2/Ss3Final
	// -> legacy function key or cursor key lookup" pairing.
	for _, final := range []byte{'A', 'B', 'C', 'D', 'F', 'H', 'P', 'Q', 'R', 'S'} {
		final := final
		must(Register(Descriptor{
			Class: ClassSs2,
			Final: final,
			Name:  "Ss2Key",
			Decode: func(_ ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
				code, ok := ss3Key[final]
				if !ok {
					return Event{}, false
				}
				return Event{Kind: EventKey, Key: Key{Code: code, Kind: KeyPress}}, true
			},
		}))
	}
}

// registerMouseDescriptors wires up SGR mouse press/release reports.
// TrackMouse and LinuxMousePointerStyle are AnsiOutput-only in the
// source family (the terminal never reports them back), so they are
// encoders in encode.go rather than descriptors here.
func registerMouseDescriptors() {
	must(Register(Descriptor{
		Class:   ClassCsi,
		Private: '<',
		Final:   'M',
		Name:    "SGRMouseEvent",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			m, ok := decodeSGRMouse(params.Int(0, 0), params.Int(1, 1), params.Int(2, 1), false, false)
			if !ok {
				return Event{}, false
			}
			return Event{Kind: EventMouse, Mouse: m}, true
		},
	}))
	must(Register(Descriptor{
		Class:   ClassCsi,
		Private: '<',
		Final:   'm',
		Name:    "SGRMouseRelease",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			m, ok := decodeSGRMouse(params.Int(0, 0), params.Int(1, 1), params.Int(2, 1), true, false)
			if !ok {
				return Event{}, false
			}
			return Event{Kind: EventMouse, Mouse: m}, true
		},
	}))
}

// registerTerminalResponseDescriptors wires up focus events, mode/device
// status reports, device attribute responses (DA1/DA2/DA3), conformance-
// level negotiation (DECSCL report), and DECRQSS's text-attributes
// report — the latter pair exercising the DCS-with-intermediate and
// CSI-with-intermediate paths alongside the plain CSI/DCS descriptors
// above.
func registerTerminalResponseDescriptors() {
	must(Register(Descriptor{
		Class: ClassCsi,
		Final: 'I',
		Name:  "FocusGained",
		Decode: func(_ ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventFocus, Focus: Focus{Gained: true}}, true
		},
	}))
	must(Register(Descriptor{
		Class: ClassCsi,
		Final: 'O',
		Name:  "FocusLost",
		Decode: func(_ ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventFocus, Focus: Focus{Gained: false}}, true
		},
	}))

	must(Register(Descriptor{
		Class:         ClassCsi,
		Private:       '?',
		Intermediates: []byte("$"),
		Final:         'y',
		Name:          "ModeReport",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:        RespModeReport,
				ModePrivate: true,
				ModeNumber:  params.Int(0, 0),
				ModeValue:   params.Int(1, 0),
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class: ClassCsi,
		Final: 'n',
		Name:  "DeviceStatusReport",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:       RespDeviceStatus,
				StatusCode: params.Int(0, 0),
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class: ClassCsi,
		Final: 'R',
		Name:  "CursorPositionReport",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind: RespCursorPosition,
				Row:  params.Int(0, 1),
				Col:  params.Int(1, 1),
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class:   ClassCsi,
		Private: '?',
		Final:   'u',
		Name:    "KeyboardFlagsReport",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:          RespKeyboardFlags,
				KeyboardFlags: KeyboardFlags(params.Int(0, 0)),
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class:   ClassCsi,
		Private: '?',
		Final:   'c',
		Name:    "PrimaryDeviceAttributesResponse",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			feats := make([]int, 0, params.Len())
			for i := 1; i < params.Len(); i++ {
				feats = append(feats, params.Int(i, 0))
			}
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:       RespPrimaryDeviceAttributes,
				DAClass:    params.Int(0, 0),
				DAFeatures: feats,
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class:   ClassCsi,
		Private: '>',
		Final:   'c',
		Name:    "SecondaryDeviceAttributesResponse",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			feats := make([]int, 0, params.Len())
			for i := 1; i < params.Len(); i++ {
				feats = append(feats, params.Int(i, 0))
			}
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:       RespSecondaryDeviceAttributes,
				DAClass:    params.Int(0, 0),
				DAFeatures: feats,
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class:         ClassCsi,
		Intermediates: []byte("\""),
		Final:         'p',
		Name:          "SelectVTConformanceLevel",
		Decode: func(params ParamList, _ []byte, _ byte, _ []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:       RespConformanceLevel,
				ModeValue:  params.Int(0, 0),
				ModeNumber: params.Int(1, 0),
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class:         ClassDcs,
		Intermediates: []byte("!"),
		Final:         '|',
		Name:          "TertiaryDeviceAttributesResponse",
		Decode: func(_ ParamList, _ []byte, _ byte, data []byte) (Event, bool) {
			feats := make([]int, 0, len(data))
			for _, b := range data {
				feats = append(feats, int(b))
			}
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:       RespTertiaryDeviceAttributes,
				DAFeatures: feats,
			}}, true
		},
	}))

	must(Register(Descriptor{
		Class:         ClassDcs,
		Intermediates: []byte("$"),
		Final:         'r',
		Name:          "RequestTextAttributesResponse",
		Decode: func(params ParamList, _ []byte, _ byte, data []byte) (Event, bool) {
			return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
				Kind:      RespTextAttributes,
				ModeValue: params.Int(0, 0), // 1 valid request, 0 invalid
				Text:      string(data),
			}}, true
		},
	}))
}

// registerOSCDescriptors wires up the OSC response family
// (color/cwd/shell-integration) named in SPEC_FULL.md.
func registerOSCDescriptors() {
	must(RegisterOSC(4, "PaletteColorResponse", func(payload []byte) (Event, bool) {
		parts := strings.SplitN(string(payload), ";", 2)
		if len(parts) != 2 {
			return Event{}, false
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return Event{}, false
		}
		return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
			Kind: RespColor, ColorIndex: idx, ColorSpec: parts[1],
		}}, true
	}))
	must(RegisterOSC(10, "ForegroundColorResponse", func(payload []byte) (Event, bool) {
		return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
			Kind: RespColor, ColorIndex: -1, ColorSpec: string(payload),
		}}, true
	}))
	must(RegisterOSC(11, "BackgroundColorResponse", func(payload []byte) (Event, bool) {
		return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
			Kind: RespColor, ColorIndex: -2, ColorSpec: string(payload),
		}}, true
	}))
	must(RegisterOSC(7, "WorkingDirectoryResponse", func(payload []byte) (Event, bool) {
		return Event{Kind: EventTerminalResponse, TerminalResponse: TerminalResponse{
			Kind: RespWorkingDirectory, WorkingDirectory: string(payload),
		}}, true
	}))
	must(RegisterOSC(133, "ShellIntegrationMarker", func(payload []byte) (Event, bool) {
		if len(payload) == 0 {
			return Event{}, false
		}
		resp := TerminalResponse{Kind: RespShellIntegration, ShellMarker: payload[0]}
		if payload[0] == 'D' {
			rest := payload[1:]
			rest = bytesTrimPrefix(rest, ';')
			if code, err := strconv.Atoi(string(rest)); err == nil {
				resp.ShellHasExit = true
				resp.ShellExitCode = code
			}
		}
		return Event{Kind: EventTerminalResponse, TerminalResponse: resp}, true
	}))
}

func bytesTrimPrefix(b []byte, c byte) []byte {
	if len(b) > 0 && b[0] == c {
		return b[1:]
	}
	return b
}
