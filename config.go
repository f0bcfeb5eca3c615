package vtio

// Config holds the bounded-buffer sizes and initial keyboard-protocol
// assumptions for a Parser. The zero Config is not valid; use
// NewParser(options...) or DefaultConfig().
type Config struct {
	// CSIParamBufferSize bounds the raw CSI/DCS header parameter and
	// intermediate-byte accumulator. Default 256.
	CSIParamBufferSize int
	// PayloadBufferSize bounds OSC/DCS/PM/APC payload accumulation and
	// bracketed-paste capture. Default 4096.
	PayloadBufferSize int
	// PasteWatchdogWindow is carried on Config but not read by the
	// decoder: bracketed-paste capture keeps the whole payload, bounded by
	// PayloadBufferSize, and X10 mouse capture always takes exactly three
	// bytes. Default 16.
	PasteWatchdogWindow int
	// KeyboardFlags seeds the value Parser.KeyboardFlags reports. The
	// decoder does not consult it: legacy and CSI-u sequences decode the
	// same way whatever flags are set.
	KeyboardFlags KeyboardFlags
}

// DefaultConfig returns the package's default bounds with no Kitty
// keyboard flags assumed active.
func DefaultConfig() Config {
	return Config{
		CSIParamBufferSize:  256,
		PayloadBufferSize:   4096,
		PasteWatchdogWindow: 16,
	}
}

// Option configures a Config via NewParser. The functional-option shape
// mirrors this codebase's other multi-argument emulator constructors
// while staying extensible without breaking callers as options are
// added.
type Option func(*Config)

func WithParamBufferSize(n int) Option {
	return func(c *Config) { c.CSIParamBufferSize = n }
}

func WithPayloadBufferSize(n int) Option {
	return func(c *Config) { c.PayloadBufferSize = n }
}

func WithKeyboardFlags(flags KeyboardFlags) Option {
	return func(c *Config) { c.KeyboardFlags = flags }
}
