package vtio

import (
	"io"
	"log"
)

// Named loggers mirror the emulator's logE/logW/logT/logI/logU split: one
// logger per concern rather than a single leveled facade. They default to
// io.Discard so embedding a Parser costs nothing unless a caller opts in.
var (
	logE = log.New(io.Discard, "vtio: error: ", log.Ldate|log.Ltime|log.Lshortfile)
	logW = log.New(io.Discard, "vtio: warn: ", log.Ldate|log.Ltime|log.Lshortfile)
	logT = log.New(io.Discard, "vtio: trace: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// SetLogOutput directs the package's error, warning and trace loggers to w.
// Passing nil restores the default (discard) behavior. Intended for
// debugging a misbehaving input stream; production embedders normally
// never call this.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logE.SetOutput(w)
	logW.SetOutput(w)
	logT.SetOutput(w)
}
