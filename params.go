package vtio

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Parameter codecs. A CSI/DCS parameter block is an ordered list of
// semicolon-separated positions, each itself an ordered list of
// colon-separated sub-values. Integers are base-10, non-negative, up to
// the uint32 range; an empty position or sub-value means "absent", which
// callers resolve against a schema-declared default rather than zero —
// zero and absent are different things in several descriptors (e.g. the
// Kitty event-type sub-parameter defaults to Press=1, not 0).
//
// paramAbsent is the sentinel stored for an empty position/sub-value.
const paramAbsent = -1

// ParamList is the decoded form of a parameter block: one []int per
// semicolon-separated position, each containing one int per
// colon-separated sub-value (almost always length 1).
type ParamList [][]int

// parseParams decodes a raw CSI/DCS parameter byte string into a
// ParamList. Malformed (non-digit, too large) sub-values decode to
// paramAbsent rather than aborting the whole parse — a single bad
// sub-parameter should not make the rest of a recognized frame
// unreadable, it is the descriptor-level schema check that ultimately
// decides whether the frame as a whole is Unknown.
func parseParams(raw []byte) ParamList {
	if len(raw) == 0 {
		return nil
	}
	positions := strings.Split(string(raw), ";")
	out := make(ParamList, len(positions))
	for i, pos := range positions {
		subs := strings.Split(pos, ":")
		vals := make([]int, len(subs))
		for j, s := range subs {
			if s == "" {
				vals[j] = paramAbsent
				continue
			}
			n, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				vals[j] = paramAbsent
				continue
			}
			vals[j] = int(n)
		}
		out[i] = vals
	}
	return out
}

// Int returns the first sub-value at position pos (0-based), or def if
// pos is out of range, empty, or malformed.
func (p ParamList) Int(pos, def int) int {
	return p.SubInt(pos, 0, def)
}

// SubInt returns the colon-separated sub-value at (pos, sub), or def.
func (p ParamList) SubInt(pos, sub, def int) int {
	if pos < 0 || pos >= len(p) {
		return def
	}
	group := p[pos]
	if sub < 0 || sub >= len(group) || group[sub] == paramAbsent {
		return def
	}
	return group[sub]
}

// HasSub reports whether a sub-value was explicitly present (not merely
// defaulted) at (pos, sub). Several descriptors need to distinguish
// "absent" from "present but zero" — e.g. the Kitty shifted-key
// sub-parameter.
func (p ParamList) HasSub(pos, sub int) bool {
	if pos < 0 || pos >= len(p) {
		return false
	}
	group := p[pos]
	return sub >= 0 && sub < len(group) && group[sub] != paramAbsent
}

// Len returns the number of semicolon-separated positions.
func (p ParamList) Len() int { return len(p) }

// SubLen returns the number of colon-separated sub-values at pos.
func (p ParamList) SubLen(pos int) int {
	if pos < 0 || pos >= len(p) {
		return 0
	}
	return len(p[pos])
}

// Tail returns every sub-value from position pos onward as a flat int
// slice, skipping absent entries — used for variadic tail vectors such
// as the Kitty CSI-u "text" position, which may carry several
// colon-separated codepoints.
func (p ParamList) Tail(pos int) []int {
	if pos < 0 || pos >= len(p) {
		return nil
	}
	out := make([]int, 0, len(p)-pos)
	for _, group := range p[pos:] {
		for _, v := range group {
			if v != paramAbsent {
				out = append(out, v)
			}
		}
	}
	return out
}

// encodeParams is the inverse of parseParams: each position's sub-values
// are colon-joined, positions are semicolon-joined. A paramAbsent
// sub-value encodes as an empty field.
func encodeParams(p ParamList) []byte {
	var b strings.Builder
	for i, group := range p {
		if i > 0 {
			b.WriteByte(';')
		}
		for j, v := range group {
			if j > 0 {
				b.WriteByte(':')
			}
			if v != paramAbsent {
				b.WriteString(strconv.Itoa(v))
			}
		}
	}
	return []byte(b.String())
}

// oneParam builds a single-position, single-value ParamList — a common
// shape for encoders (e.g. "CSI Ps n").
func oneParam(v int) ParamList { return ParamList{{v}} }

// splitOSC splits an OSC payload at the first ';' into the numeric
// command and the remaining payload bytes.
// ok is false if the prefix before ';' (or the whole string, if there is
// no ';') is not a decimal number.
func splitOSC(data []byte) (cmd int, payload []byte, ok bool) {
	idx := -1
	for i, b := range data {
		if b == ';' {
			idx = i
			break
		}
	}
	head := data
	if idx >= 0 {
		head = data[:idx]
	}
	n, err := strconv.ParseUint(string(head), 10, 32)
	if err != nil {
		return 0, nil, false
	}
	if idx < 0 {
		return int(n), nil, true
	}
	return int(n), data[idx+1:], true
}

// maxAssociatedTextBytes bounds the Kitty CSI-u "associated text"
// sub-parameter after UTF-8 encoding. The sub-parameter is already
// constrained upstream by the CSI parameter buffer, but a terminal
// reporting a long codepoint run (e.g. an IME composing a whole word)
// can still exceed what a keystroke's worth of text should plausibly
// be, so it is cut with truncateGraphemeSafe.
const maxAssociatedTextBytes = 64

// parseTextCodepoints decodes the Kitty CSI-u "text" sub-parameter list
// (colon-separated Unicode codepoints) into a UTF-8 string, using
// uniseg to make sure truncation/measurement downstream never splits a
// grapheme cluster the terminal intended as one unit.
func parseTextCodepoints(vals []int) string {
	if len(vals) == 0 {
		return ""
	}
	runes := make([]rune, 0, len(vals))
	for _, v := range vals {
		if v > 0 {
			runes = append(runes, rune(v))
		}
	}
	return truncateGraphemeSafe(string(runes), maxAssociatedTextBytes)
}

// truncateGraphemeSafe shortens s to at most max bytes without splitting
// a grapheme cluster. parseTextCodepoints uses it to bound Kitty
// associated text; decoder.overflowPaste also calls it, but there s is
// never longer than max, so it is returned unchanged. A string of at
// most max bytes is always returned as is, whatever its last cluster.
// Chopping mid-cluster would hand a consumer half of
// a combining sequence or a flag emoji, which is worse than handing back
// slightly fewer bytes.
func truncateGraphemeSafe(s string, max int) string {
	if len(s) <= max {
		return s
	}
	out := 0
	rest := s
	for out < max && rest != "" {
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		if out+len(cluster) > max {
			break
		}
		out += len(cluster)
		rest = rest[len(cluster):]
	}
	return s[:out]
}
