package vtio

import "fmt"

// Class names the introducer family a Descriptor belongs to.
type Class uint8

const (
	ClassCsi Class = iota
	ClassDcs
	ClassEsc
	ClassSs2
	ClassSs3
)

// Descriptor fully describes one recognized CSI/DCS/ESC/SS2/SS3 control
// sequence: its discriminator key (class, private marker, intermediate
// bytes, final byte) and a constructor that turns decoded parameters into
// an Event. Two descriptors must not share the same (class, private,
// intermediates, final) key; Register reports that as an error rather
// than silently shadowing one of them.
//
// OSC sequences are dispatched separately, by numeric command (see
// oscDescriptor and registry.osc below), because their "final byte" is a terminator
// (BEL/ST) rather than a discriminating byte — the trie has nothing
// useful to index on for them.
type Descriptor struct {
	Class         Class
	Private       byte // 0 when the sequence has no private marker
	Intermediates []byte
	Final         byte
	Name          string
	// Decode builds the Event for a matched frame. params is nil for
	// ESC/SS2/SS3 classes (they carry no parameter block). data is the
	// DCS string body (only non-nil for ClassDcs). ok is false when the
	// params don't satisfy the descriptor's schema, in which case the
	// caller falls back to Unknown.
	Decode func(params ParamList, intermediates []byte, final byte, data []byte) (Event, bool)
}

// oscDescriptor describes one OSC command number.
type oscDescriptor struct {
	Name   string
	Decode func(payload []byte) (Event, bool)
}

// registry is the process-wide, immutable-after-freeze descriptor set.
// It is populated by Register/registerOSC calls made from package
// init() (see descriptors.go) before any Parser exists, which stands in
// for a linker-aggregated distributed slice; DESIGN.md names this
// substitution explicitly.
type registry struct {
	descriptors []Descriptor
	osc         map[int]oscDescriptor
	frozen      bool
	trie        *byteTrie
}

var defaultRegistry = &registry{osc: make(map[int]oscDescriptor)}

// Register adds d to the default registry. It returns ErrRegistryFrozen
// once the trie has been built (first Parser construction) and
// ErrDuplicateDescriptor if d's key collides with an already-registered
// descriptor.
func Register(d Descriptor) error {
	return defaultRegistry.register(d)
}

func (r *registry) register(d Descriptor) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	key := descriptorKey(d.Class, d.Private, d.Intermediates, d.Final)
	for _, existing := range r.descriptors {
		if string(descriptorKey(existing.Class, existing.Private, existing.Intermediates, existing.Final)) == string(key) {
			return fmt.Errorf("%w: %s collides with %s", ErrDuplicateDescriptor, d.Name, existing.Name)
		}
	}
	r.descriptors = append(r.descriptors, d)
	return nil
}

// RegisterOSC adds an OSC command decoder to the default registry.
func RegisterOSC(command int, name string, decode func(payload []byte) (Event, bool)) error {
	return defaultRegistry.registerOSC(command, name, decode)
}

func (r *registry) registerOSC(command int, name string, decode func(payload []byte) (Event, bool)) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, exists := r.osc[command]; exists {
		return fmt.Errorf("%w: OSC %d (%s)", ErrDuplicateDescriptor, command, name)
	}
	r.osc[command] = oscDescriptor{Name: name, Decode: decode}
	return nil
}

// classTag is a synthetic leading byte distinguishing trie keys across
// classes; it is never a legal CSI/DCS/ESC/SS2/SS3 introducer byte, so it
// cannot collide with a real private marker or intermediate.
func classTag(c Class) byte {
	switch c {
	case ClassCsi:
		return 'C'
	case ClassDcs:
		return 'D'
	case ClassEsc:
		return 'E'
	case ClassSs2:
		return '2'
	case ClassSs3:
		return '3'
	default:
		return '?'
	}
}

func descriptorKey(c Class, private byte, intermediates []byte, final byte) []byte {
	key := make([]byte, 0, 4+len(intermediates))
	key = append(key, classTag(c), private)
	key = append(key, intermediates...)
	key = append(key, final)
	return key
}

// freeze builds the byte trie from the current descriptor set and marks
// the registry immutable. It is idempotent; the first Parser construction
// calls it, subsequent ones reuse the frozen trie.
func (r *registry) freeze() *byteTrie {
	if r.frozen {
		return r.trie
	}
	t := newByteTrie()
	for i, d := range r.descriptors {
		key := descriptorKey(d.Class, d.Private, d.Intermediates, d.Final)
		if !t.insert(key, i) {
			// A duplicate here means two init()-time Register calls
			// collided; register() should have already caught it, so
			// this is a programming error in a built-in descriptor.
			panic(fmt.Sprintf("vtio: duplicate descriptor key for %s", d.Name))
		}
	}
	r.trie = t
	r.frozen = true
	return t
}

func (r *registry) lookup(idx int) *Descriptor {
	if idx < 0 || idx >= len(r.descriptors) {
		return nil
	}
	return &r.descriptors[idx]
}
