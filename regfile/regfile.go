// Package regfile holds the sub-register description table: a lookup
// from a sub-register name (e.g. "al") to the whole register it
// slices into and the bit offset/width of that slice. The
// register-description loader that would populate this from a real
// CPU model is an external collaborator — this package only owns the
// small, already-resolved data structure the placer's register
// lowering reads from.
package regfile

import "github.com/radeco-go/ssaform/ssacore"

// Subregister describes a named bit-slice of a whole architectural
// register: which whole register (Base) it slices into, the bit
// offset (Shift) of the slice's low bit, and the slice's bit Width.
type Subregister struct {
	Base  ssacore.VarId
	Shift uint64
	Width uint64
}

// SubRegisterFile maps sub-register names to their Subregister
// description, and whole-register VarIds to their canonical name and
// ValueInfo.
type SubRegisterFile struct {
	subs           map[string]Subregister
	WholeNames     []string
	WholeRegisters []ssacore.ValueInfo
}

// New builds a SubRegisterFile from an already-resolved sub-register
// table and the whole-register name/type lists (indexed by VarId).
func New(subs map[string]Subregister, wholeNames []string, wholeRegisters []ssacore.ValueInfo) *SubRegisterFile {
	m := make(map[string]Subregister, len(subs))
	for k, v := range subs {
		m[k] = v
	}
	return &SubRegisterFile{
		subs:           m,
		WholeNames:     append([]string(nil), wholeNames...),
		WholeRegisters: append([]ssacore.ValueInfo(nil), wholeRegisters...),
	}
}

// Subregister looks up a sub-register by name. ok is false for
// unknown names (e.g. floating-point registers this model does not
// represent).
func (f *SubRegisterFile) Subregister(name string) (Subregister, bool) {
	s, ok := f.subs[name]
	return s, ok
}

// Name returns the canonical name of the whole register identified by
// id, if any.
func (f *SubRegisterFile) Name(id ssacore.VarId) (string, bool) {
	if int(id) < 0 || int(id) >= len(f.WholeNames) {
		return "", false
	}
	return f.WholeNames[id], true
}
