// Package construct drives PhiPlacer SSA construction over a
// pre-built control-flow graph of basic blocks containing linear
// three-address instructions.
package construct

import "github.com/radeco-go/ssaform/ssacore"

// MValKind tags what an instruction operand or destination refers to.
type MValKind uint8

const (
	// MValUnknown covers every operand kind with no SSA-visible
	// value (unknown, lifter-internal, absent): all of them resolve
	// to the store's invalid value on read, and are no-ops on write.
	// It is the zero value, so a zero-initialized MVal (an absent
	// second operand, say) behaves correctly without an explicit tag.
	MValUnknown MValKind = iota
	MValRegister
	MValTemp
	MValConst
)

// MVal is one operand or destination slot of a three-address
// instruction.
type MVal struct {
	Kind  MValKind
	Name  string // register or temporary name; MValRegister/MValTemp
	Value uint64 // MValConst
	Width uint16 // MValConst's bit width, 0 meaning 64
}

// Reg builds a register-kind operand.
func Reg(name string) MVal { return MVal{Kind: MValRegister, Name: name} }

// Temp builds a temporary-kind operand.
func Temp(name string) MVal { return MVal{Kind: MValTemp, Name: name} }

// Const builds a constant-kind operand of the given width (0 means 64).
func Const(value uint64, width uint16) MVal {
	return MVal{Kind: MValConst, Value: value, Width: width}
}

// Instr is one linear three-address instruction: dst = op1 `Op` op2.
// Op2 and Dst are left at their zero value for instructions that
// don't use them (e.g. OpJmp has neither).
type Instr struct {
	Op      ssacore.MOpcode
	Dst     MVal
	Op1     MVal
	Op2     MVal
	DstType ssacore.ValueInfo // width/reference-ness of the result node
}

// Block is one basic block: the address its first instruction starts
// at, and its instructions in execution order.
type Block struct {
	Addr   ssacore.MAddress
	Instrs []Instr
}

// Edge is one control-flow edge between two blocks, identified by
// their start addresses.
type Edge struct {
	From, To ssacore.MAddress
	Type     ssacore.EdgeType
}

// CFG is the minimal input shape the construction driver walks: a set
// of blocks in processing order, the control edges between them, and
// the entry block's address.
type CFG struct {
	Blocks []Block
	Edges  []Edge
	Entry  ssacore.MAddress
}
