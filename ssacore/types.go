// Package ssacore defines the data model and the abstract SSA store
// contract through which the PhiPlacer and the SSA construction
// driver talk to a concrete SSA graph. The concrete graph storage
// itself is an external collaborator; this package only defines what
// the placer requires of it.
package ssacore

import "fmt"

// MAddress is the sole spatial coordinate used by the placer: a
// 64-bit machine address plus a 16-bit intra-instruction offset.
// Ordering is lexicographic on (Address, Offset).
type MAddress struct {
	Address uint64
	Offset  uint16
}

// NewMAddress builds an MAddress from its two components.
func NewMAddress(address uint64, offset uint16) MAddress {
	return MAddress{Address: address, Offset: offset}
}

// Less reports whether m sorts strictly before o.
func (m MAddress) Less(o MAddress) bool {
	if m.Address != o.Address {
		return m.Address < o.Address
	}
	return m.Offset < o.Offset
}

// Compare returns -1, 0, or 1 as m is less than, equal to, or greater
// than o.
func (m MAddress) Compare(o MAddress) int {
	switch {
	case m.Less(o):
		return -1
	case o.Less(m):
		return 1
	default:
		return 0
	}
}

func (m MAddress) String() string {
	return fmt.Sprintf("%#x.%d", m.Address, m.Offset)
}

// DynamicAddress is the address of the synthetic dynamic-entry block:
// the maximal machine address with offset 0, which sorts after every
// real instruction address.
func DynamicAddress() MAddress {
	return MAddress{Address: ^uint64(0), Offset: 0}
}

// VarId identifies a whole register (variable). VarId→name and
// VarId→ValueInfo are fixed at initialization by the placer's
// AddVariables.
type VarId uint64

// ValueRef is an opaque handle to an SSA value node, minted and owned
// by the Store implementation. InvalidValue (obtained from
// Store.InvalidValue) denotes "no node".
type ValueRef uint64

// ActionRef is an opaque handle to a basic block in the SSA store.
type ActionRef uint64

// EdgeRef is an opaque handle to a control-flow edge in the SSA store.
type EdgeRef uint64

// EdgeType tags a control-flow edge. The numeric values are fixed by
// the wire contract with the CFG driver: False=0, True=1,
// Unconditional=2.
type EdgeType uint8

const (
	EdgeFalse  EdgeType = 0
	EdgeTrue   EdgeType = 1
	EdgeUncond EdgeType = 2
)

// OpKind enumerates the opcodes that carry algorithmic significance
// to the placer and the construction driver. Opcodes without
// placer-visible meaning (load/store addressing modes, the full
// arithmetic set, etc.) are represented too, since the driver must
// round-trip them into the store, but the placer itself only inspects
// OpEq, OpWiden, OpNarrow, OpITE, OpJmp, OpCJmp, OpAnd, OpOr, OpLsl,
// OpLsr, and OpConst.
type OpKind uint8

const (
	OpInvalid OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor
	OpNot
	OpLsl
	OpLsr
	OpAsr
	OpWiden  // Width holds the target width
	OpNarrow // Width holds the target width
	OpEq     // identity: dst = src, no new node
	OpCmp
	OpJmp
	OpCJmp
	OpITE
	OpLoad
	OpStore
	OpConst // Const holds the value; usually built via Store.AddConst instead
)

// MOpcode is a single instruction/op-node opcode. Width and Const are
// only meaningful for the OpKind values that document their use
// above (OpWiden/OpNarrow carry Width, OpConst carries Const).
type MOpcode struct {
	Kind  OpKind
	Width uint16
	Const uint64
}

func (op MOpcode) String() string {
	switch op.Kind {
	case OpWiden:
		return fmt.Sprintf("OpWiden(%d)", op.Width)
	case OpNarrow:
		return fmt.Sprintf("OpNarrow(%d)", op.Width)
	case OpConst:
		return fmt.Sprintf("OpConst(%#x)", op.Const)
	default:
		return fmt.Sprintf("Op%d", op.Kind)
	}
}

// Widen builds an OpWiden opcode targeting the given width.
func Widen(width uint16) MOpcode { return MOpcode{Kind: OpWiden, Width: width} }

// Narrow builds an OpNarrow opcode targeting the given width.
func Narrow(width uint16) MOpcode { return MOpcode{Kind: OpNarrow, Width: width} }

// ValueInfo carries a node's bit-width and a scalar/reference hint.
type ValueInfo struct {
	Width       uint16
	IsReference bool
}

// NodeKind tags the shape of a NodeType.
type NodeKind uint8

const (
	NodePhi NodeKind = iota
	NodeOp
	NodeConst
	NodeUndefined
	NodeComment
)

// NodeType is the tag carried by every SSA value node.
type NodeType struct {
	Kind    NodeKind
	Op      MOpcode // valid when Kind == NodeOp
	Const   uint64  // valid when Kind == NodeConst
	Comment string  // valid when Kind == NodeComment
}

// NodeData is what the store reports back about a node on query.
type NodeData struct {
	Info ValueInfo
	Type NodeType
}

// SparseOperand is one (index, node) pair as returned by
// Store.GetSparseOperands — the non-constant operands of a node,
// paired with their operand-slot index.
type SparseOperand struct {
	Index int
	Node  ValueRef
}
