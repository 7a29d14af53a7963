package ssacore

// Store is the abstract mutable SSA graph the PhiPlacer and the
// construction driver mutate. It is the minimum surface the placer
// needs; concrete graph storage is a consumer concern (the ssamem
// package ships one reference implementation for tests and for
// driving this library standalone).
//
// Every method here is expected to run in O(1) or O(degree); the
// placer calls them from single-threaded, strictly sequential code
// and never holds two stores at once.
type Store interface {
	// --- Blocks ---

	AddBlock(addr MAddress) ActionRef
	AddDynamic() ActionRef
	Address(block ActionRef) (MAddress, bool)
	MarkStartNode(block ActionRef)
	MarkExitNode(block ActionRef)
	StartNode() ActionRef
	ExitNode() ActionRef
	Blocks() []ActionRef
	PredsOf(block ActionRef) []ActionRef
	SuccsOf(block ActionRef) []ActionRef
	EdgesOf(block ActionRef) []EdgeRef
	FalseEdgeOf(block ActionRef) EdgeRef
	TrueEdgeOf(block ActionRef) EdgeRef
	NextEdgeOf(block ActionRef) EdgeRef
	TargetOf(edge EdgeRef) ActionRef
	AddControlEdge(src, tgt ActionRef, tag EdgeType) EdgeRef
	RemoveControlEdge(edge EdgeRef)
	InvalidEdge() EdgeRef
	InvalidAction() ActionRef
	AddToBlock(node ValueRef, block ActionRef, addr MAddress)
	RegistersAt(block ActionRef) ValueRef
	MarkSelector(node ValueRef, block ActionRef)
	MapRegisters(names []string)

	// --- Nodes ---

	AddPhi(vt ValueInfo) ValueRef
	AddConst(v uint64) ValueRef
	AddUndefined(vt ValueInfo) ValueRef
	AddComment(vt ValueInfo, msg string) ValueRef
	AddOp(op MOpcode, vt ValueInfo, addr *MAddress) ValueRef
	PhiUse(phi, arg ValueRef)
	OpUse(node ValueRef, index int, arg ValueRef)
	Disconnect(user, used ValueRef)
	Replace(old, new_ ValueRef)
	Remove(node ValueRef)
	ArgsOf(node ValueRef) []ValueRef
	UsesOf(node ValueRef) []ValueRef
	GetOperands(node ValueRef) []ValueRef
	GetSparseOperands(node ValueRef) []SparseOperand
	GetOpcode(node ValueRef) (MOpcode, bool)
	GetNodeData(node ValueRef) (NodeData, bool)
	SetRegister(node ValueRef, name string)
	GetRegister(node ValueRef) []string
	GetUses(node ValueRef) []ValueRef
	Nodes() []ValueRef
	InvalidValue() ValueRef
}
