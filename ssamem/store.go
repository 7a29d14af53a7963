// Package ssamem is a minimal, correct, in-memory reference
// implementation of ssacore.Store. Concrete SSA graph storage is a
// consumer concern — this package exists so the PhiPlacer and the
// construction driver can be exercised end-to-end in tests without a
// mocked interface. It is an arena of nodes/blocks/edges addressed by
// dense integer handles, with no optimization passes and no
// persistence.
package ssamem

import "github.com/radeco-go/ssaform/ssacore"

type nodeRec struct {
	data    ssacore.NodeData
	args    []ssacore.ValueRef
	users   []ssacore.ValueRef
	regs    []string
	removed bool
}

type edgeRec struct {
	src, tgt ssacore.ActionRef
	tag      ssacore.EdgeType
	removed  bool
}

type blockRec struct {
	addr      ssacore.MAddress
	out, in   []ssacore.EdgeRef
	registers ssacore.ValueRef
	selector  ssacore.ValueRef
	dynamic   bool
	removed   bool
}

// Store is the reference in-memory ssacore.Store implementation.
type Store struct {
	nodes  []nodeRec // index 0 is the InvalidValue sentinel
	blocks []blockRec
	edges  []edgeRec

	start, exit ssacore.ActionRef
	wholeNames  []string
}

// New creates an empty store. Only the index-0 invalid sentinels of
// the node, block and edge arenas are reserved; no start or exit block
// exists until one is added and marked.
func New() *Store {
	s := &Store{
		nodes:  make([]nodeRec, 1), // reserve index 0
		blocks: make([]blockRec, 1),
		edges:  make([]edgeRec, 1),
	}
	return s
}

func (s *Store) valueRef(idx int) ssacore.ValueRef { return ssacore.ValueRef(idx) }
func (s *Store) actionRef(idx int) ssacore.ActionRef { return ssacore.ActionRef(idx) }
func (s *Store) edgeRef(idx int) ssacore.EdgeRef { return ssacore.EdgeRef(idx) }

func (s *Store) node(v ssacore.ValueRef) *nodeRec {
	if v == 0 || int(v) >= len(s.nodes) {
		return nil
	}
	return &s.nodes[v]
}

func (s *Store) block(a ssacore.ActionRef) *blockRec {
	if a == 0 || int(a) >= len(s.blocks) {
		return nil
	}
	return &s.blocks[a]
}

func (s *Store) edge(e ssacore.EdgeRef) *edgeRec {
	if e == 0 || int(e) >= len(s.edges) {
		return nil
	}
	return &s.edges[e]
}

// --- Blocks ---

func (s *Store) AddBlock(addr ssacore.MAddress) ssacore.ActionRef {
	s.blocks = append(s.blocks, blockRec{addr: addr})
	return s.actionRef(len(s.blocks) - 1)
}

func (s *Store) AddDynamic() ssacore.ActionRef {
	s.blocks = append(s.blocks, blockRec{addr: ssacore.DynamicAddress(), dynamic: true})
	return s.actionRef(len(s.blocks) - 1)
}

func (s *Store) Address(block ssacore.ActionRef) (ssacore.MAddress, bool) {
	b := s.block(block)
	if b == nil {
		return ssacore.MAddress{}, false
	}
	return b.addr, true
}

func (s *Store) MarkStartNode(block ssacore.ActionRef) { s.start = block }
func (s *Store) MarkExitNode(block ssacore.ActionRef)  { s.exit = block }
func (s *Store) StartNode() ssacore.ActionRef          { return s.start }
func (s *Store) ExitNode() ssacore.ActionRef           { return s.exit }

func (s *Store) Blocks() []ssacore.ActionRef {
	out := make([]ssacore.ActionRef, 0, len(s.blocks)-1)
	for i := 1; i < len(s.blocks); i++ {
		if !s.blocks[i].removed {
			out = append(out, s.actionRef(i))
		}
	}
	return out
}

func (s *Store) PredsOf(block ssacore.ActionRef) []ssacore.ActionRef {
	b := s.block(block)
	if b == nil {
		return nil
	}
	out := make([]ssacore.ActionRef, 0, len(b.in))
	for _, er := range b.in {
		if e := s.edge(er); e != nil && !e.removed {
			out = append(out, e.src)
		}
	}
	return out
}

func (s *Store) SuccsOf(block ssacore.ActionRef) []ssacore.ActionRef {
	b := s.block(block)
	if b == nil {
		return nil
	}
	out := make([]ssacore.ActionRef, 0, len(b.out))
	for _, er := range b.out {
		if e := s.edge(er); e != nil && !e.removed {
			out = append(out, e.tgt)
		}
	}
	return out
}

func (s *Store) EdgesOf(block ssacore.ActionRef) []ssacore.EdgeRef {
	b := s.block(block)
	if b == nil {
		return nil
	}
	out := make([]ssacore.EdgeRef, 0, len(b.out))
	for _, er := range b.out {
		if e := s.edge(er); e != nil && !e.removed {
			out = append(out, er)
		}
	}
	return out
}

func (s *Store) edgeOfTag(block ssacore.ActionRef, tag ssacore.EdgeType) ssacore.EdgeRef {
	b := s.block(block)
	if b == nil {
		return s.InvalidEdge()
	}
	for _, er := range b.out {
		if e := s.edge(er); e != nil && !e.removed && e.tag == tag {
			return er
		}
	}
	return s.InvalidEdge()
}

func (s *Store) FalseEdgeOf(block ssacore.ActionRef) ssacore.EdgeRef {
	return s.edgeOfTag(block, ssacore.EdgeFalse)
}
func (s *Store) TrueEdgeOf(block ssacore.ActionRef) ssacore.EdgeRef {
	return s.edgeOfTag(block, ssacore.EdgeTrue)
}
func (s *Store) NextEdgeOf(block ssacore.ActionRef) ssacore.EdgeRef {
	return s.edgeOfTag(block, ssacore.EdgeUncond)
}

func (s *Store) TargetOf(edge ssacore.EdgeRef) ssacore.ActionRef {
	e := s.edge(edge)
	if e == nil {
		return s.InvalidAction()
	}
	return e.tgt
}

func (s *Store) AddControlEdge(src, tgt ssacore.ActionRef, tag ssacore.EdgeType) ssacore.EdgeRef {
	s.edges = append(s.edges, edgeRec{src: src, tgt: tgt, tag: tag})
	er := s.edgeRef(len(s.edges) - 1)
	if b := s.block(src); b != nil {
		b.out = append(b.out, er)
	}
	if b := s.block(tgt); b != nil {
		b.in = append(b.in, er)
	}
	return er
}

func (s *Store) RemoveControlEdge(edge ssacore.EdgeRef) {
	e := s.edge(edge)
	if e == nil || e.removed {
		return
	}
	e.removed = true
}

func (s *Store) InvalidEdge() ssacore.EdgeRef     { return 0 }
func (s *Store) InvalidAction() ssacore.ActionRef { return 0 }

func (s *Store) AddToBlock(node ssacore.ValueRef, block ssacore.ActionRef, addr ssacore.MAddress) {
	// Bookkeeping only: the reference store does not need a
	// node->block index to answer any Store method, since every query
	// the placer issues is already scoped by ValueRef or ActionRef.
	_ = node
	_ = block
	_ = addr
}

func (s *Store) RegistersAt(block ssacore.ActionRef) ssacore.ValueRef {
	b := s.block(block)
	if b == nil {
		return s.InvalidValue()
	}
	if b.registers == 0 {
		b.registers = s.AddOp(ssacore.MOpcode{Kind: ssacore.OpInvalid}, ssacore.ValueInfo{}, nil)
	}
	return b.registers
}

func (s *Store) MarkSelector(node ssacore.ValueRef, block ssacore.ActionRef) {
	if b := s.block(block); b != nil {
		b.selector = node
	}
}

// SelectorOf reports the selector node marked for block, if any. Not
// part of ssacore.Store — a reference-store-only accessor useful for
// tests that assert OpITE-to-selector rewriting.
func (s *Store) SelectorOf(block ssacore.ActionRef) ssacore.ValueRef {
	if b := s.block(block); b != nil {
		return b.selector
	}
	return s.InvalidValue()
}

func (s *Store) MapRegisters(names []string) {
	s.wholeNames = append([]string(nil), names...)
}

// --- Nodes ---

func (s *Store) addNode(data ssacore.NodeData) ssacore.ValueRef {
	s.nodes = append(s.nodes, nodeRec{data: data})
	return s.valueRef(len(s.nodes) - 1)
}

func (s *Store) AddPhi(vt ssacore.ValueInfo) ssacore.ValueRef {
	return s.addNode(ssacore.NodeData{Info: vt, Type: ssacore.NodeType{Kind: ssacore.NodePhi}})
}

func (s *Store) AddConst(v uint64) ssacore.ValueRef {
	return s.addNode(ssacore.NodeData{
		Info: ssacore.ValueInfo{Width: 64},
		Type: ssacore.NodeType{Kind: ssacore.NodeConst, Const: v},
	})
}

func (s *Store) AddUndefined(vt ssacore.ValueInfo) ssacore.ValueRef {
	return s.addNode(ssacore.NodeData{Info: vt, Type: ssacore.NodeType{Kind: ssacore.NodeUndefined}})
}

func (s *Store) AddComment(vt ssacore.ValueInfo, msg string) ssacore.ValueRef {
	return s.addNode(ssacore.NodeData{Info: vt, Type: ssacore.NodeType{Kind: ssacore.NodeComment, Comment: msg}})
}

func (s *Store) AddOp(op ssacore.MOpcode, vt ssacore.ValueInfo, addr *ssacore.MAddress) ssacore.ValueRef {
	_ = addr // the reference store doesn't need the address; the placer tracks it in index_to_addr
	return s.addNode(ssacore.NodeData{Info: vt, Type: ssacore.NodeType{Kind: ssacore.NodeOp, Op: op}})
}

func addUser(n *nodeRec, user ssacore.ValueRef) {
	for _, u := range n.users {
		if u == user {
			return
		}
	}
	n.users = append(n.users, user)
}

func removeUser(n *nodeRec, user ssacore.ValueRef) {
	out := n.users[:0]
	for _, u := range n.users {
		if u != user {
			out = append(out, u)
		}
	}
	n.users = out
}

func (s *Store) PhiUse(phi, arg ssacore.ValueRef) {
	p := s.node(phi)
	if p == nil {
		return
	}
	p.args = append(p.args, arg)
	if a := s.node(arg); a != nil {
		addUser(a, phi)
	}
}

func (s *Store) OpUse(node ssacore.ValueRef, index int, arg ssacore.ValueRef) {
	n := s.node(node)
	if n == nil || index < 0 {
		return
	}
	for len(n.args) <= index {
		n.args = append(n.args, s.InvalidValue())
	}
	if old := n.args[index]; old != s.InvalidValue() {
		if o := s.node(old); o != nil {
			removeUser(o, node)
		}
	}
	n.args[index] = arg
	if a := s.node(arg); a != nil {
		addUser(a, node)
	}
}

func (s *Store) Disconnect(user, used ssacore.ValueRef) {
	u := s.node(user)
	if u == nil {
		return
	}
	for i, a := range u.args {
		if a == used {
			u.args[i] = s.InvalidValue()
			break
		}
	}
	if d := s.node(used); d != nil {
		removeUser(d, user)
	}
}

func (s *Store) Replace(old, new_ ssacore.ValueRef) {
	o := s.node(old)
	if o == nil || old == new_ {
		return
	}
	users := append([]ssacore.ValueRef(nil), o.users...)
	for _, u := range users {
		un := s.node(u)
		if un == nil {
			continue
		}
		for i, a := range un.args {
			if a == old {
				un.args[i] = new_
			}
		}
		if nn := s.node(new_); nn != nil {
			addUser(nn, u)
		}
	}
	// The old node no longer holds onto its own operands.
	for _, a := range o.args {
		if an := s.node(a); an != nil {
			removeUser(an, old)
		}
	}
	o.users = nil
	o.args = nil
	o.removed = true
}

func (s *Store) Remove(node ssacore.ValueRef) {
	n := s.node(node)
	if n == nil {
		return
	}
	for _, a := range n.args {
		if an := s.node(a); an != nil {
			removeUser(an, node)
		}
	}
	n.removed = true
	n.args = nil
	n.users = nil
}

func (s *Store) ArgsOf(node ssacore.ValueRef) []ssacore.ValueRef {
	n := s.node(node)
	if n == nil {
		return nil
	}
	return append([]ssacore.ValueRef(nil), n.args...)
}

func (s *Store) UsesOf(node ssacore.ValueRef) []ssacore.ValueRef {
	n := s.node(node)
	if n == nil {
		return nil
	}
	return append([]ssacore.ValueRef(nil), n.users...)
}

func (s *Store) GetOperands(node ssacore.ValueRef) []ssacore.ValueRef {
	return s.ArgsOf(node)
}

func (s *Store) GetSparseOperands(node ssacore.ValueRef) []ssacore.SparseOperand {
	n := s.node(node)
	if n == nil {
		return nil
	}
	out := make([]ssacore.SparseOperand, 0, len(n.args))
	for i, a := range n.args {
		if a == s.InvalidValue() {
			continue
		}
		out = append(out, ssacore.SparseOperand{Index: i, Node: a})
	}
	return out
}

func (s *Store) GetOpcode(node ssacore.ValueRef) (ssacore.MOpcode, bool) {
	n := s.node(node)
	if n == nil || n.removed {
		return ssacore.MOpcode{}, false
	}
	switch n.data.Type.Kind {
	case ssacore.NodeOp:
		return n.data.Type.Op, true
	case ssacore.NodeConst:
		return ssacore.MOpcode{Kind: ssacore.OpConst, Const: n.data.Type.Const}, true
	default:
		return ssacore.MOpcode{}, false
	}
}

func (s *Store) GetNodeData(node ssacore.ValueRef) (ssacore.NodeData, bool) {
	n := s.node(node)
	if n == nil || n.removed {
		return ssacore.NodeData{}, false
	}
	return n.data, true
}

func (s *Store) SetRegister(node ssacore.ValueRef, name string) {
	n := s.node(node)
	if n == nil {
		return
	}
	for _, r := range n.regs {
		if r == name {
			return
		}
	}
	n.regs = append(n.regs, name)
}

func (s *Store) GetRegister(node ssacore.ValueRef) []string {
	n := s.node(node)
	if n == nil {
		return nil
	}
	return append([]string(nil), n.regs...)
}

func (s *Store) GetUses(node ssacore.ValueRef) []ssacore.ValueRef {
	return s.UsesOf(node)
}

func (s *Store) Nodes() []ssacore.ValueRef {
	out := make([]ssacore.ValueRef, 0, len(s.nodes)-1)
	for i := 1; i < len(s.nodes); i++ {
		if !s.nodes[i].removed {
			out = append(out, s.valueRef(i))
		}
	}
	return out
}

func (s *Store) InvalidValue() ssacore.ValueRef { return 0 }
