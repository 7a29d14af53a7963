// Package placer implements lazy, dominance-free SSA construction in
// the style of Braun et al., "Simple and Efficient Construction of
// SSA Form": variables are written and read against basic blocks as
// they're discovered, ϕ nodes are inserted only where a read actually
// needs one, and trivial ϕs are eliminated eagerly rather than through
// a separate dominance-frontier pass.
package placer

import (
	"fmt"

	"github.com/radeco-go/ssaform/regfile"
	"github.com/radeco-go/ssaform/rtrace"
	"github.com/radeco-go/ssaform/ssacore"
)

// PhiPlacer drives SSA construction against an ssacore.Store. It owns
// no graph storage itself — only the bookkeeping Braun's algorithm
// needs on top of a store: each variable's definition history,
// incomplete ϕs awaiting a seal, the block address table, and the
// node→address map used to resolve which block a node belongs to.
type PhiPlacer struct {
	store   ssacore.Store
	regfile *regfile.SubRegisterFile

	variableTypes []ssacore.ValueInfo
	currentDef    []*orderedAddrMap[ssacore.ValueRef]

	sealedBlocks   map[ssacore.ActionRef]bool
	incompletePhis map[ssacore.MAddress]map[ssacore.VarId]ssacore.ValueRef
	blocks         *orderedAddrMap[ssacore.ActionRef]

	indexToAddr map[ssacore.ValueRef]ssacore.MAddress
	outputs     map[ssacore.ValueRef]ssacore.VarId

	incompletePropagation map[ssacore.ValueRef]bool
}

// New builds a PhiPlacer over an already-constructed (possibly empty)
// store and register file.
func New(store ssacore.Store, rf *regfile.SubRegisterFile) *PhiPlacer {
	return &PhiPlacer{
		store:                 store,
		regfile:               rf,
		sealedBlocks:          map[ssacore.ActionRef]bool{},
		incompletePhis:        map[ssacore.MAddress]map[ssacore.VarId]ssacore.ValueRef{},
		blocks:                &orderedAddrMap[ssacore.ActionRef]{},
		indexToAddr:           map[ssacore.ValueRef]ssacore.MAddress{},
		outputs:               map[ssacore.ValueRef]ssacore.VarId{},
		incompletePropagation: map[ssacore.ValueRef]bool{},
	}
}

// AddVariables registers the set of whole-register variables the
// placer tracks, in VarId order (index 0 is VarId 0, and so on).
func (p *PhiPlacer) AddVariables(types []ssacore.ValueInfo) {
	for _, vt := range types {
		p.variableTypes = append(p.variableTypes, vt)
		p.currentDef = append(p.currentDef, &orderedAddrMap[ssacore.ValueRef]{})
	}
}

// --- Block bookkeeping ---

// Store returns the underlying SSA store, for callers (such as the
// construction driver) that need to issue store operations the
// placer itself has no opinion about, e.g. wiring an op node's
// operands or marking a branch selector.
func (p *PhiPlacer) Store() ssacore.Store { return p.store }

// InvalidValue is a convenience forward to the store's invalid-value
// sentinel.
func (p *PhiPlacer) InvalidValue() ssacore.ValueRef { return p.store.InvalidValue() }

// BlockOf exposes blockOf to callers outside the package (the
// construction driver needs it to resolve which block a CJmp's
// selector belongs to).
func (p *PhiPlacer) BlockOf(addr ssacore.MAddress) ssacore.ActionRef { return p.blockOf(addr) }

func (p *PhiPlacer) addrOf(block ssacore.ActionRef) ssacore.MAddress {
	a, ok := p.store.Address(block)
	if !ok {
		panic("ssaform: block has no recorded address")
	}
	return a
}

// blockOf returns the block owning addr: the greatest block-start
// address <= addr, with one exception — the start block claims only
// its own exact address, never a later one, since "before the first
// instruction" addresses belong to no block.
func (p *PhiPlacer) blockOf(addr ssacore.MAddress) ssacore.ActionRef {
	startBlock := p.store.StartNode()
	startAddr, _ := p.store.Address(startBlock)

	last := p.store.InvalidAction()
	for i := p.blocks.Len() - 1; i >= 0; i-- {
		baddr, block := p.blocks.At(i)
		if baddr == startAddr && baddr != addr {
			last = p.store.InvalidAction()
		} else {
			last = block
		}
		if baddr.Compare(addr) <= 0 {
			break
		}
	}
	return last
}

func (p *PhiPlacer) newBlock(at ssacore.MAddress) ssacore.ActionRef {
	if b, ok := p.blocks.Get(at); ok {
		return b
	}
	block := p.store.AddBlock(at)
	p.incompletePhis[at] = map[ssacore.VarId]ssacore.ValueRef{}
	return block
}

// MarkStartNode and MarkExitNode delegate the corresponding store
// markers; the placer has no extra bookkeeping for them.
func (p *PhiPlacer) MarkStartNode(block ssacore.ActionRef) { p.store.MarkStartNode(block) }
func (p *PhiPlacer) MarkExitNode(block ssacore.ActionRef)  { p.store.MarkExitNode(block) }

// AddEdge connects the blocks owning source and target with a tagged
// control edge. Both addresses must already own a block.
func (p *PhiPlacer) AddEdge(source, target ssacore.MAddress, cftype ssacore.EdgeType) {
	srcBlock := p.blockOf(source)
	tgtBlock := p.blockOf(target)
	if srcBlock == p.store.InvalidAction() || tgtBlock == p.store.InvalidAction() {
		panic("ssaform: add_edge: source or target address owns no block")
	}
	p.store.AddControlEdge(srcBlock, tgtBlock, cftype)
}

// MaybeAddEdge adds an unconditional fallthrough edge from source's
// block to target's block, but only if source's block does not
// already have any outgoing edge (a block that already ends in a jump
// or conditional branch never gets an implicit fallthrough).
func (p *PhiPlacer) MaybeAddEdge(source, target ssacore.MAddress) {
	srcBlock := p.blockOf(source)
	if srcBlock == p.store.InvalidAction() {
		panic("ssaform: maybe_add_edge: source address owns no block")
	}
	if len(p.store.EdgesOf(srcBlock)) != 0 {
		return
	}
	tgtBlock := p.blockOf(target)
	if tgtBlock != srcBlock {
		p.store.AddControlEdge(srcBlock, tgtBlock, ssacore.EdgeUncond)
	}
}

// AddBlock records that a block starts at addr. If current is given,
// it's the address execution was at just before reaching addr (used
// to add a fallthrough/branch edge into the new block); edgeType tags
// that edge. If current is given and lies beyond addr (a backward
// jump) and addr falls strictly inside an already-known block, that
// block is split in two at addr, and every operand of a node in the
// new lower block that still refers to a definition left in the upper
// block is re-resolved via a fresh ϕ-aware read, exactly as if the
// split had always been there.
func (p *PhiPlacer) AddBlock(at ssacore.MAddress, current *ssacore.MAddress, edgeType *ssacore.EdgeType) ssacore.ActionRef {
	seen := false
	if current != nil && current.Compare(at) > 0 {
		seen = p.blockOf(at) != p.store.InvalidAction()
	}

	upperBlock := p.store.InvalidAction()
	if seen {
		upperBlock = p.blockOf(at)
	}

	lowerBlock := p.newBlock(at)

	if edgeType != nil && current != nil {
		currentBlock := p.blockOf(*current)
		p.store.AddControlEdge(currentBlock, lowerBlock, *edgeType)
	}

	if upperBlock == lowerBlock {
		return upperBlock
	}

	if !seen {
		p.blocks.Insert(at, lowerBlock)
		return lowerBlock
	}

	rtrace.Trace("add_block: split at=%s upper=%d lower=%d", at, upperBlock, lowerBlock)
	p.splitBlock(at, upperBlock, lowerBlock)
	return lowerBlock
}

// splitBlock carves lowerBlock out of the tail of upperBlock at
// address at: it retargets upperBlock's outgoing edges onto
// lowerBlock, adds the fallthrough edge upperBlock->lowerBlock, and
// rewires every operand that crossed the new boundary to go through a
// ϕ-aware variable read instead of the stale direct reference.
func (p *PhiPlacer) splitBlock(at ssacore.MAddress, upperBlock, lowerBlock ssacore.ActionRef) {
	type taggedEdge struct {
		edge ssacore.EdgeRef
		tag  ssacore.EdgeType
	}
	outgoing := []taggedEdge{
		{p.store.FalseEdgeOf(upperBlock), ssacore.EdgeFalse},
		{p.store.TrueEdgeOf(upperBlock), ssacore.EdgeTrue},
		{p.store.NextEdgeOf(upperBlock), ssacore.EdgeUncond},
	}
	for _, oe := range outgoing {
		if oe.edge == p.store.InvalidEdge() {
			continue
		}
		target := p.store.TargetOf(oe.edge)
		if target != lowerBlock {
			p.store.AddControlEdge(lowerBlock, target, oe.tag)
			p.store.RemoveControlEdge(oe.edge)
		}
	}
	p.store.AddControlEdge(upperBlock, lowerBlock, ssacore.EdgeUncond)
	p.blocks.Insert(at, lowerBlock)

	entries := p.sortedIndexToAddr()
	for _, e := range entries {
		if e.addr.Compare(at) < 0 {
			continue
		}
		if blk := p.blockOf(e.addr); blk != p.store.InvalidAction() && blk != lowerBlock {
			break
		}
		p.rewireCrossedOperands(e.node, upperBlock, at)
	}
}

type nodeAddr struct {
	node ssacore.ValueRef
	addr ssacore.MAddress
}

func (p *PhiPlacer) sortedIndexToAddr() []nodeAddr {
	out := make([]nodeAddr, 0, len(p.indexToAddr))
	for n, a := range p.indexToAddr {
		out = append(out, nodeAddr{n, a})
	}
	sortNodeAddrs(out)
	return out
}

func (p *PhiPlacer) rewireCrossedOperands(node ssacore.ValueRef, upperBlock ssacore.ActionRef, at ssacore.MAddress) {
	for _, so := range p.store.GetSparseOperands(node) {
		if opc, ok := p.store.GetOpcode(so.Node); ok && opc.Kind == ssacore.OpConst {
			continue
		}
		operandAddr, ok := p.indexToAddr[so.Node]
		if !ok {
			continue
		}
		if p.blockOf(operandAddr) != upperBlock {
			continue
		}
		varID, ok := p.outputs[so.Node]
		if !ok {
			// an intermediate (e.g. a widen/narrow cast) that never
			// became a variable's current definition: nothing to
			// rebind it to, leave the direct reference in place.
			continue
		}
		p.store.Disconnect(node, so.Node)
		atCopy := at
		replacement := p.readVariableRecursive(&atCopy, varID)
		p.store.OpUse(node, so.Index, replacement)
	}
}

// AddDynamic creates the synthetic dynamic-entry block at the maximal
// address — the origin of live-in register values for externally
// entered control flows — and immediately syncs its register-state
// container against the variables live at that point.
func (p *PhiPlacer) AddDynamic() ssacore.ActionRef {
	action := p.store.AddDynamic()
	addr := ssacore.DynamicAddress()
	p.blocks.Insert(addr, action)
	p.incompletePhis[addr] = map[ssacore.VarId]ssacore.ValueRef{}
	p.SyncRegisterState(action)
	return action
}

// SyncRegisterState fills block's register-state container with the
// value of every tracked variable as read at the block's own address.
func (p *PhiPlacer) SyncRegisterState(block ssacore.ActionRef) {
	rs := p.store.RegistersAt(block)
	for vid := range p.variableTypes {
		addr := p.addrOf(block)
		val := p.ReadVariable(&addr, ssacore.VarId(vid))
		p.store.OpUse(rs, vid, val)
	}
}

// AssociateBlock records that node belongs to the block owning addr.
func (p *PhiPlacer) AssociateBlock(node ssacore.ValueRef, addr ssacore.MAddress) {
	p.store.AddToBlock(node, p.blockOf(addr), addr)
}

// GatherExits connects every block with no successors to the store's
// exit node. It requires an exit node to have been marked; without one
// there is nothing to gather to.
func (p *PhiPlacer) GatherExits() {
	exit := p.store.ExitNode()
	if exit == p.store.InvalidAction() {
		return
	}
	for _, block := range p.store.Blocks() {
		if block == exit {
			continue
		}
		if len(p.store.SuccsOf(block)) == 0 {
			p.store.AddControlEdge(block, exit, ssacore.EdgeUncond)
		}
	}
}

// --- Variable read/write ---

// WriteVariable records value as var's current definition at addr,
// and if var has a whole-register name, tags the node with it.
func (p *PhiPlacer) WriteVariable(addr ssacore.MAddress, varID ssacore.VarId, value ssacore.ValueRef) {
	if name, ok := p.regfile.Name(varID); ok {
		p.store.SetRegister(value, name)
	}
	p.currentDef[varID].Insert(addr, value)
	p.outputs[value] = varID
	rtrace.Trace("write_variable var=%d addr=%s value=%d", varID, addr, value)
}

// ReadVariable resolves var's value at addr, inserting ϕ nodes along
// unsealed or merging predecessors as needed. addr may advance (its
// Offset increases) as a side effect, since a ϕ node placed along the
// way consumes the next free slot at this address.
func (p *PhiPlacer) ReadVariable(addr *ssacore.MAddress, varID ssacore.VarId) ssacore.ValueRef {
	if v, ok := p.currentDefInBlock(varID, *addr); ok {
		return v
	}
	return p.readVariableRecursive(addr, varID)
}

// currentDefAt scans var's definition history from the largest
// address down and returns the first entry that either shares addr's
// block or sits at/before addr. Scanning from the top means that, for
// two entries in the same block, the most recent one wins outright
// even if its address is numerically greater than addr — which is
// exactly what a block sealed after its own back-edge was recorded
// needs: the phi placeholder written at the block's start address
// must yield to whatever the loop body's last write resolved to.
func (p *PhiPlacer) currentDefAt(varID ssacore.VarId, addr ssacore.MAddress) (ssacore.MAddress, ssacore.ValueRef, bool) {
	seq := p.currentDef[varID]
	block := p.blockOf(addr)
	for i := seq.Len() - 1; i >= 0; i-- {
		a, v := seq.At(i)
		if p.blockOf(a) != block && a.Compare(addr) > 0 {
			continue
		}
		return a, v, true
	}
	return ssacore.MAddress{}, 0, false
}

// currentDefInBlock implements the "local" half of read_variable: a
// current_def entry that both satisfies currentDefAt and actually
// belongs to addr's own block.
func (p *PhiPlacer) currentDefInBlock(varID ssacore.VarId, addr ssacore.MAddress) (ssacore.ValueRef, bool) {
	a, v, ok := p.currentDefAt(varID, addr)
	if !ok {
		return 0, false
	}
	if p.blockOf(a) != p.blockOf(addr) {
		return 0, false
	}
	return v, true
}

func (p *PhiPlacer) readVariableRecursive(addr *ssacore.MAddress, varID ssacore.VarId) ssacore.ValueRef {
	block := p.blockOf(*addr)
	if block == p.store.InvalidAction() {
		panic("ssaform: read_variable_recursive: address owns no block")
	}
	vt := p.variableTypes[varID]

	var val ssacore.ValueRef
	if p.sealedBlocks[block] {
		preds := p.store.PredsOf(block)
		switch len(preds) {
		case 1:
			predAddr := p.addrOf(preds[0])
			val = p.ReadVariable(&predAddr, varID)
		default:
			phi := p.AddPhi(addr, vt)
			p.WriteVariable(*addr, varID, phi) // break potential read cycles
			val = p.addPhiOperands(block, varID, phi)
		}
	} else {
		blockAddr := p.addrOf(block)
		m := p.incompletePhis[blockAddr]
		if m == nil {
			m = map[ssacore.VarId]ssacore.ValueRef{}
			p.incompletePhis[blockAddr] = m
		}
		if existing, ok := m[varID]; ok {
			val = existing
		} else {
			val = p.AddPhi(addr, vt)
			m[varID] = val
			rtrace.Trace("read_variable_recursive: incomplete phi=%d var=%d addr=%s block=%s", val, varID, addr, blockAddr)
		}
	}
	p.WriteVariable(*addr, varID, val)
	return val
}

// addPhiOperands fills phi's operand list from block's predecessors
// and immediately tries to reduce it if it turns out to be trivial.
func (p *PhiPlacer) addPhiOperands(block ssacore.ActionRef, varID ssacore.VarId, phi ssacore.ValueRef) ssacore.ValueRef {
	for _, pred := range p.store.PredsOf(block) {
		predAddr := p.addrOf(pred)
		operand := p.ReadVariable(&predAddr, varID)
		rtrace.Trace("add_phi_operands: phi=%d var=%d pred=%s operand=%d", phi, varID, predAddr, operand)
		p.store.PhiUse(phi, operand)
		if len(p.store.GetRegister(phi)) == 0 {
			p.propagateReginfo(phi)
		}
	}
	return p.tryRemoveTrivialPhi(phi)
}

// tryRemoveTrivialPhi collapses phi to its single distinct non-self
// operand, or to a fresh Undefined node if it had none, rewriting
// every reference to phi (its users, outputs, and current_def
// entries) to point at the replacement instead. Recursion is limited
// to phi users, since non-phi users can't themselves become trivial
// as a result of this collapse.
func (p *PhiPlacer) tryRemoveTrivialPhi(phi ssacore.ValueRef) ssacore.ValueRef {
	undef := p.store.InvalidValue()
	same := undef
	for _, op := range p.store.ArgsOf(phi) {
		if op == same || op == phi {
			continue
		}
		if same != undef {
			return phi // more than one distinct operand: not trivial
		}
		same = op
	}

	if same == undef {
		phiAddr, ok := p.indexToAddr[phi]
		if !ok {
			panic("ssaform: try_remove_trivial_phi: no address recorded for phi")
		}
		block := p.blockOf(phiAddr)
		if block == p.store.InvalidAction() {
			panic("ssaform: try_remove_trivial_phi: phi's address owns no block")
		}
		nd, ok := p.store.GetNodeData(phi)
		if !ok {
			panic("ssaform: try_remove_trivial_phi: no node data for phi")
		}
		same = p.AddUndefined(p.addrOf(block), nd.Info)
	}

	seenUser := map[ssacore.ValueRef]bool{}
	var users []ssacore.ValueRef
	for _, u := range p.store.UsesOf(phi) {
		if !seenUser[u] {
			seenUser[u] = true
			users = append(users, u)
		}
	}

	delete(p.indexToAddr, phi)
	p.store.Replace(phi, same)
	if v, ok := p.outputs[phi]; ok {
		delete(p.outputs, phi)
		p.outputs[same] = v
	}
	for _, cd := range p.currentDef {
		cd.ReplaceValue(phi, same)
	}

	for _, u := range users {
		if u == phi {
			continue
		}
		if nd, ok := p.store.GetNodeData(u); ok && nd.Type.Kind == ssacore.NodePhi {
			p.tryRemoveTrivialPhi(u)
		}
	}
	return same
}

// SealBlock declares that block has all its predecessors known and
// resolves every ϕ that was left incomplete while block was unsealed.
func (p *PhiPlacer) SealBlock(block ssacore.ActionRef) {
	blockAddr := p.addrOf(block)
	pending := p.incompletePhis[blockAddr]
	rtrace.Trace("seal_block: block=%d addr=%s pending=%d", block, blockAddr, len(pending))

	for _, varID := range sortedVarIDs(pending) {
		node := pending[varID]
		resolved := p.addPhiOperands(block, varID, node)

		if m := p.incompletePhis[blockAddr]; m != nil {
			m[varID] = resolved
		}
		for _, baddr := range sortedAddrKeys(p.incompletePhis) {
			m := p.incompletePhis[baddr]
			for _, v := range sortedVarIDs(m) {
				if m[v] == node {
					m[v] = resolved
				}
			}
		}
		p.currentDef[varID].ReplaceValue(node, resolved)
	}

	p.sealedBlocks[block] = true
}

// --- Node factories ---

// AddPhi allocates an operandless ϕ node at *addr and advances addr
// past it.
func (p *PhiPlacer) AddPhi(addr *ssacore.MAddress, vt ssacore.ValueInfo) ssacore.ValueRef {
	i := p.store.AddPhi(vt)
	p.indexToAddr[i] = *addr
	addr.Offset++
	return i
}

// AddOp allocates an op node at *addr and advances addr past it.
func (p *PhiPlacer) AddOp(op ssacore.MOpcode, addr *ssacore.MAddress, vt ssacore.ValueInfo) ssacore.ValueRef {
	i := p.store.AddOp(op, vt, addr)
	p.indexToAddr[i] = *addr
	addr.Offset++
	return i
}

// addNarrowConst builds a constant already narrowed to vt's width:
// for widths below 64 bits this allocates a masked constant plus an
// explicit Narrow op over it (so the node's declared width matches
// its actual type), otherwise it's a plain constant.
func (p *PhiPlacer) addNarrowConst(addr *ssacore.MAddress, value uint64, vt ssacore.ValueInfo) ssacore.ValueRef {
	width := vt.Width
	if width == 0 {
		width = 64
	}
	if width >= 64 {
		return p.AddConst(*addr, value)
	}
	masked := value & ((uint64(1) << width) - 1)
	constNode := p.AddConst(*addr, masked)
	narrowNode := p.AddOp(ssacore.Narrow(width), addr, vt)
	p.store.OpUse(narrowNode, 0, constNode)
	return narrowNode
}

// AddConst allocates a constant node. Constants are address-less:
// they float free of any particular instruction and are never
// recorded in index_to_addr.
func (p *PhiPlacer) AddConst(_ ssacore.MAddress, value uint64) ssacore.ValueRef {
	return p.store.AddConst(value)
}

// AddUndefined allocates an Undefined node at addr. Unlike AddPhi and
// AddOp, placing an Undefined never advances an instruction offset.
func (p *PhiPlacer) AddUndefined(addr ssacore.MAddress, vt ssacore.ValueInfo) ssacore.ValueRef {
	i := p.store.AddUndefined(vt)
	p.indexToAddr[i] = addr
	return i
}

// AddComment allocates a Comment node at addr, best-effort tagging it
// with a whole-register name if msg happens to start with one —
// disassembly front-ends funnel register-state annotations through
// comment nodes, and the tag keeps those traceable to a register.
func (p *PhiPlacer) AddComment(addr ssacore.MAddress, vt ssacore.ValueInfo, msg string) ssacore.ValueRef {
	i := p.store.AddComment(vt, msg)
	for _, name := range p.regfile.WholeNames {
		if len(msg) >= len(name) && msg[:len(name)] == name {
			p.store.SetRegister(i, name)
			break
		}
	}
	p.indexToAddr[i] = addr
	return i
}

// SetAddress overrides the recorded address of an already-placed
// node (used by callers that build a node before knowing its final
// instruction slot).
func (p *PhiPlacer) SetAddress(node ssacore.ValueRef, addr ssacore.MAddress) {
	p.indexToAddr[node] = addr
}

func (p *PhiPlacer) propagateReginfo(node ssacore.ValueRef) {
	args := p.store.GetOperands(node)
	if len(args) == 0 {
		return
	}
	regs := p.store.GetRegister(args[0])
	if len(regs) == 0 {
		rtrace.Trace("propagate_reginfo: node=%d waiting on untagged operand %d", node, args[0])
		p.incompletePropagation[node] = true
		return
	}
	for _, r := range regs {
		p.store.SetRegister(node, r)
	}
	for _, user := range p.store.GetUses(node) {
		if p.incompletePropagation[user] {
			delete(p.incompletePropagation, user)
			p.propagateReginfo(user)
		}
	}
}

func (p *PhiPlacer) operandWidth(node ssacore.ValueRef) uint16 {
	nd, ok := p.store.GetNodeData(node)
	if !ok || nd.Info.Width == 0 {
		return 64
	}
	return nd.Info.Width
}

// Finish seals every remaining unsealed block (in reverse address
// order, so inner blocks created by a split resolve before the outer
// ones that contain them), associates every address-tracked node with
// its owning block, rewrites OpITE nodes into selector markers on
// their condition operand, and publishes the final register-container
// layout.
func (p *PhiPlacer) Finish() {
	for i := p.blocks.Len() - 1; i >= 0; i-- {
		_, block := p.blocks.At(i)
		if !p.sealedBlocks[block] {
			p.SealBlock(block)
		}
	}

	for _, node := range p.store.Nodes() {
		addr, ok := p.indexToAddr[node]
		if !ok {
			continue
		}
		p.AssociateBlock(node, addr)

		nd, ok := p.store.GetNodeData(node)
		if !ok || nd.Type.Kind != ssacore.NodeOp || nd.Type.Op.Kind != ssacore.OpITE {
			continue
		}
		block := p.blockOf(addr)
		operands := p.store.GetOperands(node)
		if len(operands) == 0 {
			panic(fmt.Sprintf("ssaform: finish: OpITE node %d has no condition operand", node))
		}
		p.store.MarkSelector(operands[0], block)
		p.store.Remove(node)
	}

	p.store.MapRegisters(p.regfile.WholeNames)
}
