package construct

import (
	"github.com/radeco-go/ssaform/placer"
	"github.com/radeco-go/ssaform/regfile"
	"github.com/radeco-go/ssaform/ssacore"
)

// SSAConstruction drives a PhiPlacer over a CFG: allocating each
// block, translating its instructions into SSA nodes via the
// placer's variable and register reads/writes, wiring control edges,
// and sealing the result.
type SSAConstruction struct {
	Placer  *placer.PhiPlacer
	Regfile *regfile.SubRegisterFile
	temps   map[string]ssacore.ValueRef
}

// New builds a driver over an already-initialized placer (its
// variables must already be registered via AddVariables).
func New(p *placer.PhiPlacer, rf *regfile.SubRegisterFile) *SSAConstruction {
	return &SSAConstruction{Placer: p, Regfile: rf, temps: map[string]ssacore.ValueRef{}}
}

// Run allocates every block in cfg, translates their instructions,
// wires the control edges, seals every block, and finishes
// construction.
func (c *SSAConstruction) Run(cfg *CFG) {
	for _, block := range cfg.Blocks {
		c.Placer.AddBlock(block.Addr, nil, nil)
	}
	c.Placer.MarkStartNode(c.Placer.BlockOf(cfg.Entry))

	// The exit block lives past every real address (and past the
	// dynamic entry). It is store-only: no instruction is ever placed
	// in it, so the placer's block table need not know it.
	exit := c.Placer.Store().AddBlock(ssacore.MAddress{Address: ^uint64(0), Offset: ^uint16(0)})
	c.Placer.MarkExitNode(exit)

	for _, block := range cfg.Blocks {
		c.processBlock(block)
	}

	for _, edge := range cfg.Edges {
		c.Placer.AddEdge(edge.From, edge.To, edge.Type)
	}

	for _, block := range cfg.Blocks {
		action := c.Placer.BlockOf(block.Addr)
		c.Placer.SealBlock(action)
	}

	c.Placer.GatherExits()
	c.Placer.Finish()
}

func (c *SSAConstruction) processBlock(block Block) {
	addr := block.Addr
	blockAction := c.Placer.BlockOf(block.Addr)
	for _, instr := range block.Instrs {
		if c.processOp(&addr, blockAction, instr) {
			break
		}
	}
}

// processOp translates one instruction, returning true if the rest of
// the block is unreachable (an OpJmp was hit).
func (c *SSAConstruction) processOp(addr *ssacore.MAddress, block ssacore.ActionRef, instr Instr) (stop bool) {
	op1 := c.processIn(addr, instr.Op1)
	op2 := c.processIn(addr, instr.Op2)

	switch instr.Op.Kind {
	case ssacore.OpJmp:
		return true

	case ssacore.OpCJmp:
		c.Placer.Store().MarkSelector(op1, block)
		return false

	case ssacore.OpEq:
		c.processOut(addr, instr.Dst, op1)
		return false

	default:
		node := c.Placer.AddOp(instr.Op, addr, instr.DstType)
		c.Placer.Store().OpUse(node, 0, op1)
		c.Placer.Store().OpUse(node, 1, op2)
		c.processOut(addr, instr.Dst, node)
		return false
	}
}

// processIn resolves an instruction operand to a value node:
// registers go through the placer's sub-register lowering,
// temporaries through this function's own per-construction name map,
// constants become a constant node, and everything else resolves to
// the invalid value.
func (c *SSAConstruction) processIn(addr *ssacore.MAddress, mv MVal) ssacore.ValueRef {
	switch mv.Kind {
	case MValRegister:
		return c.Placer.ReadRegister(addr, mv.Name)
	case MValTemp:
		if v, ok := c.temps[mv.Name]; ok {
			return v
		}
		return c.Placer.InvalidValue()
	case MValConst:
		return c.Placer.AddConst(*addr, mv.Value)
	default:
		return c.Placer.InvalidValue()
	}
}

// processOut dispatches an instruction's result to its destination:
// registers go through the placer's sub-register lowering,
// temporaries update the name map, everything else is dropped.
func (c *SSAConstruction) processOut(addr *ssacore.MAddress, dst MVal, value ssacore.ValueRef) {
	switch dst.Kind {
	case MValRegister:
		c.Placer.WriteRegister(addr, dst.Name, value)
	case MValTemp:
		c.temps[dst.Name] = value
	default:
	}
}
