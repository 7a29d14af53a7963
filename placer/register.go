package placer

import (
	"github.com/radeco-go/ssaform/rtrace"
	"github.com/radeco-go/ssaform/ssacore"
)

// ReadRegister resolves a sub-register read by name into a value
// node: a plain variable read if name addresses a whole register, or
// a shift-then-narrow sequence over the whole register's current
// value if name addresses a bit-slice of one. Unknown names (this
// model's stand-in for floating-point or otherwise unrepresented
// registers) produce an Undefined node and a warning rather than a
// panic, so a caller can keep translating the surrounding block.
func (p *PhiPlacer) ReadRegister(addr *ssacore.MAddress, name string) ssacore.ValueRef {
	rtrace.Trace("read_register: %s addr=%s", name, addr)
	info, ok := p.regfile.Subregister(name)
	if !ok {
		rtrace.Warn("read of unsupported register %q (no sub-register mapping)", name)
		return p.AddUndefined(*addr, ssacore.ValueInfo{})
	}

	value := p.ReadVariable(addr, info.Base)
	width := p.operandWidth(value)

	if info.Shift > 0 {
		vt := ssacore.ValueInfo{Width: width}
		shiftAmount := p.addNarrowConst(addr, info.Shift, vt)
		shifted := p.AddOp(ssacore.MOpcode{Kind: ssacore.OpLsr}, addr, vt)
		p.store.OpUse(shifted, 0, value)
		p.store.OpUse(shifted, 1, shiftAmount)
		value = shifted
		p.propagateReginfo(value)
	}

	if uint16(info.Width) < width {
		vt := ssacore.ValueInfo{Width: uint16(info.Width)}
		narrowed := p.AddOp(ssacore.Narrow(uint16(info.Width)), addr, vt)
		p.store.OpUse(narrowed, 0, value)
		value = narrowed
		p.propagateReginfo(value)
	}

	return value
}

// WriteRegister resolves a sub-register write by name: a whole
// register write goes through WriteVariable directly (after a
// widen/narrow cast if value's width doesn't already match), while a
// bit-slice write reads back the whole register, masks out the
// target slice, shifts value into place, and ORs the two together
// before writing the combined result back as the whole register's new
// value.
func (p *PhiPlacer) WriteRegister(addr *ssacore.MAddress, name string, value ssacore.ValueRef) {
	rtrace.Trace("write_register: %s <- %d addr=%s", name, value, addr)
	info, ok := p.regfile.Subregister(name)
	if !ok {
		rtrace.Warn("write to unsupported register %q (no sub-register mapping)", name)
		return
	}

	vt := p.variableTypes[info.Base]
	width := vt.Width
	if width == 0 {
		width = 64
	}

	if uint64(info.Width) >= uint64(width) {
		// Full-width write: cast if needed, then commit directly.
		switch opw := p.operandWidth(value); {
		case opw < width:
			widened := p.AddOp(ssacore.Widen(width), addr, vt)
			p.store.OpUse(widened, 0, value)
			value = widened
		case opw > width:
			narrowed := p.AddOp(ssacore.Narrow(width), addr, vt)
			p.store.OpUse(narrowed, 0, value)
			value = narrowed
		}
		p.WriteVariable(*addr, info.Base, value)
		if regName, ok := p.regfile.Name(info.Base); ok {
			p.store.SetRegister(value, regName)
		}
		return
	}

	// Sub-register write: bring value up to the whole register's
	// width first, so the later OR combines same-width operands.
	if p.operandWidth(value) < width {
		widened := p.AddOp(ssacore.Widen(width), addr, vt)
		p.store.OpUse(widened, 0, value)
		value = widened
		p.propagateReginfo(value)
	}

	if info.Shift > 0 {
		shiftAmount := p.addNarrowConst(addr, info.Shift, vt)
		shifted := p.AddOp(ssacore.MOpcode{Kind: ssacore.OpLsl}, addr, vt)
		p.store.OpUse(shifted, 0, value)
		p.store.OpUse(shifted, 1, shiftAmount)
		value = shifted
		p.propagateReginfo(value)
	}

	var full uint64
	if width >= 64 {
		full = ^uint64(0)
	} else {
		full = (uint64(1) << width) - 1
	}
	sliceMask := ((uint64(1) << info.Width) - 1) << info.Shift
	keepMask := sliceMask ^ full

	if keepMask == 0 {
		// The slice covers the whole register (e.g. a synonym write):
		// nothing to preserve from the old value.
		p.WriteVariable(*addr, info.Base, value)
		return
	}

	oldValue := p.ReadVariable(addr, info.Base)
	maskConst := p.addNarrowConst(addr, keepMask, vt)
	kept := p.AddOp(ssacore.MOpcode{Kind: ssacore.OpAnd}, addr, vt)
	p.store.OpUse(kept, 0, oldValue)
	p.store.OpUse(kept, 1, maskConst)
	p.propagateReginfo(kept)

	combined := p.AddOp(ssacore.MOpcode{Kind: ssacore.OpOr}, addr, vt)
	p.store.OpUse(combined, 0, value)
	p.store.OpUse(combined, 1, kept)
	p.propagateReginfo(combined)

	p.WriteVariable(*addr, info.Base, combined)
}
