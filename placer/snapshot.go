package placer

import (
	"encoding/gob"
	"os"
	"sort"

	"github.com/radeco-go/ssaform/ssacore"
)

// AddrValue is one current_def entry: the address a variable was
// written at, and the node written there.
type AddrValue struct {
	Addr  ssacore.MAddress
	Value ssacore.ValueRef
}

// AddrBlock is one blocks-table entry: a block's start address and
// its handle.
type AddrBlock struct {
	Addr  ssacore.MAddress
	Block ssacore.ActionRef
}

// Snapshot is a debug/test capture of a PhiPlacer's construction-time
// tables, so a developer can inspect (or diff across runs) the
// definition history, the block table, and which blocks were sealed
// at any point mid construction.
type Snapshot struct {
	CurrentDef   map[ssacore.VarId][]AddrValue
	Blocks       []AddrBlock
	SealedBlocks []ssacore.ActionRef
}

// Snapshot captures the placer's construction-time tables.
func (p *PhiPlacer) Snapshot() Snapshot {
	cd := make(map[ssacore.VarId][]AddrValue, len(p.currentDef))
	for vid, seq := range p.currentDef {
		entries := make([]AddrValue, seq.Len())
		for i := 0; i < seq.Len(); i++ {
			addr, val := seq.At(i)
			entries[i] = AddrValue{Addr: addr, Value: val}
		}
		cd[ssacore.VarId(vid)] = entries
	}

	blocks := make([]AddrBlock, p.blocks.Len())
	for i := 0; i < p.blocks.Len(); i++ {
		addr, block := p.blocks.At(i)
		blocks[i] = AddrBlock{Addr: addr, Block: block}
	}

	sealed := make([]ssacore.ActionRef, 0, len(p.sealedBlocks))
	for block, ok := range p.sealedBlocks {
		if ok {
			sealed = append(sealed, block)
		}
	}
	sort.Slice(sealed, func(i, j int) bool { return sealed[i] < sealed[j] })

	return Snapshot{CurrentDef: cd, Blocks: blocks, SealedBlocks: sealed}
}

// Restore overwrites the placer's current_def, block table, and
// sealed-block set from a prior Snapshot. AddVariables must already
// have registered at least as many variables as the snapshot
// references.
func (p *PhiPlacer) Restore(s Snapshot) {
	for vid, entries := range s.CurrentDef {
		if int(vid) >= len(p.currentDef) {
			continue
		}
		seq := &orderedAddrMap[ssacore.ValueRef]{}
		for _, e := range entries {
			seq.Insert(e.Addr, e.Value)
		}
		p.currentDef[vid] = seq
	}

	p.blocks = &orderedAddrMap[ssacore.ActionRef]{}
	for _, e := range s.Blocks {
		p.blocks.Insert(e.Addr, e.Block)
	}

	p.sealedBlocks = map[ssacore.ActionRef]bool{}
	for _, block := range s.SealedBlocks {
		p.sealedBlocks[block] = true
	}
}

// SaveSnapshot writes a Snapshot to path.
func SaveSnapshot(path string, s Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(s)
}

// LoadSnapshot reads a Snapshot previously written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
