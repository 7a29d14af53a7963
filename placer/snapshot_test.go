package placer

import (
	"path/filepath"
	"testing"

	"github.com/radeco-go/ssaform/ssacore"
)

func TestSnapshotRoundTrip(t *testing.T) {
	p, _ := newTestPlacer(t)
	entry := p.newBlockForTest(addr(0))
	p.MarkStartNode(entry)
	c0 := p.AddConst(addr(0), 1)
	p.WriteVariable(addr(0), 0, c0)
	p.SealBlock(entry)

	path := filepath.Join(t.TempDir(), "placer.snap")
	if err := SaveSnapshot(path, p.Snapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	q, _ := newTestPlacer(t)
	q.Restore(loaded)

	if q.blocks.Len() != 1 {
		t.Fatalf("expected 1 restored block, got %d", q.blocks.Len())
	}
	if !q.sealedBlocks[entry] {
		t.Fatalf("expected the entry block to be restored as sealed")
	}
	if a, v := q.currentDef[0].At(0); a != addr(0) || v != c0 {
		t.Fatalf("expected current_def[0] to restore (%s, %d), got (%s, %d)", addr(0), c0, a, v)
	}
	if q.currentDef[1].Len() != 0 {
		t.Fatalf("expected no restored definitions for the untouched variable")
	}
}

func TestOrderedAddrMapReplaceValue(t *testing.T) {
	m := &orderedAddrMap[ssacore.ValueRef]{}
	m.Insert(addr(3), 30)
	m.Insert(addr(1), 10)
	m.Insert(addr(2), 10)

	m.ReplaceValue(10, 99)

	if a, v := m.At(0); a != addr(1) || v != 99 {
		t.Fatalf("expected (1, 99) at index 0, got (%s, %d)", a, v)
	}
	if a, v := m.At(1); a != addr(2) || v != 99 {
		t.Fatalf("expected (2, 99) at index 1, got (%s, %d)", a, v)
	}
	if a, v := m.At(2); a != addr(3) || v != 30 {
		t.Fatalf("expected (3, 30) untouched at index 2, got (%s, %d)", a, v)
	}
}
