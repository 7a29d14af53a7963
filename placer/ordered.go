package placer

import (
	"sort"

	"github.com/radeco-go/ssaform/ssacore"
)

// orderedAddrMap is a sorted map keyed by MAddress, backing the
// per-variable definition history and the block-start-address table.
// Construction output must be reproducible run to run, so everywhere
// iteration order is observable the placer walks one of these rather
// than a plain Go map.
type orderedAddrMap[V comparable] struct {
	addrs []ssacore.MAddress
	vals  []V
}

func (m *orderedAddrMap[V]) search(addr ssacore.MAddress) int {
	return sort.Search(len(m.addrs), func(i int) bool { return !m.addrs[i].Less(addr) })
}

// Insert sets the value at addr, overwriting any existing entry.
func (m *orderedAddrMap[V]) Insert(addr ssacore.MAddress, val V) {
	i := m.search(addr)
	if i < len(m.addrs) && m.addrs[i] == addr {
		m.vals[i] = val
		return
	}
	m.addrs = append(m.addrs, addr)
	m.vals = append(m.vals, val)
	copy(m.addrs[i+1:], m.addrs[i:len(m.addrs)-1])
	copy(m.vals[i+1:], m.vals[i:len(m.vals)-1])
	m.addrs[i] = addr
	m.vals[i] = val
}

// Get returns the value stored at exactly addr.
func (m *orderedAddrMap[V]) Get(addr ssacore.MAddress) (V, bool) {
	i := m.search(addr)
	var zero V
	if i < len(m.addrs) && m.addrs[i] == addr {
		return m.vals[i], true
	}
	return zero, false
}

// ReplaceValue rewrites every entry holding old to hold new_ instead.
// Used after trivial-ϕ removal, where dangling references to a removed
// node must not survive.
func (m *orderedAddrMap[V]) ReplaceValue(old, new_ V) {
	for i, v := range m.vals {
		if v == old {
			m.vals[i] = new_
		}
	}
}

// Len returns the number of entries.
func (m *orderedAddrMap[V]) Len() int { return len(m.addrs) }

// At returns the i'th entry in ascending address order.
func (m *orderedAddrMap[V]) At(i int) (ssacore.MAddress, V) { return m.addrs[i], m.vals[i] }

// sortedVarIDs returns the keys of a VarId-keyed map in ascending
// order, for deterministic iteration.
func sortedVarIDs(m map[ssacore.VarId]ssacore.ValueRef) []ssacore.VarId {
	out := make([]ssacore.VarId, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// sortedAddrKeys returns the keys of an MAddress-keyed map in
// ascending order, for deterministic iteration.
func sortedAddrKeys(m map[ssacore.MAddress]map[ssacore.VarId]ssacore.ValueRef) []ssacore.MAddress {
	out := make([]ssacore.MAddress, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// sortNodeAddrs orders a node/address entry list by (address, node),
// the order add_block's split-time operand rewiring must visit nodes
// in for its output to be reproducible across runs.
func sortNodeAddrs(entries []nodeAddr) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].addr != entries[j].addr {
			return entries[i].addr.Less(entries[j].addr)
		}
		return entries[i].node < entries[j].node
	})
}
