// Package strtab implements the string interning table used by the columnar
// data model: a blob of bytes plus offset/length arrays and an open-addressed
// hash index, modeled directly on the runtime string tables used elsewhere
// in this dependency's ecosystem for interned identifiers.
package strtab

import (
	"bytes"
	"fmt"
	"math/bits"
)

// ID identifies one interned string. The zero value never denotes a real
// string; valid ids start at 1.
type ID uint32

// Table is an immutable, built string table: byte blob plus offset/length
// arrays indexed by ID, plus a hash index for Lookup.
type Table struct {
	blob []byte
	off  []uint32
	len  []uint32

	hash []uint64
	ids  []ID
}

// Count returns the number of interned strings.
func (t *Table) Count() int {
	if len(t.off) == 0 {
		return 0
	}
	return len(t.off) - 1
}

// Bytes returns the interned bytes for id, or nil if id is out of range.
func (t *Table) Bytes(id ID) []byte {
	if id == 0 || int(id) >= len(t.off) {
		return nil
	}
	off, ln := t.off[id], t.len[id]
	if int(off+ln) > len(t.blob) {
		return nil
	}
	return t.blob[off : off+ln]
}

// String returns the interned string for id.
func (t *Table) String(id ID) string {
	return string(t.Bytes(id))
}

// Lookup returns the ID for s, or 0 if s was never interned.
func (t *Table) Lookup(s []byte) ID {
	if len(t.ids) == 0 {
		return 0
	}
	h := hashBytes(s)
	mask := uint64(len(t.ids) - 1)
	slot := int(h & mask)
	for i := 0; i < len(t.ids); i++ {
		id := t.ids[slot]
		if id == 0 {
			return 0
		}
		if t.hash[slot] == h && t.equal(id, s) {
			return id
		}
		slot = int((uint64(slot) + 1) & mask)
	}
	return 0
}

func (t *Table) equal(id ID, s []byte) bool {
	stored := t.Bytes(id)
	return bytes.Equal(stored, s)
}

// Builder accumulates strings and produces an immutable Table.
type Builder struct {
	index map[string]ID
	blob  []byte
	off   []uint32
	len   []uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		off:   make([]uint32, 1),
		len:   make([]uint32, 1),
		index: make(map[string]ID),
	}
}

// Intern returns the ID for s, assigning a new one on first occurrence.
func (b *Builder) Intern(s string) ID {
	if id, ok := b.index[s]; ok {
		return id
	}
	id := ID(len(b.off))
	b.index[s] = id
	b.off = append(b.off, uint32(len(b.blob)))
	b.len = append(b.len, uint32(len(s)))
	b.blob = append(b.blob, s...)
	return id
}

// Build finalizes the table, constructing the open-addressed hash index.
func (b *Builder) Build() (*Table, error) {
	t := &Table{blob: b.blob, off: b.off, len: b.len}
	count := len(t.off) - 1
	if count <= 0 {
		return t, nil
	}
	size := nextPow2(count * 2)
	hashes := make([]uint64, size)
	ids := make([]ID, size)
	mask := uint64(size - 1)

	for i := 1; i <= count; i++ {
		id := ID(i)
		h := hashBytes(t.Bytes(id))
		slot := int(h & mask)
		inserted := false
		for range size {
			if ids[slot] == 0 {
				ids[slot] = id
				hashes[slot] = h
				inserted = true
				break
			}
			slot = int((uint64(slot) + 1) & mask)
		}
		if !inserted {
			return nil, fmt.Errorf("strtab: index table full")
		}
	}
	t.hash, t.ids = hashes, ids
	return t, nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

func hashBytes(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	if h == 0 {
		return 1
	}
	return h
}
