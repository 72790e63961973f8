package doublearray

import "github.com/sudachigo/sudachi/errs"

// Builder lays a frozen DAWG out into a flat Double-Array using a
// first-fit allocator over a growable unit array, falling back to a
// block-aligned (wide) offset encoding when the natural offset would
// overflow 21 bits. This is a from-scratch, correct re-derivation of the
// classic Aoe/Morita layout pass: it does not mirror the reference
// builder's block-fixing arithmetic, which double-counts BLOCK_SIZE.
type Builder struct {
	units []uint32
	used  []bool
	free  uint32
}

// Build runs pass 1 (DAWG dedup) and pass 2 (array layout) over keys,
// which must already be sorted ascending by key. It returns the finished
// Double-Array unit slice.
func Build(keys [][]byte, values []uint32) ([]uint32, error) {
	if len(keys) != len(values) {
		return nil, errs.New(errs.BuildError, "keys/values length mismatch")
	}
	dawg := NewDAWGBuilder()
	for i, k := range keys {
		if err := dawg.Insert(k, values[i]); err != nil {
			return nil, err
		}
	}
	root := dawg.Finish()

	b := &Builder{}
	if err := b.layout(root); err != nil {
		return nil, err
	}
	return b.units, nil
}

func (b *Builder) ensureSize(pos uint32) {
	for uint32(len(b.units)) <= pos {
		b.units = append(b.units, 0)
		b.used = append(b.used, false)
	}
}

func (b *Builder) fits(base uint32, labels []byte) bool {
	for _, l := range labels {
		p := base ^ uint32(l)
		b.ensureSize(p)
		if b.used[p] {
			return false
		}
	}
	return true
}

func (b *Builder) occupy(base uint32, labels []byte) {
	for _, l := range labels {
		p := base ^ uint32(l)
		b.used[p] = true
	}
	for b.free < uint32(len(b.used)) && b.used[b.free] {
		b.free++
	}
}

// findBase first-fits a base for labels that no other node has taken,
// optionally requiring the offset from the parent cell at from (base ^
// from) to be BlockSize-aligned (needed once the natural offset would not
// fit in 21 bits, so the wide encoding, in units of BlockSize, can be used).
func (b *Builder) findBase(from uint32, labels []byte, requireWide bool, taken map[uint32]bool) uint32 {
	first := labels[0]
	pos := b.free
	for {
		b.ensureSize(pos)
		if !b.used[pos] {
			base := pos ^ uint32(first)
			if !taken[base] && (!requireWide || (base^from)&(BlockSize-1) == 0) {
				if b.fits(base, labels) {
					return base
				}
			}
		}
		pos++
	}
}

type queueItem struct {
	node  *dawgNode
	pos   uint32
	label byte
	root  bool
}

func (b *Builder) layout(root *dawgNode) error {
	b.ensureSize(0)
	b.used[0] = true // the root cell
	b.free = 1
	taken := make(map[uint32]bool)
	assigned := make(map[*dawgNode]uint32)
	queue := []queueItem{{node: root, pos: 0, root: true}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		base, already := assigned[item.node]
		if !already {
			labels := sortedLabels(item.node)
			if len(labels) == 0 {
				base = b.free
				b.ensureSize(base)
			} else {
				base = b.findBase(item.pos, labels, false, taken)
				if base^item.pos >= (1 << 21) {
					base = b.findBase(item.pos, labels, true, taken)
				}
				b.occupy(base, labels)
				taken[base] = true
			}
			assigned[item.node] = base

			if item.node.hasValue {
				b.units[base^0] = uint32(makeValueUnit(item.node.value))
			}
			for _, e := range item.node.children {
				childPos := base ^ uint32(e.label)
				queue = append(queue, queueItem{node: e.target, pos: childPos, label: e.label})
			}
		}

		if item.root {
			u, ok := makeUnit(base, 0, false)
			if !ok {
				return errs.New(errs.BuildError, "root offset exceeds 29 bits")
			}
			b.ensureSize(item.pos)
			b.units[item.pos] = uint32(u)
			continue
		}

		u, ok := makeUnit(item.pos^base, item.label, item.node.hasValue)
		if !ok {
			return errs.New(errs.BuildError, "offset exceeds 29 bits")
		}
		b.ensureSize(item.pos)
		b.units[item.pos] = uint32(u)
	}
	return nil
}
