package cfg

// Block is a basic block: a straight-line instruction sequence ended
// by a terminator. A block without one is open and only exists during
// construction.
//
// Instructions are held in an intrusive doubly-linked list, the link
// pointers live in the instruction header. Splice, insert and erase
// are O(1) and iterators (Prev/Next chains) stay valid across
// mutations of other nodes.
type Block struct {
	cfg *CFG
	id  int

	first, last Instruction
	n           int
}

func (b *Block) CFG() *CFG { return b.cfg }
func (b *Block) ID() int   { return b.id }

func (b *Block) Empty() bool { return b.n == 0 }
func (b *Block) Len() int    { return b.n }

func (b *Block) First() Instruction { return b.first }
func (b *Block) Last() Instruction  { return b.last }

// Terminator is the block's last instruction if it terminates,
// nil while the block is open.
func (b *Block) Terminator() TermInst {
	if b.last == nil || !b.last.Kind().IsTerminator() {
		return nil
	}

	return b.last.(TermInst)
}

func (b *Block) Closed() bool { return b.Terminator() != nil }

// Instructions collects the block's instructions in order.
func (b *Block) Instructions() []Instruction {
	s := make([]Instruction, 0, b.n)

	for i := b.first; i != nil; i = i.Next() {
		s = append(s, i)
	}

	return s
}

// Append links i at the end of the block and takes over its parent
// pointer. The block must be open and i detached.
func (b *Block) Append(i Instruction) {
	if b.Closed() {
		panic("cfg: append to a closed block")
	}

	h := i.header()
	if h.parent != nil {
		panic("cfg: instruction is already in a block")
	}

	h.prev = b.last
	h.next = nil

	if b.last != nil {
		b.last.header().next = i
	} else {
		b.first = i
	}

	b.last = i

	h.parent = b
	b.n++
}

// InsertBefore links i ahead of pos, which must be in this block.
// Terminators can only go last, use Append for them.
func (b *Block) InsertBefore(i, pos Instruction) {
	if pos == nil {
		b.Append(i)
		return
	}
	if i.Kind().IsTerminator() {
		panic("cfg: terminator must be last")
	}

	ph := pos.header()
	if ph.parent != b {
		panic("cfg: insert position is not in the block")
	}

	h := i.header()
	if h.parent != nil {
		panic("cfg: instruction is already in a block")
	}

	h.prev = ph.prev
	h.next = pos

	if ph.prev != nil {
		ph.prev.header().next = i
	} else {
		b.first = i
	}

	ph.prev = i

	h.parent = b
	b.n++
}

// remove unlinks i and clears its parent. Storage stays alive, the
// instruction may be re-inserted elsewhere.
func (b *Block) remove(i Instruction) {
	h := i.header()
	if h.parent != b {
		panic("cfg: instruction is not in the block")
	}

	if h.prev != nil {
		h.prev.header().next = h.next
	} else {
		b.first = h.next
	}

	if h.next != nil {
		h.next.header().prev = h.prev
	} else {
		b.last = h.prev
	}

	h.prev = nil
	h.next = nil
	h.parent = nil

	b.n--
}

// TransferFrom moves the half-open range [first, last) out of from to
// the end of b, re-parenting the nodes in one pass. last == nil means
// up to the end of from. Observers never see the moved instructions
// detached: they go from one list to the other in a single splice.
func (b *Block) TransferFrom(from *Block, first, last Instruction) {
	if from == b {
		panic("cfg: transfer within one block")
	}
	if b.Closed() {
		panic("cfg: transfer into a closed block")
	}
	if first == nil {
		return
	}
	if first.header().parent != from {
		panic("cfg: transfer range is not in the source block")
	}

	var tail Instruction
	n := 0

	for i := first; i != last; i = i.Next() {
		if i == nil {
			panic("cfg: transfer range escapes the source block")
		}

		i.header().parent = b
		tail = i
		n++
	}

	if n == 0 {
		return
	}

	fh := first.header()
	th := tail.header()

	// unlink the range from the source
	if fh.prev != nil {
		fh.prev.header().next = last
	} else {
		from.first = last
	}

	if last != nil {
		last.header().prev = fh.prev
	} else {
		from.last = fh.prev
	}

	from.n -= n

	// splice it onto the destination
	fh.prev = b.last

	if b.last != nil {
		b.last.header().next = first
	} else {
		b.first = first
	}

	th.next = nil
	b.last = tail
	b.n += n
}
