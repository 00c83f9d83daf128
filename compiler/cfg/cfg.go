package cfg

import (
	"tlog.app/go/loc"
)

// CFG owns every block and instruction of one function body.
//
// It is a single-threaded unit: build, mutate and tear down one CFG on
// one goroutine at a time. Distinct CFGs are fully independent.
// Storage is garbage collected; dropping the CFG frees everything it
// owns, erasing individual instructions is an optimization.
type CFG struct {
	Name string

	Blocks []*Block

	nvals int

	from loc.PC
}

func New(name string) *CFG {
	return &CFG{
		Name: name,
		from: loc.Caller(1),
	}
}

// NewBlock creates an open block at the end of the block list.
func (c *CFG) NewBlock() *Block {
	b := &Block{
		cfg: c,
		id:  len(c.Blocks),
	}

	c.Blocks = append(c.Blocks, b)

	return b
}

// Entry is the function entry block.
func (c *CFG) Entry() *Block {
	if len(c.Blocks) == 0 {
		return nil
	}

	return c.Blocks[0]
}

// From is the place the CFG was created at.
func (c *CFG) From() loc.PC { return c.from }

func (c *CFG) nextID() int {
	id := c.nvals
	c.nvals++

	return id
}
