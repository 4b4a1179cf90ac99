package layout

// BlockSize fixes the number of keys per BTree block at compile time.
type BlockSize interface {
	Size() int
}

// Block sizes. B8 fills a 64-byte cache line with 8-byte keys.
type (
	B2  struct{}
	B4  struct{}
	B8  struct{}
	B16 struct{}
	B32 struct{}
)

func (B2) Size() int  { return 2 }
func (B4) Size() int  { return 4 }
func (B8) Size() int  { return 8 }
func (B16) Size() int { return 16 }
func (B32) Size() int { return 32 }
