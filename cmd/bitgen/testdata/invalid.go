package wire

// @bitfield storage=uint8
type TooWide struct {
	A uint8 `bits:"len=6"`
	B uint8 `bits:"len=3"`
}

// @bitfield storage=uint8
type BadTag struct {
	A uint8 `bits:"len=x"`
}
