package testdata

// @bitfield storage=uint7
type BadStorage struct {
	A uint8 `bits:"len=3"`
}

// @bitfield
type BadTag struct {
	A uint8 `bits:"len=x"`
	B uint8 `bits:"len=2"`
}

// @bitfield
type Good struct {
	A uint8 `bits:"len=2"`
}
