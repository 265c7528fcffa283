package wire

type Mode uint8

// @bitfield storage=uint16 overflow=reject
type Header struct {
	Dirty bool  `bits:""`
	Kind  Mode  `bits:"len=3,skip=2"`
	Level uint8 `bits:"@11,len=4"`
}

// @bitfield storage=uint64
type Split struct {
	FirstValue  uint8  `bits:"len=3,ext=23:1"`
	SecondValue uint32 `bits:"len=20"`
}

// @bitfield storage=uint64
type Signed struct {
	Delta int32 `bits:"len=32"`
	Flag  bool  `bits:""`
}
