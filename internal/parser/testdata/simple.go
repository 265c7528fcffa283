package testdata

type Mode uint8

// @bitfield storage=uint64
type Sample struct {
	FieldOne   uint32 `bits:"len=32"`
	FieldTwo   bool   `bits:""`
	FieldThree uint16 `bits:"len=16"`
}

// Header is a page header.
//
// @bitfield storage=uint16 overflow=reject
type Header struct {
	Dirty bool  `bits:"len=4"`
	Kind  Mode  `bits:"len=3,skip=2"`
	Level uint8 `bits:"@11,len=4"`
	Note  string
}

// @bitfield storage=uint64
type Extended struct {
	FirstValue  uint32 `bits:"len=12,ext=25:5,keep"`
	SecondValue uint16 `bits:"len=13"`
}

// No annotation - should be skipped
type Ignored struct {
	Field uint32 `bits:"len=3"`
}
