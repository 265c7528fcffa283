package example

//go:generate go run ../cmd/bitgen generate samples.go

// @bitfield storage=uint64
type SampleStruct struct {
	FieldOne   int32  `bits:"len=32"`
	FieldTwo   bool   `bits:""`
	FieldThree uint16 `bits:"len=16"`
}

// SampleExtendedStruct keeps the five extension bits of FirstValue in place,
// so FirstValue reads bits 0-11 and 25-29 as one number.
//
// @bitfield storage=uint64
type SampleExtendedStruct struct {
	FirstValue  uint32 `bits:"len=12,ext=25:5,keep"`
	SecondValue uint16 `bits:"len=13"`
}

// @bitfield storage=uint64
type SampleExtendedWithoutKeepStruct struct {
	FirstValue  uint8  `bits:"len=3,ext=23:1"`
	SecondValue uint32 `bits:"len=20"`
}

// @bitfield storage=uint8
type SampleBooleanStruct struct {
	Field1 bool  `bits:""`
	Field2 bool  `bits:"len=3"`
	Field3 bool  `bits:""`
	Field4 uint8 `bits:"len=5"`
}

// SampleUnionStruct views the low bits of the word through overlapping
// fields.
//
// @bitfield storage=uint64 overlap=allow
type SampleUnionStruct struct {
	All        uint32 `bits:"@0,len=16"`
	HalfOneAll uint32 `bits:"@0,len=2"`
	HalfTwoAll uint32 `bits:"@2,len=2"`
	LastVal    uint32 `bits:"len=16"`
}

type Priority uint8

// Packet is a 32 bit frame header.
//
// @bitfield storage=uint32 overflow=reject
type Packet struct {
	Version  uint8    `bits:"len=4"`
	Urgent   bool     `bits:""`
	Priority Priority `bits:"len=3,skip=3"`
	Length   uint16   `bits:"len=12,ext=28:2"`
	Delta    int8     `bits:"@24,len=5"`
}
