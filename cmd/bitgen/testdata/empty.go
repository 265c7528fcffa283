package wire

type Plain struct {
	A uint8
}
