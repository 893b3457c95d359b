package glimpse

//go:generate stringer -type=Key -trimprefix=Key

type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyR
	KeyQ
)
