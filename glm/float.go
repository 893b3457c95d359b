package glm

import "golang.org/x/exp/constraints"

type float interface {
	constraints.Float
}

// Numeric is the set of element types a vector or matrix can hold.
type Numeric interface {
	float | ~uint32 | ~uint16
}

// Rad is an angle in radians.
type Rad float32
