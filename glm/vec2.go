package glm

type Vec2[T Numeric] [2]T

func (lhs Vec2[T]) Add(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs[0] + rhs[0], lhs[1] + rhs[1]}
}

func (lhs Vec2[T]) Sub(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs[0] - rhs[0], lhs[1] - rhs[1]}
}

// Div divides component wise.
func (lhs Vec2[T]) Div(rhs Vec2[T]) Vec2[T] {
	return Vec2[T]{lhs[0] / rhs[0], lhs[1] / rhs[1]}
}

func (lhs Vec2[T]) XY() (x, y T) {
	return lhs[0], lhs[1]
}
