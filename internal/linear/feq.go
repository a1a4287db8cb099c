package linear

import "gonum.org/v1/gonum/floats/scalar"

// tol bounds the absolute and relative error of resource and distance
// comparisons. The dominance predicates must never distinguish two values
// separated only by integration noise.
const tol = 1e-9

func feq(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, tol, tol)
}

func fle(a, b float64) bool {
	return a < b || feq(a, b)
}

func equal(a, b Resources) bool {
	return feq(a.Energy, b.Energy) && feq(a.Time, b.Time)
}

func lessEqual(a, b Resources) bool {
	return fle(a.Energy, b.Energy) && fle(a.Time, b.Time)
}

// less orders resources by energy first, then time; values within
// tolerance of each other are ties on both components.
func less(a, b Resources) bool {
	if !feq(a.Energy, b.Energy) {
		return a.Energy < b.Energy
	}
	return a.Time < b.Time && !feq(a.Time, b.Time)
}
