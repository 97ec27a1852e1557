package world

import "math"

func floorDiv(v, size float64) float64 {
	return math.Floor(v / size)
}

func ceilDiv(v, size float64) float64 {
	return math.Ceil(v / size)
}
