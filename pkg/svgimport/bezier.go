package svgimport

import (
	"math"
)

func factorial(n int) int {
	if n == 0 {
		return 1
	}

	return n * factorial(n-1)
}

// refer: http://zobaczycmatematyke.krk.pl/025-Zolkos-Krakow/bezier.html
func bezier(t float64, points []Point) Point {
	var result Point

	n := len(points) - 1
	for i, p := range points {
		d := float64(factorial(n)) /
			float64(factorial(i)*factorial(n-i)) *
			math.Pow(t, float64(i)) *
			math.Pow(1-t, float64(n-i))
		result = result.Add(p.Mul(d))
	}

	return result
}

// flattenBezier returns steps points along the curve, excluding points[0]
// and ending exactly on the last control point.
func flattenBezier(steps int, points ...Point) []Point {
	if steps < 1 {
		steps = 1
	}

	result := make([]Point, 0, steps)
	for i := 1; i < steps; i++ {
		result = append(result, bezier(float64(i)/float64(steps), points))
	}

	return append(result, points[len(points)-1])
}

// flattenCircle returns steps+1 points around a circle starting and ending
// at angle 0.
func flattenCircle(steps int, center Point, r float64) []Point {
	if steps < 3 {
		steps = 3
	}

	result := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		result = append(result, center.Add(Pt(math.Cos(a)*r, math.Sin(a)*r)))
	}

	return result
}
