// file: internals/helpers/numeric.go
package helper

import "math"

// Round2 rounds to two decimal places, the precision used for weighted
// grades and session durations.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
