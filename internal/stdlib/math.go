package stdlib

import (
	"math"

	"github.com/lnsp/tea/internal/errors"
)

var divisionByZero = errors.New("division by zero")

func mathMod(a, b float64) float64 { return math.Mod(a, b) }
func mathPow(a, b float64) float64 { return math.Pow(a, b) }
