package mathx

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Factorial computes n! exactly for n >= 0.
func Factorial(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be a non-negative integer", ErrInvalidArgument)
	}
	result := big.NewInt(1)
	for i := 2; i <= n; i++ {
		result.Mul(result, big.NewInt(int64(i)))
	}
	return result, nil
}

// Fibonacci returns the n-th number of the canonical sequence
// fib(0)=0, fib(1)=1.
func Fibonacci(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be a non-negative integer", ErrInvalidArgument)
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}

// Mean returns the arithmetic mean of a non-empty sequence.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("%w: the given data is empty", ErrInvalidArgument)
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), nil
}
