// SPDX-License-Identifier: MIT

// Package matrix provides universal operations on any Matrix implementation:
// the allocating difference Sub, and the in-place kernels used by
// the explicit time integrators. All functions perform fail-fast validation
// and return sentinel errors on dimension mismatches.
package matrix

// Sub returns a new Matrix containing the element-wise difference a - b.
// Stage 1 (Validate): nil-checks and shape match.
// Stage 2 (Prepare): allocate result Dense with the finite-value guard off.
// Stage 3 (Execute): fast-path for *Dense or fallback to interface.
// Complexity: O(r·c) time and memory.
func Sub(a, b Matrix) (Matrix, error) {
	// Stage 1: Validate
	if err := validatePair(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	// Stage 2: Allocate result Dense
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	// Stage 3: Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] - db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: generic interface loop
	var (
		i, j   int
		av, bv float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			av, _ = a.At(i, j) // safe: bounds ensured
			bv, _ = b.At(i, j) // safe: same shape
			res.data[i*cols+j] = av - bv
		}
	}

	return res, nil
}

// CopyFrom overwrites dst with the contents of src without reallocating.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r·c), no allocation.
func (m *Dense) CopyFrom(src *Dense) error {
	if err := validatePair(m, src); err != nil {
		return matrixErrorf(opCopyFrom, err)
	}
	copy(m.data, src.data)

	return nil
}

// AddScaled performs the in-place update dst ← dst + alpha·x (AXPY).
// This is the explicit Euler update and the final stage of every Runge-Kutta
// variant. No numeric policy is applied.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r·c), no allocation.
func AddScaled(dst *Dense, alpha float64, x *Dense) error {
	if err := validatePair(dst, x); err != nil {
		return matrixErrorf(opAddScaled, err)
	}
	for idx, v := range x.data {
		dst.data[idx] += alpha * v
	}

	return nil
}

// LinearCombination writes dst ← a·x + b·y in place. dst may alias x or y.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r·c), no allocation.
func LinearCombination(dst *Dense, a float64, x *Dense, b float64, y *Dense) error {
	if err := validatePair(dst, x); err != nil {
		return matrixErrorf(opLinComb, err)
	}
	if err := validatePair(dst, y); err != nil {
		return matrixErrorf(opLinComb, err)
	}
	for idx := range dst.data {
		dst.data[idx] = a*x.data[idx] + b*y.data[idx]
	}

	return nil
}
