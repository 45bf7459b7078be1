// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// The functions below form the calling surface of the kernel. They validate
// buffer sizes, dispatch to the optional capability when the formulation
// implements it, and otherwise apply the neutral default of the contract.
// Assemblers and tests call these instead of the methods directly.

// NumVariables returns the total number of unknowns of an element. It is
// always the product of NumNodes and VarsPerNode and cannot be overridden.
func NumVariables(e Element) int {
	return e.NumNodes() * e.VarsPerNode()
}

// MultiplierIndex returns the local index of the Lagrange multiplier variable
// or -1 when the formulation carries none
func MultiplierIndex(e Element) int {
	if w, ok := e.(WithMultiplier); ok {
		return w.MultiplierIndex()
	}
	return -1
}

// InitConditions fills the state vectors with the initial conditions of the
// formulation. The vectors are zeroed first; formulations lacking the
// capability therefore start from rest.
func InitConditions(e Element, elemIndex int, xpts, vars, dvars, ddvars []float64) (err error) {
	if err = checkStates(e, elemIndex, xpts, vars, dvars, ddvars); err != nil {
		return
	}
	la.VecFill(vars, 0)
	la.VecFill(dvars, 0)
	la.VecFill(ddvars, 0)
	if w, ok := e.(WithInitConditions); ok {
		return w.InitConditions(elemIndex, xpts, vars, dvars, ddvars)
	}
	return
}

// Energies returns the kinetic (Te) and potential (Pe) energies of the
// element at the given time and state. Formulations lacking the capability
// report zero for both.
func Energies(e Element, elemIndex int, time float64, xpts, vars, dvars []float64) (Te, Pe float64, err error) {
	nv := NumVariables(e)
	if err = checkVec(elemIndex, "xpts", xpts, 3*e.NumNodes()); err != nil {
		return
	}
	if err = checkVec(elemIndex, "vars", vars, nv); err != nil {
		return
	}
	if err = checkVec(elemIndex, "dvars", dvars, nv); err != nil {
		return
	}
	if w, ok := e.(WithEnergies); ok {
		return w.Energies(elemIndex, time, xpts, vars, dvars)
	}
	return
}

// AddResidual adds the element residual into res after validating all buffer
// sizes against the dimensions of the formulation
func AddResidual(e Element, elemIndex int, time float64, xpts, vars, dvars, ddvars, res []float64) (err error) {
	if err = checkStates(e, elemIndex, xpts, vars, dvars, ddvars); err != nil {
		return
	}
	if err = checkVec(elemIndex, "res", res, NumVariables(e)); err != nil {
		return
	}
	return e.AddResidual(elemIndex, time, xpts, vars, dvars, ddvars, res)
}

// AddJacobian adds α·∂res/∂vars + β·∂res/∂dvars + γ·∂res/∂ddvars into mat and
// the unperturbed residual into res. Formulations lacking an analytical
// Jacobian fall back to central finite differences of AddResidual.
func AddJacobian(e Element, elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, res []float64, mat [][]float64) (err error) {
	if err = checkStates(e, elemIndex, xpts, vars, dvars, ddvars); err != nil {
		return
	}
	nv := NumVariables(e)
	if err = checkVec(elemIndex, "res", res, nv); err != nil {
		return
	}
	if err = checkMat(elemIndex, "mat", mat, nv, nv); err != nil {
		return
	}
	if w, ok := e.(WithJacobian); ok {
		return w.AddJacobian(elemIndex, time, α, β, γ, xpts, vars, dvars, ddvars, res, mat)
	}
	fd := FdJacobian{Element: e}
	return fd.AddJacobian(elemIndex, time, α, β, γ, xpts, vars, dvars, ddvars, res, mat)
}

// CalcMatType computes one assembled matrix kind into mat, overwriting it.
// Without the capability, stiffness, damping and mass are derived from
// AddJacobian at zero rates and accelerations with (α,β,γ) set to (1,0,0),
// (0,1,0) and (0,0,1) respectively. The geometric stiffness has no generic
// derivation; computed is then false and mat is left zeroed.
func CalcMatType(e Element, mtype MatrixType, elemIndex int, time float64, xpts, vars []float64, mat [][]float64) (computed bool, err error) {
	nv := NumVariables(e)
	if err = checkVec(elemIndex, "xpts", xpts, 3*e.NumNodes()); err != nil {
		return
	}
	if err = checkVec(elemIndex, "vars", vars, nv); err != nil {
		return
	}
	if err = checkMat(elemIndex, "mat", mat, nv, nv); err != nil {
		return
	}
	if w, ok := e.(WithMatType); ok {
		return w.CalcMatType(mtype, elemIndex, time, xpts, vars, mat)
	}
	la.MatFill(mat, 0)
	var α, β, γ float64
	switch mtype {
	case StiffnessMatrix:
		α = 1
	case DampingMatrix:
		β = 1
	case MassMatrix:
		γ = 1
	default:
		return false, nil
	}
	dvars := make([]float64, nv)
	ddvars := make([]float64, nv)
	res := make([]float64, nv)
	err = AddJacobian(e, elemIndex, time, α, β, γ, xpts, vars, dvars, ddvars, res, mat)
	computed = err == nil
	return
}

// MatVecDataSizes returns the sizes of the data and temp buffers needed by
// matrix-free products. Both are zero without the capability.
func MatVecDataSizes(e Element, mtype MatrixType, elemIndex int) (dsize, tsize int) {
	if w, ok := e.(WithMatVecProduct); ok {
		return w.MatVecDataSizes(mtype, elemIndex)
	}
	return
}

// MatVecProductData fills data with the compact representation of the matrix
// selected by mtype. Without the capability nothing is written.
func MatVecProductData(e Element, mtype MatrixType, elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, data []float64) (err error) {
	if err = checkStates(e, elemIndex, xpts, vars, dvars, ddvars); err != nil {
		return
	}
	if w, ok := e.(WithMatVecProduct); ok {
		return w.MatVecProductData(mtype, elemIndex, time, α, β, γ, xpts, vars, dvars, ddvars, data)
	}
	return
}

// AddMatVecProduct adds mat·px into py using previously computed data.
// Without the capability py is left untouched.
func AddMatVecProduct(e Element, mtype MatrixType, elemIndex int, data, temp, px, py []float64) {
	if w, ok := e.(WithMatVecProduct); ok {
		w.AddMatVecProduct(mtype, elemIndex, data, temp, px, py)
	}
}

// PointQuantity evaluates a pointwise quantity at parametric point pt.
// Without the capability the count is zero and nothing is written.
func PointQuantity(e Element, elemIndex, quantityType int, time float64, n int, pt, xpts, vars, dvars, ddvars, quantity []float64) (count int, detXd float64, err error) {
	if err = checkStates(e, elemIndex, xpts, vars, dvars, ddvars); err != nil {
		return
	}
	if w, ok := e.(WithPointQuantity); ok {
		return w.PointQuantity(elemIndex, quantityType, time, n, pt, xpts, vars, dvars, ddvars, quantity)
	}
	return
}

// checkVec returns an error naming the element index when the length of v
// differs from n
func checkVec(elemIndex int, name string, v []float64, n int) (err error) {
	if len(v) != n {
		return chk.Err("element %d: len(%s)=%d is incorrect. it must be %d", elemIndex, name, len(v), n)
	}
	return
}

// checkMat returns an error naming the element index when m is not nrow×ncol
func checkMat(elemIndex int, name string, m [][]float64, nrow, ncol int) (err error) {
	if len(m) != nrow {
		return chk.Err("element %d: len(%s)=%d is incorrect. it must be %d", elemIndex, name, len(m), nrow)
	}
	for i := 0; i < nrow; i++ {
		if len(m[i]) != ncol {
			return chk.Err("element %d: len(%s[%d])=%d is incorrect. it must be %d", elemIndex, name, i, len(m[i]), ncol)
		}
	}
	return
}

// checkStates validates coordinates and the three state vectors at once
func checkStates(e Element, elemIndex int, xpts, vars, dvars, ddvars []float64) (err error) {
	if err = checkVec(elemIndex, "xpts", xpts, 3*e.NumNodes()); err != nil {
		return
	}
	nv := NumVariables(e)
	if err = checkVec(elemIndex, "vars", vars, nv); err != nil {
		return
	}
	if err = checkVec(elemIndex, "dvars", dvars, nv); err != nil {
		return
	}
	return checkVec(elemIndex, "ddvars", ddvars, nv)
}
