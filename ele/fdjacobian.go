// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// FdJacobian wraps a formulation and computes its Jacobian by finite
// differences of AddResidual. The three state vectors are differenced
// independently, column by column, and any block whose coefficient (α, β, γ)
// is zero is skipped. Caller vectors are never modified; perturbations are
// applied to private copies.
type FdJacobian struct {
	Element         // wrapped formulation
	Order   int     // 1 (forward) or 2 (central); 0 selects 2
	Step    float64 // perturbation size; values smaller than 1e-14 select 1e-6
}

// WrapFdJacobian wraps a formulation so that the Jacobian dispatch always
// takes the finite-difference path, e.g. to cross-check an analytical
// Jacobian. The wrapper exposes the mandatory contract plus AddJacobian;
// other optional capabilities of the inner formulation are hidden.
func WrapFdJacobian(e Element, order int, step float64) Element {
	return &FdJacobian{Element: e, Order: order, Step: step}
}

// AddJacobian adds α·∂res/∂vars + β·∂res/∂dvars + γ·∂res/∂ddvars into mat by
// differencing AddResidual, and adds the unperturbed residual into res once
func (o *FdJacobian) AddJacobian(elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, res []float64, mat [][]float64) (err error) {

	// defaults
	order, h := o.Order, o.Step
	if order == 0 {
		order = 2
	}
	if order != 1 && order != 2 {
		return chk.Err("element %d: finite-difference order must be 1 or 2. order=%d is invalid", elemIndex, o.Order)
	}
	if h < 1e-14 {
		h = 1e-6
	}

	// unperturbed residual
	nv := NumVariables(o.Element)
	r0 := make([]float64, nv)
	if err = o.Element.AddResidual(elemIndex, time, xpts, vars, dvars, ddvars, r0); err != nil {
		return
	}
	for i := 0; i < nv; i++ {
		res[i] += r0[i]
	}

	// difference each state block
	rp := make([]float64, nv)
	rm := make([]float64, nv)
	q := make([]float64, nv)
	states := [][]float64{vars, dvars, ddvars}
	coeffs := []float64{α, β, γ}
	for k := 0; k < 3; k++ {
		c := coeffs[k]
		if c == 0 {
			continue
		}
		orig := states[k]
		copy(q, orig)
		states[k] = q
		for j := 0; j < nv; j++ {
			q[j] = orig[j] + h
			la.VecFill(rp, 0)
			if err = o.Element.AddResidual(elemIndex, time, xpts, states[0], states[1], states[2], rp); err != nil {
				return
			}
			if order == 2 {
				q[j] = orig[j] - h
				la.VecFill(rm, 0)
				if err = o.Element.AddResidual(elemIndex, time, xpts, states[0], states[1], states[2], rm); err != nil {
					return
				}
				for i := 0; i < nv; i++ {
					mat[i][j] += c * (rp[i] - rm[i]) / (2.0 * h)
				}
			} else {
				for i := 0; i < nv; i++ {
					mat[i][j] += c * (rp[i] - r0[i]) / h
				}
			}
			q[j] = orig[j]
		}
		states[k] = orig
	}
	return
}
