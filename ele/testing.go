// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/rnd"
)

// RandStates returns state vectors of a formulation filled with random values
// in [-amplitude, amplitude]. Call rnd.Init first for reproducibility.
func RandStates(e Element, amplitude float64) (vars, dvars, ddvars []float64) {
	nv := NumVariables(e)
	vars = make([]float64, nv)
	dvars = make([]float64, nv)
	ddvars = make([]float64, nv)
	for i := 0; i < nv; i++ {
		vars[i] = rnd.Float64(-amplitude, amplitude)
		dvars[i] = rnd.Float64(-amplitude, amplitude)
		ddvars[i] = rnd.Float64(-amplitude, amplitude)
	}
	return
}

// CheckResidualAccum verifies that AddResidual accumulates into res instead
// of overwriting it: two identical calls must double every entry
func CheckResidualAccum(tst *testing.T, e Element, elemIndex int, time float64, xpts, vars, dvars, ddvars []float64, tol float64) {
	nv := NumVariables(e)
	r1 := make([]float64, nv)
	if err := AddResidual(e, elemIndex, time, xpts, vars, dvars, ddvars, r1); err != nil {
		tst.Errorf("AddResidual failed:\n%v", err)
		return
	}
	r2 := make([]float64, nv)
	for it := 0; it < 2; it++ {
		if err := AddResidual(e, elemIndex, time, xpts, vars, dvars, ddvars, r2); err != nil {
			tst.Errorf("AddResidual failed:\n%v", err)
			return
		}
	}
	twice := make([]float64, nv)
	for i := 0; i < nv; i++ {
		twice[i] = 2.0 * r1[i]
	}
	chk.Vector(tst, "res accumulation", tol, r2, twice)
}

// CheckJacobian compares the Jacobian of a formulation, with its α, β and γ
// scaling, against central finite differences of AddResidual computed one
// entry at a time
func CheckJacobian(tst *testing.T, e Element, elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars []float64, step, tol float64, verbose bool) {

	if step < 1e-14 {
		step = 1e-6
	}

	// Jacobian as the formulation provides it
	nv := NumVariables(e)
	res := make([]float64, nv)
	Jana := la.MatAlloc(nv, nv)
	err := AddJacobian(e, elemIndex, time, α, β, γ, xpts, vars, dvars, ddvars, res, Jana)
	if err != nil {
		tst.Errorf("AddJacobian failed:\n%v", err)
		return
	}

	// numerical counterpart
	derivfcn := num.DerivCentral
	r := make([]float64, nv)
	q := make([]float64, nv)
	states := [][]float64{vars, dvars, ddvars}
	coeffs := []float64{α, β, γ}
	Jnum := la.MatAlloc(nv, nv)
	for k := 0; k < 3; k++ {
		if coeffs[k] == 0 {
			continue
		}
		orig := states[k]
		copy(q, orig)
		states[k] = q
		for j := 0; j < nv; j++ {
			for i := 0; i < nv; i++ {
				dnum, _ := derivfcn(func(x float64, args ...interface{}) (resI float64) {
					q[j] = x
					la.VecFill(r, 0)
					errR := e.AddResidual(elemIndex, time, xpts, states[0], states[1], states[2], r)
					if errR != nil {
						chk.Panic("testing: check: cannot compute residual:\n%v", errR)
					}
					return r[i]
				}, orig[j], step)
				Jnum[i][j] += coeffs[k] * dnum
			}
			q[j] = orig[j]
		}
		states[k] = orig
	}

	// compare
	for i := 0; i < nv; i++ {
		for j := 0; j < nv; j++ {
			chk.AnaNum(tst, io.Sf("J%3d%3d", i, j), tol, Jana[i][j], Jnum[i][j], verbose)
		}
	}
}
