// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_dispatch01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dispatch01. capabilities shadow the defaults")

	e := &pairfull{pair: *newPair(100, 3, 2), g: 7}
	xpts := []float64{0, 0, 0, 1, 0, 0}

	chk.IntAssert(MultiplierIndex(e), 1)

	// initial conditions come from the formulation, on zeroed buffers
	vars := []float64{11, 22}
	dvars := []float64{33, 44}
	ddvars := []float64{55, 66}
	err := InitConditions(e, 0, xpts, vars, dvars, ddvars)
	if err != nil {
		tst.Errorf("InitConditions failed:\n%v", err)
		return
	}
	chk.Vector(tst, "vars", 1e-17, vars, []float64{0.1, 0})
	chk.Vector(tst, "dvars", 1e-17, dvars, []float64{0, -0.2})
	chk.Vector(tst, "ddvars", 1e-17, ddvars, []float64{0, 0})

	// energies
	vars = []float64{0.3, 0.1}
	dvars = []float64{2, -1}
	Te, Pe, err := Energies(e, 0, 0, xpts, vars, dvars)
	if err != nil {
		tst.Errorf("Energies failed:\n%v", err)
		return
	}
	io.Pforan("Te = %v, Pe = %v\n", Te, Pe)
	chk.Scalar(tst, "Te", 1e-15, Te, 0.5*2*(4+1))
	chk.Scalar(tst, "Pe", 1e-15, Pe, 0.5*100*0.2*0.2)

	// point quantity: count query with nil slice, then evaluation
	pt := []float64{0, 0, 0}
	count, detXd, err := PointQuantity(e, 0, stretchQuantity, 0, 0, pt, xpts, vars, dvars, ddvars, nil)
	if err != nil {
		tst.Errorf("PointQuantity failed:\n%v", err)
		return
	}
	chk.IntAssert(count, 1)
	chk.Scalar(tst, "detXd", 1e-17, detXd, 0.5)
	quantity := make([]float64, count)
	_, _, err = PointQuantity(e, 0, stretchQuantity, 0, 0, pt, xpts, vars, dvars, ddvars, quantity)
	if err != nil {
		tst.Errorf("PointQuantity failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "stretch", 1e-15, quantity[0], -0.2)

	// unknown quantity tag
	count, detXd, err = PointQuantity(e, 0, 999, 0, 0, pt, xpts, vars, dvars, ddvars, nil)
	if err != nil {
		tst.Errorf("PointQuantity failed:\n%v", err)
		return
	}
	chk.IntAssert(count, 0)
	chk.Scalar(tst, "detXd", 1e-17, detXd, 0)
}

func Test_dispatch02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dispatch02. matrix kinds, derived and direct")

	xpts := []float64{0, 0, 0, 1, 0, 0}
	vars := []float64{0.01, -0.02}
	k, c, m := 100.0, 3.0, 2.0

	// minimal formulation: stiffness, damping and mass derive from the
	// residual; the geometric stiffness is reported as not computed
	e := newPair(k, c, m)
	mat := la.MatAlloc(2, 2)
	for _, tc := range []struct {
		mtype   MatrixType
		correct [][]float64
	}{
		{StiffnessMatrix, [][]float64{{k, -k}, {-k, k}}},
		{DampingMatrix, [][]float64{{c, -c}, {-c, c}}},
		{MassMatrix, [][]float64{{m, 0}, {0, m}}},
	} {
		la.MatFill(mat, 123) // must be overwritten
		computed, err := CalcMatType(e, tc.mtype, 0, 0, xpts, vars, mat)
		if err != nil {
			tst.Errorf("CalcMatType(%v) failed:\n%v", tc.mtype, err)
			return
		}
		if !computed {
			tst.Errorf("%v must be derivable from the residual", tc.mtype)
			return
		}
		chk.Deep2(tst, tc.mtype.String(), 1e-6, mat, tc.correct)
	}

	la.MatFill(mat, 123)
	computed, err := CalcMatType(e, GeometricStiffnessMatrix, 0, 0, xpts, vars, mat)
	if err != nil {
		tst.Errorf("CalcMatType failed:\n%v", err)
		return
	}
	if computed {
		tst.Errorf("geometric stiffness has no generic derivation")
		return
	}
	chk.Deep2(tst, "geometric (zeroed)", 1e-17, mat, [][]float64{{0, 0}, {0, 0}})

	// full formulation: its own answer is authoritative, even "not computed"
	g := 7.0
	f := &pairfull{pair: *newPair(k, c, m), g: g}
	la.MatFill(mat, 123)
	computed, err = CalcMatType(f, GeometricStiffnessMatrix, 0, 0, xpts, vars, mat)
	if err != nil {
		tst.Errorf("CalcMatType failed:\n%v", err)
		return
	}
	if !computed {
		tst.Errorf("formulation provides the geometric stiffness")
		return
	}
	chk.Deep2(tst, "geometric (direct)", 1e-17, mat, [][]float64{{g, -g}, {-g, g}})

	la.MatFill(mat, 123)
	computed, err = CalcMatType(f, StiffnessMatrix, 0, 0, xpts, vars, mat)
	if err != nil {
		tst.Errorf("CalcMatType failed:\n%v", err)
		return
	}
	if computed {
		tst.Errorf("formulation does not provide the stiffness directly")
		return
	}
	chk.Deep2(tst, "stiffness (zeroed)", 1e-17, mat, [][]float64{{0, 0}, {0, 0}})
}

func Test_dispatch03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dispatch03. matrix-free product protocol")

	k, c, m := 100.0, 3.0, 2.0
	e := &pairfull{pair: *newPair(k, c, m)}
	xpts := []float64{0, 0, 0, 1, 0, 0}
	vars := []float64{0, 0}
	zero := []float64{0, 0}

	dsize, tsize := MatVecDataSizes(e, StiffnessMatrix, 0)
	chk.IntAssert(dsize, 4)
	chk.IntAssert(tsize, 2)
	data := make([]float64, dsize)
	temp := make([]float64, tsize)
	err := MatVecProductData(e, StiffnessMatrix, 0, 0, 1, 0, 0, xpts, vars, zero, zero, data)
	if err != nil {
		tst.Errorf("MatVecProductData failed:\n%v", err)
		return
	}

	// the product accumulates and is repeatable for fixed data
	px := []float64{1, 2}
	py := make([]float64, 2)
	AddMatVecProduct(e, StiffnessMatrix, 0, data, temp, px, py)
	chk.Vector(tst, "py", 1e-13, py, []float64{k*1 - k*2, -k*1 + k*2})
	AddMatVecProduct(e, StiffnessMatrix, 0, data, temp, px, py)
	chk.Vector(tst, "py doubled", 1e-13, py, []float64{2 * (k*1 - k*2), 2 * (-k*1 + k*2)})

	// zero px leaves py unchanged
	before := []float64{py[0], py[1]}
	AddMatVecProduct(e, StiffnessMatrix, 0, data, temp, []float64{0, 0}, py)
	chk.Vector(tst, "py after zero px", 1e-17, py, before)
}
