// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"testing"

	"github.com/SeiyonArulampalam/a2d-shells/ele"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/rnd"
)

func Test_transport01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transport01. advection of a linear field")

	e, err := ele.New("transport.qua4", []*fun.P{
		&fun.P{N: "vx", V: 2},
		&fun.P{N: "vy", V: -1},
	})
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	chk.IntAssert(e.VarsPerNode(), 1)
	chk.IntAssert(e.NumNodes(), 4)

	// steady advection of u = 1 + 2x - y/2: v·∇u = 4.5 spread evenly
	vars := []float64{1, 3, 2.5, 0.5}
	dvars := make([]float64, 4)
	ddvars := make([]float64, 4)
	res := make([]float64, 4)
	err = ele.AddResidual(e, 0, 0, unitSquare, vars, dvars, ddvars, res)
	if err != nil {
		tst.Errorf("AddResidual failed:\n%v", err)
		return
	}
	io.Pforan("res = %v\n", res)
	chk.Vector(tst, "res advection", 1e-14, res, []float64{1.125, 1.125, 1.125, 1.125})

	// a uniform rate loads all nodes equally on top
	dvars = []float64{3, 3, 3, 3}
	err = ele.AddResidual(e, 0, 0, unitSquare, vars, dvars, ddvars, res)
	if err != nil {
		tst.Errorf("AddResidual failed:\n%v", err)
		return
	}
	chk.Vector(tst, "res with rate", 1e-14, res, []float64{3, 3, 3, 3})

	// a constant source balances the advection exactly when s = v·∇u
	e2, err := NewTransport("qua4", []*fun.P{&fun.P{N: "vx", V: 2}, &fun.P{N: "vy", V: -1}})
	if err != nil {
		tst.Errorf("NewTransport failed:\n%v", err)
		return
	}
	e2.SetSource(&dbf.Cte{C: 4.5})
	res = make([]float64, 4)
	err = ele.AddResidual(e2, 0, 0, unitSquare, vars, make([]float64, 4), ddvars, res)
	if err != nil {
		tst.Errorf("AddResidual failed:\n%v", err)
		return
	}
	chk.Vector(tst, "res balanced", 1e-14, res, make([]float64, 4))
}

func Test_transport02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transport02. matrices derived by finite differences")

	// advection matrix for v = (1,0)
	e, err := NewTransport("qua4", []*fun.P{&fun.P{N: "vx", V: 1}})
	if err != nil {
		tst.Errorf("NewTransport failed:\n%v", err)
		return
	}
	vars := make([]float64, 4)
	mat := la.MatAlloc(4, 4)
	computed, err := ele.CalcMatType(e, ele.StiffnessMatrix, 0, 0, unitSquare, vars, mat)
	if err != nil {
		tst.Errorf("CalcMatType failed:\n%v", err)
		return
	}
	if !computed {
		tst.Errorf("advection matrix must be computed\n")
		return
	}
	chk.Deep2(tst, "A", 1e-7, mat, [][]float64{
		{-1.0 / 6.0, 1.0 / 6.0, 1.0 / 12.0, -1.0 / 12.0},
		{-1.0 / 6.0, 1.0 / 6.0, 1.0 / 12.0, -1.0 / 12.0},
		{-1.0 / 12.0, 1.0 / 12.0, 1.0 / 6.0, -1.0 / 6.0},
		{-1.0 / 12.0, 1.0 / 12.0, 1.0 / 6.0, -1.0 / 6.0},
	})

	// the rate matrix ∫S·S under the first derivative slot
	computed, err = ele.CalcMatType(e, ele.DampingMatrix, 0, 0, unitSquare, vars, mat)
	if err != nil {
		tst.Errorf("CalcMatType failed:\n%v", err)
		return
	}
	if !computed {
		tst.Errorf("rate matrix must be computed\n")
		return
	}
	chk.Deep2(tst, "∫S·S", 1e-7, mat, [][]float64{
		{4.0 / 36.0, 2.0 / 36.0, 1.0 / 36.0, 2.0 / 36.0},
		{2.0 / 36.0, 4.0 / 36.0, 2.0 / 36.0, 1.0 / 36.0},
		{1.0 / 36.0, 2.0 / 36.0, 4.0 / 36.0, 2.0 / 36.0},
		{2.0 / 36.0, 1.0 / 36.0, 2.0 / 36.0, 4.0 / 36.0},
	})

	// residual accumulation with random states
	rnd.Init(4321)
	v, dv, ddv := ele.RandStates(e, 0.5)
	ele.CheckResidualAccum(tst, e, 0, 0, unitSquare, v, dv, ddv, 1e-14)
}

func Test_transport03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transport03. velocity functions, quantities and defaults")

	// replace the constant velocity by functions
	e, err := NewTransport("qua4", nil)
	if err != nil {
		tst.Errorf("NewTransport failed:\n%v", err)
		return
	}
	err = e.SetVelocity(&dbf.Cte{C: 2}, &dbf.Cte{C: -1})
	if err != nil {
		tst.Errorf("SetVelocity failed:\n%v", err)
		return
	}
	vars := []float64{1, 3, 2.5, 0.5}
	dvars := make([]float64, 4)
	ddvars := make([]float64, 4)
	res := make([]float64, 4)
	err = ele.AddResidual(e, 0, 0, unitSquare, vars, dvars, ddvars, res)
	if err != nil {
		tst.Errorf("AddResidual failed:\n%v", err)
		return
	}
	chk.Vector(tst, "res", 1e-14, res, []float64{1.125, 1.125, 1.125, 1.125})

	// wrong number of components
	err = e.SetVelocity(&dbf.Cte{C: 1})
	if err == nil {
		tst.Errorf("SetVelocity must fail with one component on a plane cell\n")
		return
	}
	io.Pfgrey2("err = %v\n", err)

	// gradient of the field
	io.Pfyel("\npoint quantities\n")
	center := []float64{0, 0, 0}
	count, detXd, err := ele.PointQuantity(e, 0, GradVector, 0, 0, center, unitSquare, vars, dvars, ddvars, nil)
	if err != nil {
		tst.Errorf("PointQuantity failed:\n%v", err)
		return
	}
	chk.IntAssert(count, 2)
	chk.Scalar(tst, "detXd", 1e-15, detXd, 0.25)
	quantity := make([]float64, count)
	_, _, err = ele.PointQuantity(e, 0, GradVector, 0, 0, center, unitSquare, vars, dvars, ddvars, quantity)
	if err != nil {
		tst.Errorf("PointQuantity failed:\n%v", err)
		return
	}
	chk.Vector(tst, "∇u", 1e-13, quantity, []float64{2, -0.5})
	quantity = make([]float64, 1)
	_, _, err = ele.PointQuantity(e, 0, FieldValue, 0, 0, center, unitSquare, vars, dvars, ddvars, quantity)
	if err != nil {
		tst.Errorf("PointQuantity failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "u center", 1e-14, quantity[0], 1.75)

	// defaults of the contract apply
	Te, Pe, err := ele.Energies(e, 0, 0, unitSquare, vars, dvars)
	if err != nil {
		tst.Errorf("Energies failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "Te default", 1e-17, Te, 0)
	chk.Scalar(tst, "Pe default", 1e-17, Pe, 0)
	chk.IntAssert(ele.MultiplierIndex(e), -1)

	// advection in a cube
	io.Pfyel("\ncube\n")
	e3, err := ele.New("transport.hex8", []*fun.P{
		&fun.P{N: "vx", V: 1},
		&fun.P{N: "vy", V: 1},
		&fun.P{N: "vz", V: 1},
	})
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	vars3 := []float64{0, 1, 2, 1, 1, 2, 3, 2} // u = x + y + z
	res3 := make([]float64, 8)
	err = ele.AddResidual(e3, 0, 0, unitCube, vars3, make([]float64, 8), make([]float64, 8), res3)
	if err != nil {
		tst.Errorf("AddResidual failed:\n%v", err)
		return
	}
	expected := make([]float64, 8)
	for i := 0; i < 8; i++ {
		expected[i] = 3.0 / 8.0
	}
	chk.Vector(tst, "res cube", 1e-14, res3, expected)

	// vz cannot be given to a plane cell
	_, err = ele.New("transport.qua4", []*fun.P{&fun.P{N: "vz", V: 1}})
	if err == nil {
		tst.Errorf("New must fail with vz on a plane cell\n")
		return
	}
	io.Pfgrey2("err = %v\n", err)
}
