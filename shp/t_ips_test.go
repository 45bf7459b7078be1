// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_ips01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips01. positive weights and weight sums")

	for n := 1; n <= 5; n++ {

		io.Pfyel("------------------------------- n=%d -------------------------------\n", n)

		lin := LinRule(n)
		qua := QuaRule(n, n)
		hex := HexRule(n, n)
		chk.IntAssert(len(lin.Vol), n)
		chk.IntAssert(len(qua.Vol), n*n)
		chk.IntAssert(len(hex.Vol), n*n*n)

		sums := []float64{0, 0, 0}
		for i, rule := range []*Rule{lin, qua, hex} {
			for _, ip := range rule.Vol {
				if ip[3] <= 0 {
					tst.Errorf("nonpositive weight %g in rule with gdim=%d\n", ip[3], rule.Gdim)
					return
				}
				sums[i] += ip[3]
			}
		}
		chk.Scalar(tst, "Σw lin", 1e-14, sums[0], 2.0)
		chk.Scalar(tst, "Σw qua", 1e-14, sums[1], 4.0)
		chk.Scalar(tst, "Σw hex", 1e-13, sums[2], 8.0)
	}
}

func Test_ips02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips02. grid ordering and polynomial exactness")

	// volume points follow the 1D abscissae with r varying fastest
	x, w := gausspoints(2)
	qua := QuaRule(2, 2)
	chk.Vector(tst, "ip0", 1e-17, qua.Vol[0], []float64{x[0], x[0], 0, w[0] * w[0]})
	chk.Vector(tst, "ip1", 1e-17, qua.Vol[1], []float64{x[1], x[0], 0, w[1] * w[0]})
	chk.Vector(tst, "ip2", 1e-17, qua.Vol[2], []float64{x[0], x[1], 0, w[0] * w[1]})
	chk.Vector(tst, "ip3", 1e-17, qua.Vol[3], []float64{x[1], x[1], 0, w[1] * w[1]})
	chk.Scalar(tst, "|r|", 1e-15, math.Abs(x[0]), 1.0/math.Sqrt(3.0))

	// repeated construction gives identical rules
	a := QuaRule(3, 2)
	b := QuaRule(3, 2)
	av := make([][]float64, len(a.Vol))
	bv := make([][]float64, len(b.Vol))
	for i := range a.Vol {
		av[i] = a.Vol[i]
		bv[i] = b.Vol[i]
	}
	chk.Deep2(tst, "repeated rule", 1e-17, av, bv)

	// two-point rules integrate cubics exactly
	I := 0.0
	for _, ip := range LinRule(2).Vol {
		I += (ip[0]*ip[0]*ip[0] + ip[0]*ip[0]) * ip[3]
	}
	chk.Scalar(tst, "∫(r³+r²)dr", 1e-15, I, 2.0/3.0)

	I = 0.0
	for _, ip := range qua.Vol {
		I += ip[0] * ip[0] * ip[1] * ip[1] * ip[3]
	}
	chk.Scalar(tst, "∫r²s² dr ds", 1e-15, I, 4.0/9.0)

	I = 0.0
	for _, ip := range HexRule(2, 2).Vol {
		I += ip[0] * ip[0] * ip[1] * ip[1] * ip[2] * ip[2] * ip[3]
	}
	chk.Scalar(tst, "∫r²s²t² dr ds dt", 1e-15, I, 8.0/27.0)
}

func Test_ips03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips03. face points, normals and surface Jacobians")

	// unit square: bottom edge normal is (0,-1/2) since the edge maps
	// a parametric length of 2 onto a real length of 1
	shape := Get("qua4")
	xpts := []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	rule := QuaRule(2, 2)
	q := Quadrature{Rule: rule}
	scr := shape.NewScratch()
	pt := make([]float64, 3)
	tangent := make([]float64, 2)
	nvec := make([]float64, 2)
	w := q.FaceIpCoords(0, 0, pt, tangent)
	err := shape.CalcAtR(scr, xpts, pt, true)
	if err != nil {
		tst.Errorf("CalcAtR failed:\n%v", err)
		return
	}
	scr.FaceNvec(nvec, tangent)
	io.Pforan("nvec(bottom) = %v\n", nvec)
	chk.Scalar(tst, "w", 1e-15, w, 1.0)
	chk.Vector(tst, "nvec(bottom)", 1e-15, nvec, []float64{0, -0.5})

	// perimeter of unit square: Σ w*‖nvec‖ over all edges
	per := 0.0
	for face := 0; face < q.NumFaces(); face++ {
		for n := 0; n < q.NumFaceIps(face); n++ {
			w = q.FaceIpCoords(face, n, pt, tangent)
			err = shape.CalcAtR(scr, xpts, pt, true)
			if err != nil {
				tst.Errorf("CalcAtR failed:\n%v", err)
				return
			}
			scr.FaceNvec(nvec, tangent)
			per += w * math.Sqrt(nvec[0]*nvec[0]+nvec[1]*nvec[1])
		}
	}
	chk.Scalar(tst, "perimeter", 1e-14, per, 4.0)

	// outwardness on a distorted quadrilateral
	xdis := []float64{
		0, 0, 0,
		1.2, 0.1, 0,
		1.1, 0.9, 0,
		-0.1, 1.1, 0,
	}
	CheckFaceNvecs(tst, shape, rule, xdis, chk.Verbose)

	// surface area of the unit cube and outwardness on a distorted hex
	hshape := Get("hex8")
	hx := []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
		0, 0, 1,
		1, 0, 1,
		1, 1, 1,
		0, 1, 1,
	}
	hrule := HexRule(2, 2)
	hq := Quadrature{Rule: hrule}
	hscr := hshape.NewScratch()
	htan := make([]float64, 6)
	hnvec := make([]float64, 3)
	area := 0.0
	for face := 0; face < hq.NumFaces(); face++ {
		for n := 0; n < hq.NumFaceIps(face); n++ {
			w = hq.FaceIpCoords(face, n, pt, htan)
			err = hshape.CalcAtR(hscr, hx, pt, true)
			if err != nil {
				tst.Errorf("CalcAtR failed:\n%v", err)
				return
			}
			hscr.FaceNvec(hnvec, htan)
			area += w * math.Sqrt(hnvec[0]*hnvec[0]+hnvec[1]*hnvec[1]+hnvec[2]*hnvec[2])
		}
	}
	chk.Scalar(tst, "cube area", 1e-13, area, 6.0)

	hdis := []float64{
		0, 0, 0,
		1.1, 0, 0.1,
		1.2, 1.1, 0,
		0, 1, 0.1,
		0.1, 0, 0.9,
		1, 0.1, 1,
		1, 1, 1.2,
		0, 1.1, 1,
	}
	CheckFaceNvecs(tst, hshape, hrule, hdis, chk.Verbose)
}
