// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	scr := shape.NewScratch()
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(scr.S, scr.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", scr.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(scr.S[m] - 1.0)
			} else {
				errS += math.Abs(scr.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// auxiliary
	scr := shape.NewScratch()
	rTmp := make([]float64, len(r))
	sTmp := make([]float64, shape.Nverts)

	// analytical
	shape.Func(scr.S, scr.DSdR, r, true)

	// numerical
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSndRi, _ := num.DerivCentral(func(t float64, args ...interface{}) (Sn float64) {
				copy(rTmp, r)
				rTmp[i] = t
				shape.Func(sTmp, nil, rTmp, false)
				Sn = sTmp[n]
				return
			}, r[i], 1e-1)
			if verbose {
				io.Pfgrey2("  dS%ddR%d @ %5.2f = %v (num: %v)\n", n, i, r, scr.DSdR[n][i], dSndRi)
			}
			if math.Abs(scr.DSdR[n][i]-dSndRi) > tol {
				tst.Errorf("%s dS%ddR%d failed with err = %g\n", shape.Type, n, i, math.Abs(scr.DSdR[n][i]-dSndRi))
				return
			}
		}
	}
}

// CheckDSdx checks G=dSdx derivatives of shape structures
func CheckDSdx(tst *testing.T, shape *Shape, xpts, x []float64, tol float64, verbose bool) {

	// find r corresponding to x
	scr := shape.NewScratch()
	r := make([]float64, 3)
	err := shape.InvMap(r, x, scr, xpts)
	if err != nil {
		tst.Errorf("InvMap failed:\n%v", err)
		return
	}

	// analytical
	err = shape.CalcAtR(scr, xpts, r, true)
	if err != nil {
		tst.Errorf("CalcAtR failed:\n%v", err)
		return
	}

	// numerical
	xTmp := make([]float64, len(x))
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSnDxi, _ := num.DerivCentral(func(t float64, args ...interface{}) (Sn float64) {
				copy(xTmp, x)
				xTmp[i] = t
				err = shape.InvMap(r, xTmp, scr, xpts)
				if err != nil {
					tst.Errorf("InvMap failed:\n%v", err)
					return
				}
				err = shape.CalcAtR(scr, xpts, r, false)
				if err != nil {
					tst.Errorf("CalcAtR failed:\n%v", err)
					return
				}
				Sn = scr.S[n]
				return
			}, x[i], 1e-1)
			if verbose {
				io.Pfgrey2("  dS%dDx%d @ %5.2f = %v (num: %v)\n", n, i, x, scr.G[n][i], dSnDxi)
			}
			if math.Abs(scr.G[n][i]-dSnDxi) > tol {
				tst.Errorf("%s dS%dDx%d failed with err = %g\n", shape.Type, n, i, math.Abs(scr.G[n][i]-dSnDxi))
				return
			}
		}
	}
}

// CheckFaceNvecs checks that face normal vectors point outwards of the cell
// described by xpts. The centroid of the cell is taken as the inside reference.
func CheckFaceNvecs(tst *testing.T, shape *Shape, rule *Rule, xpts []float64, verbose bool) {

	// centroid
	xcen := make([]float64, 3)
	for m := 0; m < shape.Nverts; m++ {
		for i := 0; i < 3; i++ {
			xcen[i] += xpts[3*m+i] / float64(shape.Nverts)
		}
	}

	// loop over faces and their integration points
	scr := shape.NewScratch()
	q := Quadrature{Rule: rule}
	pt := make([]float64, 3)
	xip := make([]float64, 3)
	nvec := make([]float64, shape.Gndim)
	ntans := 0
	if len(rule.Faces) > 0 {
		ntans = len(rule.Faces[0].Tans)
	}
	tangent := make([]float64, ntans*rule.Gdim)
	for face := 0; face < q.NumFaces(); face++ {
		for n := 0; n < q.NumFaceIps(face); n++ {
			q.FaceIpCoords(face, n, pt, tangent)

			// normal @ face point
			err := shape.CalcAtR(scr, xpts, pt, true)
			if err != nil {
				tst.Errorf("CalcAtR failed:\n%v", err)
				return
			}
			scr.FaceNvec(nvec, tangent)

			// nvec must point away from the centroid
			shape.RealCoords(xip, scr, xpts, pt)
			dot := 0.0
			for i := 0; i < shape.Gndim; i++ {
				dot += nvec[i] * (xip[i] - xcen[i])
			}
			if verbose {
				io.Pf("face %d ip %d: n = %v, dot = %g\n", face, n, nvec, dot)
			}
			if dot <= 0 {
				tst.Errorf("%s normal of face %d at ip %d does not point outwards (dot = %g)\n", shape.Type, face, n, dot)
				return
			}
		}
	}
}
