// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions and quadrature rules for element integration
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// constants
const (
	MINDET     = 1.0e-14 // minimum determinant allowed for dxdR
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data of one cell kind. Shape structures are immutable;
// evaluation results go into a caller-owned Scratch so that a single Shape may
// be shared by any number of goroutines.
type Shape struct {
	Type      string      // name; e.g. "qua4"
	Func      ShpFunc     // shape/derivs function callback
	Gndim     int         // parametric dimension; e.g. "qua4" => 2 (even in 3D simulations)
	Nverts    int         // number of vertices in cell
	NatCoords [][]float64 // natural coordinates of vertices [gndim][nverts]
}

// Scratch holds the results of one shape function evaluation. Nodal coordinates
// enter as a flat slice with three entries per node; plane cells read x and y
// and ignore z.
type Scratch struct {
	S    []float64   // [nverts] shape functions
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdR
}

// NewScratch allocates a scratchpad for evaluations of this shape
func (o *Shape) NewScratch() *Scratch {
	return &Scratch{
		S:    make([]float64, o.Nverts),
		DSdR: la.MatAlloc(o.Nverts, o.Gndim),
		DxdR: la.MatAlloc(o.Gndim, o.Gndim),
		DRdx: la.MatAlloc(o.Gndim, o.Gndim),
		G:    la.MatAlloc(o.Nverts, o.Gndim),
	}
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure. Returns nil on errors.
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s
}

// CalcAtR calculates volume data such as S and G at natural coordinates r
//  Input:
//   xpts[3*nverts] -- nodal coordinates, three per node
//   r[3]           -- natural coordinates
//  Output (in scr):
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtR(scr *Scratch, xpts, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(scr.S, scr.DSdR, r, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_m x * dSdR  =>  dx_i/dR_j := sum_m x^m_i * dS^m/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			scr.DxdR[i][j] = 0.0
			for m := 0; m < o.Nverts; m++ {
				scr.DxdR[i][j] += xpts[3*m+i] * scr.DSdR[m][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	scr.J, err = la.MatInv(scr.DRdx, scr.DxdR, MINDET)
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx
	la.MatMul(scr.G, 1, scr.DSdR, scr.DRdx)
	return
}

// RealCoords fills x (length 3) with the real coordinates of the point with
// natural coordinates r. Entries of x beyond the parametric dimension are
// interpolated as well, since coordinates always carry three components.
func (o *Shape) RealCoords(x []float64, scr *Scratch, xpts, r []float64) {
	o.Func(scr.S, scr.DSdR, r, false)
	for i := 0; i < 3; i++ {
		x[i] = 0
		for m := 0; m < o.Nverts; m++ {
			x[i] += scr.S[m] * xpts[3*m+i]
		}
	}
}

// InvMap computes the natural coordinates r, given the real coordinates y
//  Input:
//   y[gndim]       -- the point coordinates
//   xpts[3*nverts] -- nodal coordinates, three per node
//  Output:
//   r[3] -- the natural coordinates of the given point
func (o *Shape) InvMap(r, y []float64, scr *Scratch, xpts []float64) (err error) {

	// check
	if o.Gndim == 1 {
		return chk.Err("inverse mapping is not implemented in 1D")
	}

	var δRnorm float64
	e := make([]float64, o.Gndim)  // residual
	δr := make([]float64, o.Gndim) // corrector
	r[0], r[1], r[2] = 0, 0, 0     // first trial
	it := 0
	for it = 0; it < INVMAP_NIT; it++ {

		// shape functions and derivatives
		o.Func(scr.S, scr.DSdR, r, true)

		// residual: e = y - x * S
		for i := 0; i < o.Gndim; i++ {
			e[i] = y[i]
			for m := 0; m < o.Nverts; m++ {
				e[i] -= xpts[3*m+i] * scr.S[m]
			}
		}

		// dxdR := x * dSdR
		for i := 0; i < o.Gndim; i++ {
			for j := 0; j < o.Gndim; j++ {
				scr.DxdR[i][j] = 0.0
				for m := 0; m < o.Nverts; m++ {
					scr.DxdR[i][j] += xpts[3*m+i] * scr.DSdR[m][j]
				}
			}
		}

		// dRdx = inv(dxdR)
		scr.J, err = la.MatInv(scr.DRdx, scr.DxdR, MINDET)
		if err != nil {
			return
		}

		// corrector: dR = dRdx * e
		for i := 0; i < o.Gndim; i++ {
			δr[i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				δr[i] += scr.DRdx[i][j] * e[j]
			}
		}

		// converged?
		δRnorm = 0.0
		for i := 0; i < o.Gndim; i++ {
			r[i] += δr[i]
			δRnorm += δr[i] * δr[i]
			// fix r outside range
			if r[i] < -1.0 || r[i] > 1.0 {
				if math.Abs(r[i]-(-1.0)) < INVMAP_TOL {
					r[i] = -1.0
				}
				if math.Abs(r[i]-1.0) < INVMAP_TOL {
					r[i] = 1.0
				}
			}
		}
		if math.Sqrt(δRnorm) < INVMAP_TOL {
			break
		}
	}

	// check convergence
	if it == INVMAP_NIT {
		return chk.Err("inverse mapping did not converge after %d iterations", it)
	}
	return
}

// FaceNvec computes the outward normal vector at a face point from the
// parametric tangents, after CalcAtR has been called with derivs=true at that
// same point. The norm of nvec is the surface Jacobian for face integration.
//  Input:
//   tangent -- the parametric tangent vectors as filled by FaceIpCoords
//  Output:
//   nvec[gndim] -- outward normal vector (not normalized)
func (o *Scratch) FaceNvec(nvec, tangent []float64) {
	gdim := len(o.DxdR)
	if gdim == 2 {
		vx := o.DxdR[0][0]*tangent[0] + o.DxdR[0][1]*tangent[1]
		vy := o.DxdR[1][0]*tangent[0] + o.DxdR[1][1]*tangent[1]
		nvec[0] = vy
		nvec[1] = -vx
		return
	}
	var v1, v2 [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v1[i] += o.DxdR[i][j] * tangent[j]
			v2[i] += o.DxdR[i][j] * tangent[3+j]
		}
	}
	nvec[0] = v1[1]*v2[2] - v1[2]*v2[1]
	nvec[1] = v1[2]*v2[0] - v1[0]*v2[2]
	nvec[2] = v1[0]*v2[1] - v1[1]*v2[0]
}
