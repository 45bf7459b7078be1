// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"
)

// Ipoint holds the natural coordinates and weight of an integration point: {r, s, t, w}
type Ipoint []float64

// FaceRule holds quadrature data of one face (or edge, or end point) of a cell.
// Points are expressed in the parametric space of the cell itself, not in a
// face-local parametrization, so that the cell's own shape functions can be
// evaluated directly at face points. Tangents are constant in parametric space
// and ordered such that the cross product of their real-space counterparts
// (after transformation by dxdR) points outwards of the cell; with a single
// tangent the cross product is taken against the out-of-plane axis.
type FaceRule struct {
	Ips  []Ipoint    // [nipf] integration points; weight at index 3
	Tans [][]float64 // [0, 1 or 2][gdim] parametric tangent vectors
}

// Rule holds volume and face quadrature data of one cell geometry.
// Rules are immutable after construction; point indices are therefore stable
// and may be used as keys for caching by callers.
type Rule struct {
	Gdim  int        // parametric dimension
	Vol   []Ipoint   // [nip] volume/area/line integration points
	Faces []FaceRule // [nfaces] face integration data
}

// gausspoints returns the abscissae and weights of the n-point Gauss-Legendre rule in [-1,1]
func gausspoints(n int) (x, w []float64) {
	if n < 1 {
		chk.Panic("Gauss-Legendre rule needs at least one point. n=%d is invalid", n)
	}
	x = make([]float64, n)
	w = make([]float64, n)
	rule := quad.Legendre{}
	rule.FixedLocations(x, w, -1, 1)
	return
}

// LinRule returns the quadrature data of a line cell with n points.
// The two "faces" are the end points r=-1 and r=+1, carrying no tangents.
func LinRule(n int) (o *Rule) {
	x, w := gausspoints(n)
	o = &Rule{Gdim: 1}
	o.Vol = make([]Ipoint, n)
	for i := 0; i < n; i++ {
		o.Vol[i] = Ipoint{x[i], 0, 0, w[i]}
	}
	o.Faces = []FaceRule{
		{Ips: []Ipoint{{-1, 0, 0, 1}}},
		{Ips: []Ipoint{{+1, 0, 0, 1}}},
	}
	return
}

// QuaRule returns the quadrature data of a quadrilateral cell with n×n volume
// points and nf points per edge. Edges follow the local vertex pairs
// (0,1), (1,2), (2,3), (3,0), counterclockwise, so that rotating each
// transformed tangent by -90° gives the outward normal.
func QuaRule(n, nf int) (o *Rule) {
	x, w := gausspoints(n)
	o = &Rule{Gdim: 2}
	o.Vol = make([]Ipoint, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			o.Vol[j*n+i] = Ipoint{x[i], x[j], 0, w[i] * w[j]}
		}
	}
	xf, wf := gausspoints(nf)
	o.Faces = make([]FaceRule, 4)
	for k := 0; k < 4; k++ {
		o.Faces[k].Ips = make([]Ipoint, nf)
	}
	for i := 0; i < nf; i++ {
		o.Faces[0].Ips[i] = Ipoint{xf[i], -1, 0, wf[i]}
		o.Faces[1].Ips[i] = Ipoint{+1, xf[i], 0, wf[i]}
		o.Faces[2].Ips[i] = Ipoint{xf[i], +1, 0, wf[i]}
		o.Faces[3].Ips[i] = Ipoint{-1, xf[i], 0, wf[i]}
	}
	o.Faces[0].Tans = [][]float64{{+1, 0}}
	o.Faces[1].Tans = [][]float64{{0, +1}}
	o.Faces[2].Tans = [][]float64{{-1, 0}}
	o.Faces[3].Tans = [][]float64{{0, -1}}
	return
}

// HexRule returns the quadrature data of a hexahedral cell with n×n×n volume
// points and nf×nf points per face. Faces are ordered
// (r=-1, r=+1, s=-1, s=+1, t=-1, t=+1); each face carries two tangents whose
// cross product, after transformation, points outwards.
func HexRule(n, nf int) (o *Rule) {
	x, w := gausspoints(n)
	o = &Rule{Gdim: 3}
	o.Vol = make([]Ipoint, n*n*n)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				o.Vol[(k*n+j)*n+i] = Ipoint{x[i], x[j], x[k], w[i] * w[j] * w[k]}
			}
		}
	}
	xf, wf := gausspoints(nf)
	o.Faces = make([]FaceRule, 6)
	for k := 0; k < 6; k++ {
		o.Faces[k].Ips = make([]Ipoint, nf*nf)
	}
	for j := 0; j < nf; j++ {
		for i := 0; i < nf; i++ {
			m := j*nf + i
			c := wf[i] * wf[j]
			o.Faces[0].Ips[m] = Ipoint{-1, xf[i], xf[j], c}
			o.Faces[1].Ips[m] = Ipoint{+1, xf[i], xf[j], c}
			o.Faces[2].Ips[m] = Ipoint{xf[i], -1, xf[j], c}
			o.Faces[3].Ips[m] = Ipoint{xf[i], +1, xf[j], c}
			o.Faces[4].Ips[m] = Ipoint{xf[i], xf[j], -1, c}
			o.Faces[5].Ips[m] = Ipoint{xf[i], xf[j], +1, c}
		}
	}
	o.Faces[0].Tans = [][]float64{{0, 0, 1}, {0, 1, 0}}
	o.Faces[1].Tans = [][]float64{{0, 1, 0}, {0, 0, 1}}
	o.Faces[2].Tans = [][]float64{{1, 0, 0}, {0, 0, 1}}
	o.Faces[3].Tans = [][]float64{{0, 0, 1}, {1, 0, 0}}
	o.Faces[4].Tans = [][]float64{{0, 1, 0}, {1, 0, 0}}
	o.Faces[5].Tans = [][]float64{{1, 0, 0}, {0, 1, 0}}
	return
}

// Quadrature provides the quadrature slice of the element contract for a given
// Rule. Element formulations embed it to satisfy those methods.
type Quadrature struct {
	Rule *Rule
}

// NumIps returns the number of volume/area/line integration points
func (o Quadrature) NumIps() int { return len(o.Rule.Vol) }

// IpWeight returns the weight of integration point n
func (o Quadrature) IpWeight(n int) float64 { return o.Rule.Vol[n][3] }

// IpCoords fills pt (length 3) with the parametric coordinates of integration point n
func (o Quadrature) IpCoords(n int, pt []float64) {
	copy(pt, o.Rule.Vol[n][:3])
}

// NumFaces returns the number of faces (edges in 2D, end points in 1D)
func (o Quadrature) NumFaces() int { return len(o.Rule.Faces) }

// NumFaceIps returns the number of integration points of a face
func (o Quadrature) NumFaceIps(face int) int { return len(o.Rule.Faces[face].Ips) }

// FaceIpCoords fills pt (length 3) with the parametric coordinates of face
// integration point n, fills tangent with the parametric tangent vectors
// stored contiguously in row-major order, and returns the weight.
func (o Quadrature) FaceIpCoords(face, n int, pt, tangent []float64) float64 {
	fr := o.Rule.Faces[face]
	ip := fr.Ips[n]
	copy(pt, ip[:3])
	for i, t := range fr.Tans {
		copy(tangent[i*o.Rule.Gdim:(i+1)*o.Rule.Gdim], t)
	}
	return ip[3]
}
