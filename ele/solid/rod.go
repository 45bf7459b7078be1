// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"
	"strings"

	"github.com/SeiyonArulampalam/a2d-shells/ele"
	"github.com/SeiyonArulampalam/a2d-shells/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Rod represents a structural rod element (for axial loads only) with 2 nodes
// and 3 unknowns per node, arbitrarily oriented in space. Length and direction
// cosines are recomputed from the coordinates of every call.
//
//	          2 1 0 ← global components
//	           \|/
//	            1
//	           /
//	          /  direction d: from node 0 to node 1
//	         /
//	        0
//	       /|\
//	      2 1 0
type Rod struct {

	// tag and quadrature
	ele.Component
	shp.Quadrature

	// parameters
	E   float64 // Young's modulus
	A   float64 // cross-sectional area
	Rho float64 // density
}

// register element
func init() {
	ele.SetAllocator("rod", func(prms dbf.Params) (ele.Element, error) {
		return NewRod(prms)
	})
}

// NewRod creates a rod element from parameters E, A and rho
func NewRod(prms dbf.Params) (o *Rod, err error) {
	o = &Rod{Quadrature: shp.Quadrature{Rule: shp.LinRule(2)}}
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "e":
			o.E = p.V
		case "a":
			o.A = p.V
		case "rho":
			o.Rho = p.V
		default:
			return nil, chk.Err("rod: parameter named %q is incorrect", p.N)
		}
	}
	if o.E <= 0 || o.A <= 0 {
		return nil, chk.Err("rod: E=%g and A=%g must be positive", o.E, o.A)
	}
	if o.Rho < 0 {
		return nil, chk.Err("rod: rho=%g must not be negative", o.Rho)
	}
	return
}

// axis computes the current length and direction cosines
func (o *Rod) axis(elemIndex int, xpts []float64) (L float64, d [3]float64, err error) {
	for i := 0; i < 3; i++ {
		d[i] = xpts[3+i] - xpts[i]
	}
	L = math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if L < 1e-12 {
		err = chk.Err("element %d: rod has zero length", elemIndex)
		return
	}
	for i := 0; i < 3; i++ {
		d[i] /= L
	}
	return
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// VarsPerNode returns the number of unknowns per node
func (o *Rod) VarsPerNode() int { return 3 }

// NumNodes returns the number of nodes
func (o *Rod) NumNodes() int { return 2 }

// AddResidual adds K·u + M·ü into res, with K = (EA/L)·d dᵀ blocks and the
// consistent mass M = (ρAL/6)·[[2I,I],[I,2I]]
func (o *Rod) AddResidual(elemIndex int, time float64, xpts, vars, dvars, ddvars, res []float64) (err error) {
	L, d, err := o.axis(elemIndex, xpts)
	if err != nil {
		return
	}
	κ := o.E * o.A / L
	μ := o.Rho * o.A * L / 6.0
	s := 0.0 // axial stretch projection d·(u1-u0)
	for i := 0; i < 3; i++ {
		s += d[i] * (vars[3+i] - vars[i])
	}
	for i := 0; i < 3; i++ {
		f := κ * s * d[i]
		res[i] -= f
		res[3+i] += f
		res[i] += μ * (2.0*ddvars[i] + ddvars[3+i])
		res[3+i] += μ * (ddvars[i] + 2.0*ddvars[3+i])
	}
	return
}

// Energies returns the kinetic and elastic strain energies
func (o *Rod) Energies(elemIndex int, time float64, xpts, vars, dvars []float64) (Te, Pe float64, err error) {
	L, d, err := o.axis(elemIndex, xpts)
	if err != nil {
		return
	}
	κ := o.E * o.A / L
	μ := o.Rho * o.A * L / 6.0
	s := 0.0
	for i := 0; i < 3; i++ {
		s += d[i] * (vars[3+i] - vars[i])
	}
	Pe = 0.5 * κ * s * s
	for i := 0; i < 3; i++ {
		Te += μ * (dvars[i]*dvars[i] + dvars[i]*dvars[3+i] + dvars[3+i]*dvars[3+i])
	}
	return
}

// AddJacobian adds α·K + γ·M into mat (the rod has no damping) and the
// residual into res
func (o *Rod) AddJacobian(elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, res []float64, mat [][]float64) (err error) {
	if err = o.AddResidual(elemIndex, time, xpts, vars, dvars, ddvars, res); err != nil {
		return
	}
	L, d, err := o.axis(elemIndex, xpts)
	if err != nil {
		return
	}
	κα := α * o.E * o.A / L
	μγ := γ * o.Rho * o.A * L / 6.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			kij := κα * d[i] * d[j]
			mat[i][j] += kij
			mat[i][3+j] -= kij
			mat[3+i][j] -= kij
			mat[3+i][3+j] += kij
		}
		mat[i][i] += 2.0 * μγ
		mat[i][3+i] += μγ
		mat[3+i][i] += μγ
		mat[3+i][3+i] += 2.0 * μγ
	}
	return
}

// CalcMatType computes one matrix kind directly, overwriting mat. The damping
// matrix of a rod is zero and reported as computed. The geometric stiffness
// follows from the axial force of the current displacements:
// Kg = (N/L)·(I − d dᵀ) blocks.
func (o *Rod) CalcMatType(mtype ele.MatrixType, elemIndex int, time float64, xpts, vars []float64, mat [][]float64) (computed bool, err error) {
	la.MatFill(mat, 0)
	L, d, err := o.axis(elemIndex, xpts)
	if err != nil {
		return
	}
	switch mtype {

	case ele.StiffnessMatrix:
		κ := o.E * o.A / L
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				kij := κ * d[i] * d[j]
				mat[i][j] = kij
				mat[i][3+j] = -kij
				mat[3+i][j] = -kij
				mat[3+i][3+j] = kij
			}
		}

	case ele.MassMatrix:
		μ := o.Rho * o.A * L / 6.0
		for i := 0; i < 3; i++ {
			mat[i][i] = 2.0 * μ
			mat[i][3+i] = μ
			mat[3+i][i] = μ
			mat[3+i][3+i] = 2.0 * μ
		}

	case ele.DampingMatrix:
		// zero; computed

	case ele.GeometricStiffnessMatrix:
		s := 0.0
		for i := 0; i < 3; i++ {
			s += d[i] * (vars[3+i] - vars[i])
		}
		N := o.E * o.A / L * s
		g := N / L
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				gij := -g * d[i] * d[j]
				if i == j {
					gij += g
				}
				mat[i][j] = gij
				mat[i][3+j] = -gij
				mat[3+i][j] = -gij
				mat[3+i][3+j] = gij
			}
		}

	default:
		return false, nil
	}
	return true, nil
}

// MatVecDataSizes returns the sizes of the matrix-free stiffness data: the
// scaled axial stiffness and the three direction cosines
func (o *Rod) MatVecDataSizes(mtype ele.MatrixType, elemIndex int) (dsize, tsize int) {
	if mtype != ele.StiffnessMatrix {
		return 0, 0
	}
	return 4, 1
}

// MatVecProductData fills data with {α·EA/L, d0, d1, d2}
func (o *Rod) MatVecProductData(mtype ele.MatrixType, elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, data []float64) (err error) {
	if mtype != ele.StiffnessMatrix {
		return
	}
	L, d, err := o.axis(elemIndex, xpts)
	if err != nil {
		return
	}
	data[0] = α * o.E * o.A / L
	data[1], data[2], data[3] = d[0], d[1], d[2]
	return
}

// AddMatVecProduct adds K·px into py using the direction cosines in data
func (o *Rod) AddMatVecProduct(mtype ele.MatrixType, elemIndex int, data, temp, px, py []float64) {
	if mtype != ele.StiffnessMatrix {
		return
	}
	temp[0] = 0
	for i := 0; i < 3; i++ {
		temp[0] += data[1+i] * (px[i] - px[3+i])
	}
	for i := 0; i < 3; i++ {
		f := data[0] * temp[0] * data[1+i]
		py[i] += f
		py[3+i] -= f
	}
}

// PointQuantity evaluates the axial stress or force, constant along the rod.
// detXd is L/2, the determinant of the line coordinate map.
func (o *Rod) PointQuantity(elemIndex, quantityType int, time float64, n int, pt, xpts, vars, dvars, ddvars, quantity []float64) (count int, detXd float64, err error) {
	if quantityType != AxialStress && quantityType != AxialForce {
		return 0, 0, nil
	}
	L, d, err := o.axis(elemIndex, xpts)
	if err != nil {
		return
	}
	detXd = L / 2.0
	count = 1
	if quantity == nil {
		return
	}
	s := 0.0
	for i := 0; i < 3; i++ {
		s += d[i] * (vars[3+i] - vars[i])
	}
	εa := s / L
	if quantityType == AxialStress {
		quantity[0] = o.E * εa
	} else {
		quantity[0] = o.E * o.A * εa
	}
	return
}
