// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"strings"

	"github.com/SeiyonArulampalam/a2d-shells/ele"
	"github.com/SeiyonArulampalam/a2d-shells/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// quantity tags for PointQuantity
const (
	AxialStress = iota + 1 // axial stress σa
	AxialForce             // axial (transmitted) force N
)

// Spring represents a two-node spring/damper/mass link with one unknown per
// node and constant matrices; i.e. no numerical integration is needed.
// Nodal coordinates are carried for uniformity and ignored.
type Spring struct {

	// tag and quadrature
	ele.Component
	shp.Quadrature

	// parameters
	Kx   float64 // spring stiffness
	Cx   float64 // viscous damping coefficient
	Mass float64 // lumped nodal mass
	U0   float64 // initial displacement of the first node
	V0   float64 // initial velocity of the first node
}

// register element
func init() {
	ele.SetAllocator("spring", func(prms dbf.Params) (ele.Element, error) {
		return NewSpring(prms)
	})
}

// NewSpring creates a spring link from parameters kx, cx, m, u0 and v0
func NewSpring(prms dbf.Params) (o *Spring, err error) {
	o = &Spring{Quadrature: shp.Quadrature{Rule: shp.LinRule(1)}}
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "kx":
			o.Kx = p.V
		case "cx":
			o.Cx = p.V
		case "m":
			o.Mass = p.V
		case "u0":
			o.U0 = p.V
		case "v0":
			o.V0 = p.V
		default:
			return nil, chk.Err("spring: parameter named %q is incorrect", p.N)
		}
	}
	if o.Kx <= 0 {
		return nil, chk.Err("spring: stiffness kx must be positive. kx=%g is invalid", o.Kx)
	}
	if o.Cx < 0 || o.Mass < 0 {
		return nil, chk.Err("spring: cx=%g and m=%g must not be negative", o.Cx, o.Mass)
	}
	return
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// VarsPerNode returns the number of unknowns per node
func (o *Spring) VarsPerNode() int { return 1 }

// NumNodes returns the number of nodes
func (o *Spring) NumNodes() int { return 2 }

// AddResidual adds K·u + C·u̇ + M·ü into res
func (o *Spring) AddResidual(elemIndex int, time float64, xpts, vars, dvars, ddvars, res []float64) (err error) {
	f := o.Kx*(vars[0]-vars[1]) + o.Cx*(dvars[0]-dvars[1])
	res[0] += f + o.Mass*ddvars[0]
	res[1] += -f + o.Mass*ddvars[1]
	return
}

// InitConditions sets the initial displacement and velocity of the first node
func (o *Spring) InitConditions(elemIndex int, xpts, vars, dvars, ddvars []float64) (err error) {
	vars[0] = o.U0
	dvars[0] = o.V0
	return
}

// Energies returns the kinetic and elastic strain energies
func (o *Spring) Energies(elemIndex int, time float64, xpts, vars, dvars []float64) (Te, Pe float64, err error) {
	δ := vars[0] - vars[1]
	Te = 0.5 * o.Mass * (dvars[0]*dvars[0] + dvars[1]*dvars[1])
	Pe = 0.5 * o.Kx * δ * δ
	return
}

// AddJacobian adds α·K + β·C + γ·M into mat and the residual into res
func (o *Spring) AddJacobian(elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, res []float64, mat [][]float64) (err error) {
	if err = o.AddResidual(elemIndex, time, xpts, vars, dvars, ddvars, res); err != nil {
		return
	}
	kc := α*o.Kx + β*o.Cx
	gm := γ * o.Mass
	mat[0][0] += kc + gm
	mat[0][1] -= kc
	mat[1][0] -= kc
	mat[1][1] += kc + gm
	return
}

// CalcMatType computes one matrix kind directly. The geometric stiffness of a
// link with no geometry is reported as not computed.
func (o *Spring) CalcMatType(mtype ele.MatrixType, elemIndex int, time float64, xpts, vars []float64, mat [][]float64) (computed bool, err error) {
	la.MatFill(mat, 0)
	switch mtype {
	case ele.StiffnessMatrix:
		mat[0][0], mat[0][1] = o.Kx, -o.Kx
		mat[1][0], mat[1][1] = -o.Kx, o.Kx
	case ele.DampingMatrix:
		mat[0][0], mat[0][1] = o.Cx, -o.Cx
		mat[1][0], mat[1][1] = -o.Cx, o.Cx
	case ele.MassMatrix:
		mat[0][0] = o.Mass
		mat[1][1] = o.Mass
	default:
		return false, nil
	}
	return true, nil
}

// MatVecDataSizes returns the sizes of the matrix-free buffers: the combined
// off-diagonal coefficient and the diagonal mass term
func (o *Spring) MatVecDataSizes(mtype ele.MatrixType, elemIndex int) (dsize, tsize int) {
	if mtype == ele.GeometricStiffnessMatrix {
		return 0, 0
	}
	return 2, 1
}

// MatVecProductData fills data with {α·kx + β·cx, γ·m}
func (o *Spring) MatVecProductData(mtype ele.MatrixType, elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, data []float64) (err error) {
	if mtype == ele.GeometricStiffnessMatrix {
		return
	}
	switch mtype {
	case ele.StiffnessMatrix:
		data[0], data[1] = α*o.Kx, 0
	case ele.DampingMatrix:
		data[0], data[1] = β*o.Cx, 0
	case ele.MassMatrix:
		data[0], data[1] = 0, γ*o.Mass
	}
	return
}

// AddMatVecProduct adds mat·px into py using the coefficients in data
func (o *Spring) AddMatVecProduct(mtype ele.MatrixType, elemIndex int, data, temp, px, py []float64) {
	if mtype == ele.GeometricStiffnessMatrix {
		return
	}
	temp[0] = data[0] * (px[0] - px[1])
	py[0] += temp[0] + data[1]*px[0]
	py[1] += -temp[0] + data[1]*px[1]
}

// PointQuantity evaluates the transmitted force; the link has no geometry, so
// detXd is one
func (o *Spring) PointQuantity(elemIndex, quantityType int, time float64, n int, pt, xpts, vars, dvars, ddvars, quantity []float64) (count int, detXd float64, err error) {
	if quantityType != AxialForce {
		return 0, 0, nil
	}
	if quantity != nil {
		quantity[0] = o.Kx*(vars[1]-vars[0]) + o.Cx*(dvars[1]-dvars[0])
	}
	return 1, 1.0, nil
}
