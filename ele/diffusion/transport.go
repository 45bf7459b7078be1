// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"strings"

	"github.com/SeiyonArulampalam/a2d-shells/ele"
	"github.com/SeiyonArulampalam/a2d-shells/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Transport implements an element for the transport of a scalar field by a
// prescribed velocity
//
//   du       ∂u
//   ── + v · ── = s
//   dt       ∂x
//
// The Galerkin form is used without upwinding. The Jacobian comes from finite
// differences of the residual.
type Transport struct {

	// tag and quadrature
	ele.Component
	shp.Quadrature

	// shape
	shape *shp.Shape

	// conditions
	Vel    []dbf.T // [ndim] velocity components
	Source dbf.T   // s(t,x) function. may be nil
}

// initialisation ///////////////////////////////////////////////////////////////////////////////////

// register element
func init() {
	for _, geoType := range []string{"qua4", "hex8"} {
		gt := geoType
		ele.SetAllocator("transport."+gt, func(prms dbf.Params) (ele.Element, error) {
			return NewTransport(gt, prms)
		})
	}
}

// NewTransport creates a transport element over the cell kind given by geoType
// ("qua4" or "hex8"). Parameters are the constant velocity components vx, vy,
// vz and nip, the number of integration points per direction. SetVelocity
// replaces the constant components by functions.
func NewTransport(geoType string, prms dbf.Params) (o *Transport, err error) {

	// shape
	o = new(Transport)
	o.shape = shp.Get(geoType)
	if o.shape == nil {
		return nil, chk.Err("transport: geometry type %q is not available", geoType)
	}
	ndim := o.shape.Gndim
	o.Vel = make([]dbf.T, ndim)
	for i := 0; i < ndim; i++ {
		o.Vel[i] = &dbf.Cte{}
	}

	// parameters
	nip := 2
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "vx":
			o.Vel[0] = &dbf.Cte{C: p.V}
		case "vy":
			o.Vel[1] = &dbf.Cte{C: p.V}
		case "vz":
			if ndim < 3 {
				return nil, chk.Err("transport: vz cannot be given to a plane cell")
			}
			o.Vel[2] = &dbf.Cte{C: p.V}
		case "nip":
			nip = int(p.V)
		default:
			return nil, chk.Err("transport: parameter named %q is incorrect", p.N)
		}
	}

	// integration points
	switch geoType {
	case "qua4":
		o.Quadrature = shp.Quadrature{Rule: shp.QuaRule(nip, 2)}
	case "hex8":
		o.Quadrature = shp.Quadrature{Rule: shp.HexRule(nip, 2)}
	}
	return
}

// SetVelocity sets the velocity components, one function per dimension.
// Must be called before the analysis starts.
func (o *Transport) SetVelocity(components ...dbf.T) (err error) {
	if len(components) != o.shape.Gndim {
		return chk.Err("transport: %d velocity components must be given. %d is incorrect", o.shape.Gndim, len(components))
	}
	copy(o.Vel, components)
	return
}

// SetSource sets the s(t,x) function. Must be called before the analysis starts.
func (o *Transport) SetSource(fcn dbf.T) {
	o.Source = fcn
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// VarsPerNode returns the number of unknowns per node
func (o *Transport) VarsPerNode() int { return 1 }

// NumNodes returns the number of nodes
func (o *Transport) NumNodes() int { return o.shape.Nverts }

// AddResidual adds the weak form terms
//
//   res[m] += ∫ Sm (du/dt + v·∇u - s) dΩ
//
func (o *Transport) AddResidual(elemIndex int, time float64, xpts, vars, dvars, ddvars, res []float64) (err error) {
	ndim := o.shape.Gndim
	nverts := o.shape.Nverts
	scr := o.shape.NewScratch()
	pt := make([]float64, 3)
	xip := make([]float64, 3)
	gradu := make([]float64, ndim)
	for idx := 0; idx < o.NumIps(); idx++ {

		// interpolation functions, gradients and variables @ ip
		o.IpCoords(idx, pt)
		err = o.shape.CalcAtR(scr, xpts, pt, true)
		if err != nil {
			return chk.Err("element %d: %v", elemIndex, err)
		}
		coef := scr.J * o.IpWeight(idx)
		dudt := 0.0
		for i := 0; i < ndim; i++ {
			gradu[i] = 0
		}
		for m := 0; m < nverts; m++ {
			dudt += scr.S[m] * dvars[m]
			for i := 0; i < ndim; i++ {
				gradu[i] += scr.G[m][i] * vars[m]
			}
		}

		// velocity and source @ ip
		o.shape.RealCoords(xip, scr, xpts, pt)
		advu := 0.0
		for i := 0; i < ndim; i++ {
			advu += o.Vel[i].F(time, xip) * gradu[i]
		}
		sval := 0.0
		if o.Source != nil {
			sval = o.Source.F(time, xip)
		}

		// add residual term
		for m := 0; m < nverts; m++ {
			res[m] += coef * scr.S[m] * (dudt + advu - sval)
		}
	}
	return
}

// PointQuantity evaluates the field value or its gradient at the point with
// natural coordinates pt
func (o *Transport) PointQuantity(elemIndex, quantityType int, time float64, n int, pt, xpts, vars, dvars, ddvars, quantity []float64) (count int, detXd float64, err error) {
	ndim := o.shape.Gndim
	switch quantityType {
	case FieldValue:
		count = 1
	case GradVector:
		count = ndim
	default:
		return 0, 0, nil
	}
	scr := o.shape.NewScratch()
	err = o.shape.CalcAtR(scr, xpts, pt, true)
	if err != nil {
		return 0, 0, chk.Err("element %d: %v", elemIndex, err)
	}
	detXd = scr.J
	if quantity == nil {
		return
	}
	if quantityType == FieldValue {
		quantity[0] = 0
		for m := 0; m < o.shape.Nverts; m++ {
			quantity[0] += scr.S[m] * vars[m]
		}
		return
	}
	for i := 0; i < ndim; i++ {
		quantity[i] = 0
		for m := 0; m < o.shape.Nverts; m++ {
			quantity[i] += scr.G[m][i] * vars[m]
		}
	}
	return
}
