// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements elements for diffusion problems
package diffusion

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
	FieldValue = iota + 1 // u at the point
	FluxVector            // w = -k(u)·kcte·∇u at the point
	GradVector            // ∇u at the point
)

// Diffusion implements an element for solving the diffusion equation expressed as
//
//     du                                           du
//   ρ ── + div w = s      with      w = -k(u) kcte ──
//     dt                                           dx
//
// where kcte is a constant diagonal conductivity tensor and the nonlinear
// coefficient follows k(u) = a0 + a1 u + a2 u² + a3 u³
type Diffusion struct {

	// tag and quadrature
	ele.Component
	shp.Quadrature

	// shape
	shape *shp.Shape

	// parameters
	Rho            float64   // capacity coefficient ρ
	Kcte           []float64 // [ndim] diagonal entries of the conductivity tensor
	A0, A1, A2, A3 float64   // coefficients of k(u)

	// conditions
	U0     float64          // initial field value
	Source dbf.T            // s(t,x) function. may be nil
	natbcs []*ele.NaturalBc // prescribed fluxes on faces
}

// initialisation ///////////////////////////////////////////////////////////////////////////////////

// register element
func init() {
	for _, geoType := range []string{"qua4", "hex8"} {
		gt := geoType
		ele.SetAllocator("diffusion."+gt, func(prms dbf.Params) (ele.Element, error) {
			return NewDiffusion(gt, prms)
		})
	}
}

// NewDiffusion creates a diffusion element over the cell kind given by geoType
// ("qua4" or "hex8"). Parameters are rho, the conductivities kx, ky, kz (or k
// for isotropic cells), the optional coefficients a0, a1, a2 and a3 of k(u),
// the optional initial value u0, and nip, the number of integration points per
// direction. k(u) defaults to one.
func NewDiffusion(geoType string, prms dbf.Params) (o *Diffusion, err error) {

	// shape
	o = &Diffusion{A0: 1}
	o.shape = shp.Get(geoType)
	if o.shape == nil {
		return nil, chk.Err("diffusion: geometry type %q is not available", geoType)
	}
	ndim := o.shape.Gndim
	o.Kcte = make([]float64, ndim)

	// parameters
	nip := 2
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "rho":
			o.Rho = p.V
		case "k":
			for i := 0; i < ndim; i++ {
				o.Kcte[i] = p.V
			}
		case "kx":
			o.Kcte[0] = p.V
		case "ky":
			o.Kcte[1] = p.V
		case "kz":
			if ndim < 3 {
				return nil, chk.Err("diffusion: kz cannot be given to a plane cell")
			}
			o.Kcte[2] = p.V
		case "a0":
			o.A0 = p.V
		case "a1":
			o.A1 = p.V
		case "a2":
			o.A2 = p.V
		case "a3":
			o.A3 = p.V
		case "u0":
			o.U0 = p.V
		case "nip":
			nip = int(p.V)
		default:
			return nil, chk.Err("diffusion: parameter named %q is incorrect", p.N)
		}
	}
	if o.Rho < 0 {
		return nil, chk.Err("diffusion: rho=%g must not be negative", o.Rho)
	}
	for i := 0; i < ndim; i++ {
		if o.Kcte[i] <= 0 {
			return nil, chk.Err("diffusion: conductivity %d must be positive. k=%v is invalid", i, o.Kcte)
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

// SetSource sets the s(t,x) function. Must be called before the analysis starts.
func (o *Diffusion) SetSource(fcn dbf.T) {
	o.Source = fcn
}

// AddFlux prescribes the outward normal flux qb(t) on one face of the cell.
// Must be called before the analysis starts.
func (o *Diffusion) AddFlux(face int, fcn dbf.T) (err error) {
	if face < 0 || face >= o.NumFaces() {
		return chk.Err("diffusion: face %d is invalid. face must be in [0,%d)", face, o.NumFaces())
	}
	o.natbcs = append(o.natbcs, &ele.NaturalBc{Key: "qb", IdxFace: face, Fcn: fcn})
	return
}

// kval computes k(u)
func (o *Diffusion) kval(u float64) float64 {
	return o.A0 + o.A1*u + o.A2*u*u + o.A3*u*u*u
}

// dkdu computes dk/du
func (o *Diffusion) dkdu(u float64) float64 {
	return o.A1 + 2.0*o.A2*u + 3.0*o.A3*u*u
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// VarsPerNode returns the number of unknowns per node
func (o *Diffusion) VarsPerNode() int { return 1 }

// NumNodes returns the number of nodes
func (o *Diffusion) NumNodes() int { return o.shape.Nverts }

// AddResidual adds the weak form terms
//
//   res[m] += ∫ Sm (ρ du/dt - s) dΩ + ∫ (Gm · k(u) kcte ∇u) dΩ + ∮ Sm qb dΓ
//
func (o *Diffusion) AddResidual(elemIndex int, time float64, xpts, vars, dvars, ddvars, res []float64) (err error) {

	// for each integration point
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
		uval, dudt := 0.0, 0.0
		for i := 0; i < ndim; i++ {
			gradu[i] = 0
		}
		for m := 0; m < nverts; m++ {
			uval += scr.S[m] * vars[m]
			dudt += scr.S[m] * dvars[m]
			for i := 0; i < ndim; i++ {
				gradu[i] += scr.G[m][i] * vars[m]
			}
		}
		sval := 0.0
		if o.Source != nil {
			o.shape.RealCoords(xip, scr, xpts, pt)
			sval = o.Source.F(time, xip)
		}

		// add residual terms
		kv := o.kval(uval)
		for m := 0; m < nverts; m++ {
			res[m] += coef * scr.S[m] * (o.Rho*dudt - sval)
			for i := 0; i < ndim; i++ {
				res[m] += coef * scr.G[m][i] * kv * o.Kcte[i] * gradu[i]
			}
		}
	}

	// contribution from natural boundary conditions
	if len(o.natbcs) > 0 {
		return o.addNatBcs(elemIndex, time, xpts, res, scr)
	}
	return
}

// AddJacobian adds α ∂res/∂u + β ∂res/∂(du/dt) into mat and the residual into res
func (o *Diffusion) AddJacobian(elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, res []float64, mat [][]float64) (err error) {

	// residual
	if err = o.AddResidual(elemIndex, time, xpts, vars, dvars, ddvars, res); err != nil {
		return
	}

	// for each integration point
	ndim := o.shape.Gndim
	nverts := o.shape.Nverts
	scr := o.shape.NewScratch()
	pt := make([]float64, 3)
	gradu := make([]float64, ndim)
	tmp := make([]float64, ndim)
	for idx := 0; idx < o.NumIps(); idx++ {

		// interpolation functions, gradients and variables @ ip
		o.IpCoords(idx, pt)
		err = o.shape.CalcAtR(scr, xpts, pt, true)
		if err != nil {
			return chk.Err("element %d: %v", elemIndex, err)
		}
		coef := scr.J * o.IpWeight(idx)
		uval := 0.0
		for i := 0; i < ndim; i++ {
			gradu[i] = 0
		}
		for m := 0; m < nverts; m++ {
			uval += scr.S[m] * vars[m]
			for i := 0; i < ndim; i++ {
				gradu[i] += scr.G[m][i] * vars[m]
			}
		}
		kv := o.kval(uval)
		dk := o.dkdu(uval)

		// mat := α dres/du + β dres/d(dudt)
		for n := 0; n < nverts; n++ {
			for j := 0; j < ndim; j++ {
				tmp[j] = scr.S[n]*dk*gradu[j] + kv*scr.G[n][j]
			}
			for m := 0; m < nverts; m++ {
				mat[m][n] += coef * β * o.Rho * scr.S[m] * scr.S[n]
				for i := 0; i < ndim; i++ {
					mat[m][n] += coef * α * scr.G[m][i] * o.Kcte[i] * tmp[i]
				}
			}
		}
	}
	return
}

// InitConditions sets the initial field value at all nodes
func (o *Diffusion) InitConditions(elemIndex int, xpts, vars, dvars, ddvars []float64) (err error) {
	for m := 0; m < o.shape.Nverts; m++ {
		vars[m] = o.U0
	}
	return
}

// Energies returns the conduction potential. There is no kinetic term in a
// first order problem.
//
//   Pe = ∫ ½ ∇u · k(u) kcte ∇u dΩ - ∫ s u dΩ
//
func (o *Diffusion) Energies(elemIndex int, time float64, xpts, vars, dvars []float64) (Te, Pe float64, err error) {
	ndim := o.shape.Gndim
	nverts := o.shape.Nverts
	scr := o.shape.NewScratch()
	pt := make([]float64, 3)
	xip := make([]float64, 3)
	gradu := make([]float64, ndim)
	for idx := 0; idx < o.NumIps(); idx++ {
		o.IpCoords(idx, pt)
		err = o.shape.CalcAtR(scr, xpts, pt, true)
		if err != nil {
			return 0, 0, chk.Err("element %d: %v", elemIndex, err)
		}
		coef := scr.J * o.IpWeight(idx)
		uval := 0.0
		for i := 0; i < ndim; i++ {
			gradu[i] = 0
		}
		for m := 0; m < nverts; m++ {
			uval += scr.S[m] * vars[m]
			for i := 0; i < ndim; i++ {
				gradu[i] += scr.G[m][i] * vars[m]
			}
		}
		kv := o.kval(uval)
		for i := 0; i < ndim; i++ {
			Pe += coef * 0.5 * gradu[i] * kv * o.Kcte[i] * gradu[i]
		}
		if o.Source != nil {
			o.shape.RealCoords(xip, scr, xpts, pt)
			Pe -= coef * o.Source.F(time, xip) * uval
		}
	}
	return
}

// PointQuantity evaluates the field value or the flux vector at the point
// with natural coordinates pt
func (o *Diffusion) PointQuantity(elemIndex, quantityType int, time float64, n int, pt, xpts, vars, dvars, ddvars, quantity []float64) (count int, detXd float64, err error) {
	ndim := o.shape.Gndim
	switch quantityType {
	case FieldValue:
		count = 1
	case FluxVector:
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
	uval := 0.0
	for m := 0; m < o.shape.Nverts; m++ {
		uval += scr.S[m] * vars[m]
	}
	if quantityType == FieldValue {
		quantity[0] = uval
		return
	}
	kv := o.kval(uval)
	for i := 0; i < ndim; i++ {
		quantity[i] = 0
		for m := 0; m < o.shape.Nverts; m++ {
			quantity[i] -= kv * o.Kcte[i] * scr.G[m][i] * vars[m]
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// addNatBcs adds the prescribed fluxes to the residual. Face integration
// points live in the parametric space of the cell, so the full set of shape
// functions applies directly.
func (o *Diffusion) addNatBcs(elemIndex int, time float64, xpts, res []float64, scr *shp.Scratch) (err error) {
	ndim := o.shape.Gndim
	nverts := o.shape.Nverts
	ntans := len(o.Rule.Faces[0].Tans)
	pt := make([]float64, 3)
	tangent := make([]float64, ntans*ndim)
	nvec := make([]float64, ndim)
	for _, nbc := range o.natbcs {
		for idx := 0; idx < o.NumFaceIps(nbc.IdxFace); idx++ {

			// interpolation functions and face Jacobian @ face ip
			w := o.FaceIpCoords(nbc.IdxFace, idx, pt, tangent)
			err = o.shape.CalcAtR(scr, xpts, pt, true)
			if err != nil {
				return chk.Err("element %d: %v", elemIndex, err)
			}
			scr.FaceNvec(nvec, tangent)
			coef := w * la.VecNorm(nvec)

			// flux prescribed
			qb := nbc.Fcn.F(time, nil)
			for m := 0; m < nverts; m++ {
				res[m] += coef * qb * scr.S[m]
			}
		}
	}
	return
}
