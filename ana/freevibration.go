// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form reference solutions for tests
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/ode"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// FreeVibration computes the displacement of the undamped mass-spring
// oscillator
//
//	m・ü + kx・u = 0    u(0) = U0    u̇(0) = V0
//
//	u(t) = U0・cos(ω・t) + (V0/ω)・sin(ω・t)    with    ω² = kx/m
//
// The total mechanical energy E = m・u̇²/2 + kx・u²/2 is conserved.
type FreeVibration struct {
	Kx  float64    // spring stiffness
	M   float64    // mass
	U0  float64    // initial displacement
	V0  float64    // initial velocity
	ω   float64    // natural angular frequency
	sol ode.Solver // ODE solver
}

// Init initialises this structure
func (o *FreeVibration) Init(kx, m, u0, v0 float64, withNum bool) {

	// input data
	o.Kx = kx
	o.M = m
	o.U0 = u0
	o.V0 = v0
	o.ω = math.Sqrt(kx / m)

	// numerical solver with ξ := {u, v}
	if withNum {
		silent := true
		o.sol.Init("Radau5", 2, func(f []float64, dt, t float64, ξ []float64, args ...interface{}) error {
			f[0] = ξ[1]                 // du/dt
			f[1] = -(o.Kx / o.M) * ξ[0] // dv/dt
			return nil
		}, nil, nil, nil, silent)
		o.sol.Distr = false // must be sure to disable this; otherwise it causes problems in parallel runs
	}
}

// Omega returns the natural angular frequency
func (o FreeVibration) Omega() float64 { return o.ω }

// Energy returns the conserved total mechanical energy
func (o FreeVibration) Energy() float64 {
	return o.M*o.V0*o.V0/2.0 + o.Kx*o.U0*o.U0/2.0
}

// Calc computes displacement and velocity at time t
func (o FreeVibration) Calc(t float64) (u, v float64) {
	s, c := math.Sin(o.ω*t), math.Cos(o.ω*t)
	u = o.U0*c + (o.V0/o.ω)*s
	v = o.V0*c - o.U0*o.ω*s
	return
}

// CalcNum computes displacement and velocity at time t using the ODE solver
func (o FreeVibration) CalcNum(t float64) (u, v float64) {
	ξ := []float64{o.U0, o.V0}
	if t > 0 {
		err := o.sol.Solve(ξ, 0, t, t, false)
		if err != nil {
			chk.Panic("FreeVibration failed when integrating the oscillator with the ODE solver: %v", err)
		}
	}
	return ξ[0], ξ[1]
}

// Plot plots displacement and velocity histories up to tmax
func (o FreeVibration) Plot(dirout, fnkey string, tmax float64, np int) {

	T := utl.LinSpace(0, tmax, np)
	U := make([]float64, np)
	V := make([]float64, np)
	for i, t := range T {
		U[i], V[i] = o.Calc(t)
	}

	plt.Subplot(2, 1, 1)
	plt.Plot(T, U, &plt.A{C: "k", Ls: "-"})
	plt.Gll("$t$", "$u$", nil)

	plt.Subplot(2, 1, 2)
	plt.Plot(T, V, &plt.A{C: "r", Ls: "-"})
	plt.Gll("$t$", "$\\dot{u}$", nil)
	plt.SetTicksNormal()

	plt.SaveD(dirout, fnkey+".eps")
}
