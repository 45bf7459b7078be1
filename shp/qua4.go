// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shape
func init() {

	// qua4
	var qua4 Shape
	qua4.Type = "qua4"
	qua4.Func = Qua4
	qua4.Gndim = 2
	qua4.Nverts = 4
	qua4.NatCoords = [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	factory["qua4"] = &qua4
}

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at r (natural coordinates). Derivatives are calculated only if derivs==true.
func Qua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*
	   3-----------2
	   |     s     |
	   |     |     |
	   |     +--r  |
	   |           |
	   |           |
	   0-----------1
	*/
	s, t := r[0], r[1]
	S[0] = (1.0 - s) * (1.0 - t) / 4.0
	S[1] = (1.0 + s) * (1.0 - t) / 4.0
	S[2] = (1.0 + s) * (1.0 + t) / 4.0
	S[3] = (1.0 - s) * (1.0 + t) / 4.0

	if !derivs {
		return
	}

	dSdR[0][0] = -(1.0 - t) / 4.0
	dSdR[0][1] = -(1.0 - s) / 4.0
	dSdR[1][0] = +(1.0 - t) / 4.0
	dSdR[1][1] = -(1.0 + s) / 4.0
	dSdR[2][0] = +(1.0 + t) / 4.0
	dSdR[2][1] = +(1.0 + s) / 4.0
	dSdR[3][0] = -(1.0 + t) / 4.0
	dSdR[3][1] = +(1.0 - s) / 4.0
}
