// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shape
func init() {

	// hex8
	var hex8 Shape
	hex8.Type = "hex8"
	hex8.Func = Hex8
	hex8.Gndim = 3
	hex8.Nverts = 8
	hex8.NatCoords = [][]float64{
		{-1, 1, 1, -1, -1, 1, 1, -1},
		{-1, -1, 1, 1, -1, -1, 1, 1},
		{-1, -1, -1, -1, 1, 1, 1, 1},
	}
	factory["hex8"] = &hex8
}

// Hex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at r (natural coordinates). Derivatives are calculated only if derivs==true.
func Hex8(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*
	          4________________7
	        ,'|              ,'|
	      ,'  |            ,'  |
	    ,'    |          ,'    |
	  5'________________6'     |
	  |       |        |       |
	  |       |        |       |
	  |       0________|_______3
	  |     ,'         |     ,'
	  |   ,'           |   ,'
	  | ,'             | ,'
	  1________________2'
	*/
	s, t, u := r[0], r[1], r[2]
	S[0] = (1.0 - s) * (1.0 - t) * (1.0 - u) / 8.0
	S[1] = (1.0 + s) * (1.0 - t) * (1.0 - u) / 8.0
	S[2] = (1.0 + s) * (1.0 + t) * (1.0 - u) / 8.0
	S[3] = (1.0 - s) * (1.0 + t) * (1.0 - u) / 8.0
	S[4] = (1.0 - s) * (1.0 - t) * (1.0 + u) / 8.0
	S[5] = (1.0 + s) * (1.0 - t) * (1.0 + u) / 8.0
	S[6] = (1.0 + s) * (1.0 + t) * (1.0 + u) / 8.0
	S[7] = (1.0 - s) * (1.0 + t) * (1.0 + u) / 8.0

	if !derivs {
		return
	}

	dSdR[0][0] = -(1.0 - t) * (1.0 - u) / 8.0
	dSdR[0][1] = -(1.0 - s) * (1.0 - u) / 8.0
	dSdR[0][2] = -(1.0 - s) * (1.0 - t) / 8.0
	dSdR[1][0] = +(1.0 - t) * (1.0 - u) / 8.0
	dSdR[1][1] = -(1.0 + s) * (1.0 - u) / 8.0
	dSdR[1][2] = -(1.0 + s) * (1.0 - t) / 8.0
	dSdR[2][0] = +(1.0 + t) * (1.0 - u) / 8.0
	dSdR[2][1] = +(1.0 + s) * (1.0 - u) / 8.0
	dSdR[2][2] = -(1.0 + s) * (1.0 + t) / 8.0
	dSdR[3][0] = -(1.0 + t) * (1.0 - u) / 8.0
	dSdR[3][1] = +(1.0 - s) * (1.0 - u) / 8.0
	dSdR[3][2] = -(1.0 - s) * (1.0 + t) / 8.0
	dSdR[4][0] = -(1.0 - t) * (1.0 + u) / 8.0
	dSdR[4][1] = -(1.0 - s) * (1.0 + u) / 8.0
	dSdR[4][2] = +(1.0 - s) * (1.0 - t) / 8.0
	dSdR[5][0] = +(1.0 - t) * (1.0 + u) / 8.0
	dSdR[5][1] = -(1.0 + s) * (1.0 + u) / 8.0
	dSdR[5][2] = +(1.0 + s) * (1.0 - t) / 8.0
	dSdR[6][0] = +(1.0 + t) * (1.0 + u) / 8.0
	dSdR[6][1] = +(1.0 + s) * (1.0 + u) / 8.0
	dSdR[6][2] = +(1.0 + s) * (1.0 + t) / 8.0
	dSdR[7][0] = -(1.0 + t) * (1.0 + u) / 8.0
	dSdR[7][1] = +(1.0 - s) * (1.0 + u) / 8.0
	dSdR[7][2] = +(1.0 - s) * (1.0 + t) / 8.0
}
