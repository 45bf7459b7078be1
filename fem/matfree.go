// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/SeiyonArulampalam/a2d-shells/ele"

	"github.com/cpmech/gosl/chk"
)

// MatFreeMat represents one assembled matrix kind through products only.
// The per-element data is computed once by Assembler.MatFree; MulAdd then
// applies the matrix any number of times without global assembly. Elements
// without matrix-free support contribute nothing to the product. The held
// scratch buffers make MulAdd unsafe for concurrent use; build one
// MatFreeMat per goroutine and share the Assembler instead.
type MatFreeMat struct {
	asm   *Assembler
	mtype ele.MatrixType
	data  [][]float64 // [nele] compact matrix data; nil when unsupported
	temp  [][]float64 // [nele] product scratch
}

// MatFree precomputes the matrix-free representation of one matrix kind at
// the given state and combination factors
func (o *Assembler) MatFree(mtype ele.MatrixType, s *State, α, β, γ float64) (mf *MatFreeMat, err error) {
	if err = o.checkState(s); err != nil {
		return
	}
	mf = &MatFreeMat{
		asm:   o,
		mtype: mtype,
		data:  make([][]float64, len(o.Elems)),
		temp:  make([][]float64, len(o.Elems)),
	}
	for i, e := range o.Elems {
		dsize, tsize := ele.MatVecDataSizes(e, mtype, i)
		if dsize == 0 && tsize == 0 {
			continue
		}
		mf.data[i] = make([]float64, dsize)
		mf.temp[i] = make([]float64, tsize)
		xe, ue, ve, ae := o.gather(i, s)
		if err = ele.MatVecProductData(e, mtype, i, s.Time, α, β, γ, xe, ue, ve, ae, mf.data[i]); err != nil {
			return nil, err
		}
	}
	return
}

// MulAdd adds the product of the represented matrix with px into py
func (o *MatFreeMat) MulAdd(py, px []float64) (err error) {
	a := o.asm
	if len(px) != a.ndofs || len(py) != a.ndofs {
		return chk.Err("len(py)=%d and len(px)=%d are incorrect. both must be %d", len(py), len(px), a.ndofs)
	}
	for i, e := range a.Elems {
		if o.data[i] == nil {
			continue
		}
		nv := ele.NumVariables(e)
		lpx := make([]float64, nv)
		lpy := make([]float64, nv)
		a.gatherVec(i, px, lpx)
		ele.AddMatVecProduct(e, o.mtype, i, o.data[i], o.temp[i], lpx, lpy)
		a.scatterAdd(i, lpy, py)
	}
	return
}
