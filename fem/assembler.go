// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem assembles element contributions into global vectors and
// sparse matrices over a mesh
package fem

import (
	"sync"

	"github.com/SeiyonArulampalam/a2d-shells/ele"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// State holds the solution data @ nodes
type State struct {
	Time   float64   // current time
	Y      []float64 // DOFs (solution variables)
	Dydt   []float64 // dy/dt
	D2ydt2 []float64 // d²y/dt²
}

// Assembler maps element contributions into global vectors and matrices.
// Nodes are identified by their index into the coordinates array and carry
// the same number of unknowns each; global equation numbers follow
//
//	eq = varsPerNode*node + variable
//
// Elements hold no mesh state, so one Assembler may drive residual and
// Jacobian computations from any number of goroutines (see Nworkers).
type Assembler struct {

	// input
	Xpts  []float64     // [3*nnodes] node coordinates; always 3 per node
	Conn  [][]int       // [nele][nnodes(e)] connectivity: local node => global node
	Elems []ele.Element // [nele] element formulations

	// configuration
	Nworkers int // number of goroutines splitting the element loops; 0 or 1 => serial

	// derived
	varsPerNode int // unknowns per node; uniform over the mesh
	nnodes      int // number of nodes
	ndofs       int // total number of unknowns
	nnz         int // Σ (element ndofs)²; sizes Jacobian triplets
}

// NewAssembler checks the mesh data and returns a new assembler.
// xpts has 3 coordinates per node; conn and elems are parallel arrays and
// every element must agree with varsPerNode.
func NewAssembler(xpts []float64, conn [][]int, elems []ele.Element, varsPerNode int) (o *Assembler, err error) {
	if len(xpts)%3 != 0 {
		err = chk.Err("len(xpts)=%d is incorrect. coordinates come in triples", len(xpts))
		return
	}
	if len(conn) != len(elems) {
		err = chk.Err("len(conn)=%d differs from len(elems)=%d", len(conn), len(elems))
		return
	}
	if varsPerNode < 1 {
		err = chk.Err("varsPerNode=%d is invalid", varsPerNode)
		return
	}
	o = &Assembler{
		Xpts:        xpts,
		Conn:        conn,
		Elems:       elems,
		varsPerNode: varsPerNode,
		nnodes:      len(xpts) / 3,
	}
	o.ndofs = o.nnodes * varsPerNode
	for i, e := range elems {
		if e.VarsPerNode() != varsPerNode {
			err = chk.Err("element %d: has %d variables per node. %d are required", i, e.VarsPerNode(), varsPerNode)
			return nil, err
		}
		if len(conn[i]) != e.NumNodes() {
			err = chk.Err("element %d: connectivity has %d nodes. %d are required", i, len(conn[i]), e.NumNodes())
			return nil, err
		}
		for _, n := range conn[i] {
			if n < 0 || n >= o.nnodes {
				err = chk.Err("element %d: node %d is out of range [0,%d)", i, n, o.nnodes)
				return nil, err
			}
		}
		nv := ele.NumVariables(e)
		o.nnz += nv * nv
	}
	return
}

// NumNodes returns the number of nodes in the mesh
func (o *Assembler) NumNodes() int { return o.nnodes }

// NumDofs returns the total number of unknowns
func (o *Assembler) NumDofs() int { return o.ndofs }

// NnzJacobian returns the number of entries Jacobian triplets must hold
func (o *Assembler) NnzJacobian() int { return o.nnz }

// NewState returns a state with zeroed vectors sized for this mesh
func (o *Assembler) NewState() *State {
	return &State{
		Y:      make([]float64, o.ndofs),
		Dydt:   make([]float64, o.ndofs),
		D2ydt2: make([]float64, o.ndofs),
	}
}

// InitConditions asks each element for its initial conditions and scatters
// them into s with insert semantics; on shared nodes the element with the
// larger index wins. Entries of nodes without elements are left untouched.
func (o *Assembler) InitConditions(s *State) (err error) {
	if err = o.checkState(s); err != nil {
		return
	}
	for i, e := range o.Elems {
		nv := ele.NumVariables(e)
		xe := o.gatherCoords(i)
		ue := make([]float64, nv)
		ve := make([]float64, nv)
		ae := make([]float64, nv)
		if err = ele.InitConditions(e, i, xe, ue, ve, ae); err != nil {
			return
		}
		o.scatterInsert(i, ue, s.Y)
		o.scatterInsert(i, ve, s.Dydt)
		o.scatterInsert(i, ae, s.D2ydt2)
	}
	return
}

// AddResiduals adds all element residuals into the global vector fb.
// With Nworkers > 1 the element loop is split across goroutines, each
// accumulating into its own buffer; on error the contents of fb are undefined.
func (o *Assembler) AddResiduals(s *State, fb []float64) (err error) {
	if err = o.checkState(s); err != nil {
		return
	}
	if len(fb) != o.ndofs {
		return chk.Err("len(fb)=%d is incorrect. it must be %d", len(fb), o.ndofs)
	}
	nw := o.nworkers()
	acc := make([][]float64, nw)
	acc[0] = fb
	for iw := 1; iw < nw; iw++ {
		acc[iw] = make([]float64, o.ndofs)
	}
	err = o.foreachElement(nw, func(worker, i int) error {
		e := o.Elems[i]
		xe, ue, ve, ae := o.gather(i, s)
		res := make([]float64, ele.NumVariables(e))
		if err := ele.AddResidual(e, i, s.Time, xe, ue, ve, ae, res); err != nil {
			return err
		}
		o.scatterAdd(i, res, acc[worker])
		return nil
	})
	if err != nil {
		return
	}
	for iw := 1; iw < nw; iw++ {
		for j, v := range acc[iw] {
			fb[j] += v
		}
	}
	return
}

// AddJacobians adds the combination α·∂R/∂y + β·∂R/∂(dy/dt) + γ·∂R/∂(d²y/dt²)
// of all elements into the triplet Kb. Kb must have been initialised with at
// least NnzJacobian() entries and is not reset here; call Kb.Start() first
// when reassembling. Element loops may run concurrently; puts are serialised.
func (o *Assembler) AddJacobians(s *State, α, β, γ float64, Kb *la.Triplet) (err error) {
	if err = o.checkState(s); err != nil {
		return
	}
	var mu sync.Mutex
	return o.foreachElement(o.nworkers(), func(worker, i int) error {
		e := o.Elems[i]
		nv := ele.NumVariables(e)
		xe, ue, ve, ae := o.gather(i, s)
		res := make([]float64, nv)
		mat := la.MatAlloc(nv, nv)
		if err := ele.AddJacobian(e, i, s.Time, α, β, γ, xe, ue, ve, ae, res, mat); err != nil {
			return err
		}
		mu.Lock()
		o.putMat(i, mat, Kb)
		mu.Unlock()
		return nil
	})
}

// AssembleMatType assembles one matrix kind directly into Kb, skipping
// elements that do not provide it. The number of skipped elements is
// returned so callers can tell a partial matrix from a complete one.
func (o *Assembler) AssembleMatType(mtype ele.MatrixType, s *State, Kb *la.Triplet) (skipped int, err error) {
	if err = o.checkState(s); err != nil {
		return
	}
	var mu sync.Mutex
	err = o.foreachElement(o.nworkers(), func(worker, i int) error {
		e := o.Elems[i]
		nv := ele.NumVariables(e)
		xe, ue, _, _ := o.gather(i, s)
		mat := la.MatAlloc(nv, nv)
		computed, err := ele.CalcMatType(e, mtype, i, s.Time, xe, ue, mat)
		if err != nil {
			return err
		}
		mu.Lock()
		if computed {
			o.putMat(i, mat, Kb)
		} else {
			skipped++
		}
		mu.Unlock()
		return nil
	})
	return
}

// Energies returns the total kinetic and potential energies of the mesh
func (o *Assembler) Energies(s *State) (Te, Pe float64, err error) {
	if err = o.checkState(s); err != nil {
		return
	}
	nw := o.nworkers()
	tes := make([]float64, nw)
	pes := make([]float64, nw)
	err = o.foreachElement(nw, func(worker, i int) error {
		e := o.Elems[i]
		xe, ue, ve, _ := o.gather(i, s)
		te, pe, err := ele.Energies(e, i, s.Time, xe, ue, ve)
		if err != nil {
			return err
		}
		tes[worker] += te
		pes[worker] += pe
		return nil
	})
	if err != nil {
		return
	}
	for iw := 0; iw < nw; iw++ {
		Te += tes[iw]
		Pe += pes[iw]
	}
	return
}

// IntegrateQuantity integrates one pointwise quantity over the whole mesh
// using each element's own quadrature. Elements reporting a zero count are
// skipped; the remaining ones must agree on the count. A nil result with a
// nil error means no element provides the quantity.
func (o *Assembler) IntegrateQuantity(quantityType int, s *State) (result []float64, err error) {
	if err = o.checkState(s); err != nil {
		return
	}
	pt := make([]float64, 3)
	for i, e := range o.Elems {
		xe, ue, ve, ae := o.gather(i, s)
		e.IpCoords(0, pt)
		count, _, err := ele.PointQuantity(e, i, quantityType, s.Time, 0, pt, xe, ue, ve, ae, nil)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		if result == nil {
			result = make([]float64, count)
		} else if count != len(result) {
			return nil, chk.Err("element %d: quantity has %d components. previous elements have %d", i, count, len(result))
		}
		quantity := make([]float64, count)
		for n := 0; n < e.NumIps(); n++ {
			e.IpCoords(n, pt)
			w := e.IpWeight(n)
			_, detXd, err := ele.PointQuantity(e, i, quantityType, s.Time, n, pt, xe, ue, ve, ae, quantity)
			if err != nil {
				return nil, err
			}
			for j := range result {
				result[j] += w * detXd * quantity[j]
			}
		}
	}
	return
}

// nworkers clips Nworkers to [1, nele]
func (o *Assembler) nworkers() int {
	nw := o.Nworkers
	if nw > len(o.Elems) {
		nw = len(o.Elems)
	}
	if nw < 1 {
		nw = 1
	}
	return nw
}

// foreachElement runs fn over all elements. With nw > 1 the index range is
// split into contiguous blocks, one goroutine each; fn receives the worker
// index so callers can keep per-worker accumulators. The first error wins.
func (o *Assembler) foreachElement(nw int, fn func(worker, i int) error) error {
	if nw < 2 {
		for i := range o.Elems {
			if err := fn(0, i); err != nil {
				return err
			}
		}
		return nil
	}
	nele := len(o.Elems)
	errs := make([]error, nw)
	var wg sync.WaitGroup
	for iw := 0; iw < nw; iw++ {
		start := iw * nele / nw
		end := (iw + 1) * nele / nw
		wg.Add(1)
		go func(iw, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if err := fn(iw, i); err != nil {
					errs[iw] = err
					return
				}
			}
		}(iw, start, end)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// gatherCoords collects the coordinates of one element's nodes
func (o *Assembler) gatherCoords(i int) (xe []float64) {
	conn := o.Conn[i]
	xe = make([]float64, 3*len(conn))
	for m, n := range conn {
		for j := 0; j < 3; j++ {
			xe[3*m+j] = o.Xpts[3*n+j]
		}
	}
	return
}

// gather collects coordinates and state vectors of one element's nodes
func (o *Assembler) gather(i int, s *State) (xe, ue, ve, ae []float64) {
	xe = o.gatherCoords(i)
	nv := o.varsPerNode * len(o.Conn[i])
	ue = make([]float64, nv)
	ve = make([]float64, nv)
	ae = make([]float64, nv)
	o.gatherVec(i, s.Y, ue)
	o.gatherVec(i, s.Dydt, ve)
	o.gatherVec(i, s.D2ydt2, ae)
	return
}

// gatherVec collects entries of a global vector into an element-local one
func (o *Assembler) gatherVec(i int, global, local []float64) {
	vpn := o.varsPerNode
	for m, n := range o.Conn[i] {
		for j := 0; j < vpn; j++ {
			local[vpn*m+j] = global[vpn*n+j]
		}
	}
}

// scatterAdd adds an element-local vector into a global one
func (o *Assembler) scatterAdd(i int, local, global []float64) {
	vpn := o.varsPerNode
	for m, n := range o.Conn[i] {
		for j := 0; j < vpn; j++ {
			global[vpn*n+j] += local[vpn*m+j]
		}
	}
}

// scatterInsert writes an element-local vector into a global one
func (o *Assembler) scatterInsert(i int, local, global []float64) {
	vpn := o.varsPerNode
	for m, n := range o.Conn[i] {
		for j := 0; j < vpn; j++ {
			global[vpn*n+j] = local[vpn*m+j]
		}
	}
}

// putMat puts an element matrix into a global triplet
func (o *Assembler) putMat(i int, mat [][]float64, Kb *la.Triplet) {
	vpn := o.varsPerNode
	conn := o.Conn[i]
	for mi, ni := range conn {
		for mj, nj := range conn {
			for ii := 0; ii < vpn; ii++ {
				for jj := 0; jj < vpn; jj++ {
					Kb.Put(vpn*ni+ii, vpn*nj+jj, mat[vpn*mi+ii][vpn*mj+jj])
				}
			}
		}
	}
}

// checkState verifies that the state vectors match this mesh
func (o *Assembler) checkState(s *State) error {
	if len(s.Y) != o.ndofs || len(s.Dydt) != o.ndofs || len(s.D2ydt2) != o.ndofs {
		return chk.Err("state vectors have lengths %d,%d,%d. all must be %d",
			len(s.Y), len(s.Dydt), len(s.D2ydt2), o.ndofs)
	}
	return nil
}
