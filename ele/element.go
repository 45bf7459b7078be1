// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the element kernel contract: formulations that
// produce energies, residuals and Jacobian contributions at quadrature points
package ele

// Element defines what all element formulations must implement. A formulation
// holds configuration fixed at construction only; nodal coordinates and state
// vectors enter per call and are never retained, so a single instance may be
// shared by any number of concurrent workers.
type Element interface {

	// dimensions; constant over the lifetime of the formulation
	VarsPerNode() int // number of unknowns per node
	NumNodes() int    // number of nodes

	// volume (or area, or line) integration points
	NumIps() int                  // number of integration points
	IpWeight(n int) float64       // weight of integration point n
	IpCoords(n int, pt []float64) // parametric coordinates of point n; pt has length 3

	// face integration points, given in the element's own (unreduced)
	// parametric space together with 0, 1 or 2 parametric tangent vectors.
	// The cross product of the transformed tangents points outwards; with a
	// single tangent the cross product is taken against the out-of-plane axis.
	NumFaces() int                                           // number of faces (edges in 2D, end points in 1D)
	NumFaceIps(face int) int                                 // number of integration points of face
	FaceIpCoords(face, n int, pt, tangent []float64) float64 // fills pt and tangent; returns weight

	// AddResidual adds the residual contribution at the given time into res.
	// Implementations accumulate and never overwrite entries of res.
	AddResidual(elemIndex int, time float64, xpts, vars, dvars, ddvars, res []float64) (err error)
}

// WithMultiplier defines formulations carrying a Lagrange multiplier among
// their nodal unknowns
type WithMultiplier interface {
	MultiplierIndex() int // local index of the multiplier variable
}

// WithInitConditions defines formulations with nonzero initial conditions.
// The state vectors arrive zeroed; implementations set nonzero entries only.
type WithInitConditions interface {
	InitConditions(elemIndex int, xpts, vars, dvars, ddvars []float64) (err error)
}

// WithEnergies defines formulations that can report kinetic and potential energies
type WithEnergies interface {
	Energies(elemIndex int, time float64, xpts, vars, dvars []float64) (Te, Pe float64, err error)
}

// WithJacobian defines formulations with an analytical Jacobian. The
// contribution α·∂res/∂vars + β·∂res/∂dvars + γ·∂res/∂ddvars is added into
// mat, and the unperturbed residual is added into res as a byproduct.
type WithJacobian interface {
	AddJacobian(elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, res []float64, mat [][]float64) (err error)
}

// WithMatType defines formulations that compute one assembled matrix kind
// directly. The computed flag is false when the formulation does not provide
// the requested kind; mat is then left zeroed.
type WithMatType interface {
	CalcMatType(mtype MatrixType, elemIndex int, time float64, xpts, vars []float64, mat [][]float64) (computed bool, err error)
}

// WithMatVecProduct defines formulations supporting matrix-free products.
// MatVecProductData fills a compact representation of the matrix selected by
// mtype; AddMatVecProduct later adds mat·px into py any number of times using
// that data. temp is pure scratch with undefined contents across calls.
type WithMatVecProduct interface {
	MatVecDataSizes(mtype MatrixType, elemIndex int) (dsize, tsize int)
	MatVecProductData(mtype MatrixType, elemIndex int, time, α, β, γ float64, xpts, vars, dvars, ddvars, data []float64) (err error)
	AddMatVecProduct(mtype MatrixType, elemIndex int, data, temp, px, py []float64)
}

// WithPointQuantity defines formulations that evaluate pointwise quantities
// such as failure indices or densities at a parametric point. The returned
// count is the number of entries written into quantity; a nil quantity slice
// queries the count without writing. detXd is the determinant of the
// coordinate transformation at the point, for the caller's own integration.
type WithPointQuantity interface {
	PointQuantity(elemIndex, quantityType int, time float64, n int, pt, xpts, vars, dvars, ddvars, quantity []float64) (count int, detXd float64, err error)
}

// MatrixType selects which assembled matrix an element computes
type MatrixType int

// matrix kinds
const (
	StiffnessMatrix MatrixType = iota
	MassMatrix
	GeometricStiffnessMatrix
	DampingMatrix
)

// String returns a short name of the matrix kind
func (mt MatrixType) String() string {
	switch mt {
	case StiffnessMatrix:
		return "stiffness"
	case MassMatrix:
		return "mass"
	case GeometricStiffnessMatrix:
		return "geometric-stiffness"
	case DampingMatrix:
		return "damping"
	}
	return "unknown"
}

// Component is an embeddable grouping tag relating elements to design or
// output groups. The zero value (group 0) is valid.
type Component struct {
	num int
}

// ComponentNum returns the component group number
func (o *Component) ComponentNum() int { return o.num }

// SetComponentNum sets the component group number
func (o *Component) SetComponentNum(num int) { o.num = num }
