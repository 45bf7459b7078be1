// Copyright 2026 The A2D-Shells Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// AllocatorType defines a function that allocates a formulation from parameters
type AllocatorType func(prms dbf.Params) (Element, error)

// New allocates a formulation from the database of registered formulations
func New(name string, prms dbf.Params) (e Element, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("formulation %q is not available in database of elements", name)
	}
	return allocator(prms)
}

// SetAllocator registers a new formulation allocator. Formulation packages
// call this from their init functions.
func SetAllocator(name string, fcn AllocatorType) {
	if _, ok := allocators[name]; ok {
		chk.Panic("cannot set allocator for %q because formulation exists already", name)
	}
	allocators[name] = fcn
}

// allocators holds all formulation allocators
var allocators = make(map[string]AllocatorType)
