// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ftmalloc implements a drop-in heap allocator core: the
// TINY/SMALL/LARGE size-class policy, the zone/arena layout, per-block
// free-list management and the growth/reclamation rules behind a
// malloc/free/realloc-shaped API.
//
// It is meant to sit behind a thin C-ABI shim (see cmd/ftmallocso) loaded
// via dynamic-library interposition (e.g. LD_PRELOAD), so none of the
// memory it manages is ever touched by the Go garbage collector: every
// byte backing a zone or a LARGE block comes from a raw mmap, not from
// Go's own heap.
package ftmalloc
