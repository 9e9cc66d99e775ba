// clone.go: the opt-in deep-copy contract for *Clone operation variants
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package mutring

// Cloner is implemented by item types that want an explicit deep copy
// instead of Go's normal value-copy semantics — for example a T backed
// by a slice or pointer, where PushSlice/Pop's plain assignment would
// alias the caller's storage rather than duplicate it.
//
// spec.md's Cell.Duplicate is documented unsafe in the original because
// bitwise-duplicating an owning type (a Box, a String) without running
// its clone logic risks a double-free. Go has no explicit frees — the
// garbage collector tolerates two references to the same backing array
// or struct just fine — so plain Pop/PushSlice never need this
// interface for safety. Cloner exists purely as an opt-in convenience
// for callers who want independent copies (see PushSliceClone,
// CloneItem, CloneSlice), not as a soundness requirement.
type Cloner[T any] interface {
	Clone() T
}
