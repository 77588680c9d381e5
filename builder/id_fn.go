// SPDX-License-Identifier: MIT
// Package: una/builder
//
// id_fn.go - street name schemes keyed by construction index.

package builder

import (
	"fmt"
	"strconv"
)

// IDFn generates a label from a zero-based index. It must be pure.
type IDFn func(idx int) string

// DefaultIDFn returns the decimal string of idx.
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// ExcelColumnIDFn returns the spreadsheet column name for idx, e.g. 0→"A",
// 25→"Z", 26→"AA". Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// SymbolNumberIDFn returns prefix + decimal index, e.g. "St 0", "St 1".
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("SymbolNumberIDFn: idx must be ≥ 0, got %d", idx))
		}

		return prefix + strconv.Itoa(idx)
	}
}

// WithStreetNames names edges prefix+index.
func WithStreetNames(prefix string) BuilderOption {
	return WithNameScheme(SymbolNumberIDFn(prefix))
}
