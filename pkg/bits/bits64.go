// Copyright 2018 The gVisor Authors.
// Copyright 2026 The hvmm Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bits provides non-atomic bit manipulation on 64-bit words.
package bits

import "math/bits"

// IsAnyOn64 returns true if *any* bit set in 'bits' is set in 'mask'.
func IsAnyOn64(mask, bits uint64) bool {
	return mask&bits != 0
}

// MaskOf64 returns a uint64 with only bit i set.
func MaskOf64(i int) uint64 {
	return uint64(1) << uint64(i)
}

// LowMask64 returns a mask of the low width bits. Widths of 64 or more
// produce an all-ones mask.
func LowMask64(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return MaskOf64(width) - 1
}

// FieldMask64 returns a mask covering width bits starting at shift.
func FieldMask64(shift, width int) uint64 {
	return LowMask64(width) << uint64(shift)
}

// BelowMask64 returns a mask of every bit strictly below boundary, which
// must be a single bit. A zero boundary wraps to an all-ones mask.
func BelowMask64(boundary uint64) uint64 {
	return boundary - 1
}

// IsPowerOfTwo64 returns true if v is a power of two.
func IsPowerOfTwo64(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// TrailingZeros64 returns the number of trailing zero bits in x; the result
// is 64 for x == 0.
func TrailingZeros64(x uint64) int {
	return bits.TrailingZeros64(x)
}
