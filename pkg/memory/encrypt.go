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

package memory

import (
	"fmt"

	"hvmm.dev/hvmm/pkg/bits"
)

// EncryptionScheme identifies how memory encryption is encoded into
// physical addresses. Exactly one scheme is built in, selected with the
// mktme build tag; see ActiveScheme.
type EncryptionScheme int

const (
	// SchemeBit marks encrypted pages with a single fixed address bit
	// (AMD SME C-bit).
	SchemeBit EncryptionScheme = iota

	// SchemeKeyedField carries a multi-bit key identifier in the high
	// address bits (Intel MKTME).
	SchemeKeyedField
)

// String implements fmt.Stringer.String.
func (s EncryptionScheme) String() string {
	switch s {
	case SchemeBit:
		return "sme"
	case SchemeKeyedField:
		return "mktme"
	default:
		return fmt.Sprintf("EncryptionScheme(%d)", int(s))
	}
}

// IsEncrypted returns true if paddr carries any encryption metadata, that
// is any bit at or above EncryptionBoundary.
func IsEncrypted(paddr PhysAddr) bool {
	return bits.IsAnyOn64(uint64(paddr), ^bits.BelowMask64(EncryptionBoundary))
}

// stripEncryption clears every bit at or above EncryptionBoundary, leaving
// the bare physical frame address.
func stripEncryption(paddr PhysAddr) PhysAddr {
	return paddr & PhysAddr(bits.BelowMask64(EncryptionBoundary))
}
