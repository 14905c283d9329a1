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

//go:build !mktme

package memory

import "hvmm.dev/hvmm/pkg/bits"

const (
	// ActiveScheme is the encryption scheme compiled into this build.
	ActiveScheme = SchemeBit

	// SMECBitShift is the position of the SME C-bit.
	SMECBitShift = 47

	// EncryptionBoundary is the lowest physical address bit holding
	// encryption metadata.
	EncryptionBoundary = uint64(1) << SMECBitShift
)

// PhysEncrypted returns paddr with the C-bit set.
//
// No other bits are cleared, so paddr must not already carry high bits
// outside the C-bit.
func PhysEncrypted(paddr PhysAddr) PhysAddr {
	return paddr | PhysAddr(bits.MaskOf64(SMECBitShift))
}
