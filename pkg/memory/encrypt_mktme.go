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

//go:build mktme

package memory

import "hvmm.dev/hvmm/pkg/bits"

const (
	// ActiveScheme is the encryption scheme compiled into this build.
	ActiveScheme = SchemeKeyedField

	// MKTMEKeyIDShift is the position of the lowest key-id bit.
	MKTMEKeyIDShift = 46

	// MKTMEKeyIDBits is the width of the key-id field (bits 51:46).
	MKTMEKeyIDBits = 6

	// MKTMEKeyIDMask covers the key-id field.
	MKTMEKeyIDMask = (1<<MKTMEKeyIDBits - 1) << MKTMEKeyIDShift

	// MKTMEKeyIDOffset separates addressable bits from the key-id field.
	MKTMEKeyIDOffset = 1 << MKTMEKeyIDShift

	// DefaultKeyID is the key used by PhysEncrypted.
	DefaultKeyID = 1

	// EncryptionBoundary is the lowest physical address bit holding
	// encryption metadata.
	EncryptionBoundary = uint64(MKTMEKeyIDOffset)
)

// PhysEncrypted returns paddr tagged with DefaultKeyID. Any key id already
// present in paddr is replaced.
func PhysEncrypted(paddr PhysAddr) PhysAddr {
	return physEncryptedWithKeyID(paddr, DefaultKeyID)
}

// physEncryptedWithKeyID replaces the key-id field of paddr with keyID.
// keyID is truncated to the field width without complaint.
func physEncryptedWithKeyID(paddr PhysAddr, keyID uint64) PhysAddr {
	cleared := uint64(paddr) &^ bits.FieldMask64(MKTMEKeyIDShift, MKTMEKeyIDBits)
	keyBits := keyID & bits.LowMask64(MKTMEKeyIDBits)
	return PhysAddr(cleared | keyBits<<MKTMEKeyIDShift)
}
