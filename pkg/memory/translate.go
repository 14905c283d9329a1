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

// VirtToPhys translates a hypervisor virtual address to a physical address.
//
// Encryption bits are not stripped: high bits in vaddr propagate into the
// result. vaddr below PhysVirtOffset wraps around.
func VirtToPhys(vaddr VirtAddr) PhysAddr {
	return PhysAddr(uint64(vaddr) - PhysVirtOffset())
}

// PhysToVirt translates a physical address to a hypervisor virtual address.
// Encryption metadata in paddr is discarded first, so encrypted and plain
// views of a frame map to the same virtual address.
//
// PhysToVirt(VirtToPhys(v)) == v only holds for v without encryption bits.
func PhysToVirt(paddr PhysAddr) VirtAddr {
	return VirtAddr(uint64(stripEncryption(paddr)) + PhysVirtOffset())
}
