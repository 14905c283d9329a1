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

// AlignDown rounds addr down to the enclosing page boundary.
func AlignDown[A Address](addr A) A {
	return addr &^ PageMask
}

// AlignUp rounds addr up to the next page boundary. Aligned addresses are
// returned unchanged; addresses in the last page of the address space wrap
// to zero.
func AlignUp[A Address](addr A) A {
	return AlignDown(addr + PageMask)
}

// IsAligned returns true if addr is on a page boundary.
func IsAligned[A Address](addr A) bool {
	return PageOffset(addr) == 0
}

// PageCount returns the number of pages needed to cover size bytes.
func PageCount(size uint64) uint64 {
	return AlignUp(size) / PageSize
}

// PageOffset returns the byte offset of addr within its page.
func PageOffset[A Address](addr A) A {
	return addr & PageMask
}
