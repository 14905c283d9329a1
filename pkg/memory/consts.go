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

const (
	// PageShift is the binary log of the hypervisor page size.
	PageShift = 12

	// PageSize is the hypervisor page size.
	PageSize = 1 << PageShift

	// PageMask selects the offset within a page.
	PageMask = PageSize - 1

	// HVBase is the fixed virtual address the hypervisor image is mapped at.
	HVBase = 0xffff_ff00_0000_0000
)

// PageSize must be a power of two for PageMask to act as a modulus.
var _ = [1]struct{}{}[PageSize&PageMask]
