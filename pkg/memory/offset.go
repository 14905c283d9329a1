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
	"sync"

	log "github.com/sirupsen/logrus"
	"hvmm.dev/hvmm/pkg/config"
)

// physVirtOffset is computed on first use from the installed system
// configuration and never recomputed.
var physVirtOffset = sync.OnceValue(computePhysVirtOffset)

func computePhysVirtOffset() uint64 {
	physStart := config.Get().HypervisorMemory.PhysStart
	offset := HVBase - physStart
	log.WithFields(log.Fields{
		"hv_base":    HostVirtAddr(HVBase),
		"phys_start": HostPhysAddr(physStart),
		"offset":     HostVirtAddr(offset),
	}).Debug("Derived hypervisor physical-virtual offset")
	return offset
}

// PhysVirtOffset returns the difference between the hypervisor's virtual
// base and its physical load address.
//
// The first call reads config.Get, which must already hold the loader's
// configuration. Configuration installed after that is ignored.
func PhysVirtOffset() uint64 {
	return physVirtOffset()
}
