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
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"
	"hvmm.dev/hvmm/pkg/config"
)

func TestPhysVirtOffset(t *testing.T) {
	if got, want := PhysVirtOffset(), uint64(testOffset); got != want {
		t.Errorf("PhysVirtOffset() = %#x, want %#x", got, want)
	}
}

func TestPhysVirtOffsetIgnoresLaterConfig(t *testing.T) {
	before := PhysVirtOffset()

	prev := config.Get()
	defer config.Set(prev)
	config.Set(&config.HvSystemConfig{
		HypervisorMemory: config.MemoryRegion{PhysStart: 0x200000000, Size: 0x1000000},
	})

	if got := PhysVirtOffset(); got != before {
		t.Errorf("PhysVirtOffset() after config change = %#x, want %#x", got, before)
	}
}

func TestPhysVirtOffsetConcurrentInit(t *testing.T) {
	saved := physVirtOffset
	defer func() { physVirtOffset = saved }()

	var calls atomic.Int32
	physVirtOffset = sync.OnceValue(func() uint64 {
		calls.Add(1)
		return computePhysVirtOffset()
	})

	const n = 32
	results := make([]uint64, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = PhysVirtOffset()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("offset computed %d times, want 1", got)
	}
	for i, r := range results {
		if r != testOffset {
			t.Errorf("caller %d got offset %#x, want %#x", i, r, uint64(testOffset))
		}
	}
}

func TestVirtToPhys(t *testing.T) {
	offset := PhysVirtOffset()
	boundary := EncryptionBoundary
	for _, tc := range []struct {
		vaddr VirtAddr
		want  PhysAddr
	}{
		{HVBase, testPhysStart},
		{HVBase + 0x1234, testPhysStart + 0x1234},
		{VirtAddr(offset), 0},
		// Below the offset the subtraction wraps.
		{VirtAddr(offset - 1), PhysAddr(^uint64(0))},
		// High bits are carried through untouched.
		{VirtAddr(offset + boundary + 0x1000), PhysAddr(boundary + 0x1000)},
	} {
		if got := VirtToPhys(tc.vaddr); got != tc.want {
			t.Errorf("VirtToPhys(%v) = %v, want %v", tc.vaddr, got, tc.want)
		}
	}
}

func TestPhysToVirt(t *testing.T) {
	offset := PhysVirtOffset()
	boundary := EncryptionBoundary
	for _, tc := range []struct {
		paddr PhysAddr
		want  VirtAddr
	}{
		{testPhysStart, HVBase},
		{testPhysStart + 0x1234, HVBase + 0x1234},
		{0, VirtAddr(offset)},
		{PhysAddr(boundary | 0x5000), VirtAddr(offset + 0x5000)},
		// Everything at or above the boundary is discarded.
		{^PhysAddr(0), VirtAddr(boundary - 1 + offset)},
	} {
		if got := PhysToVirt(tc.paddr); got != tc.want {
			t.Errorf("PhysToVirt(%v) = %v, want %v", tc.paddr, got, tc.want)
		}
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	for _, vaddr := range []VirtAddr{HVBase, HVBase + 0x1000, HVBase + 0x3fff123} {
		paddr := VirtToPhys(vaddr)
		if got := PhysToVirt(paddr); got != vaddr {
			t.Errorf("PhysToVirt(VirtToPhys(%v)) = %v", vaddr, got)
		}
	}
}

func TestPhysToVirtEncryptionTransparent(t *testing.T) {
	for _, p := range []PhysAddr{0, 0x1000, testPhysStart, testPhysStart + 0x3fff000} {
		if got, want := PhysToVirt(PhysEncrypted(p)), PhysToVirt(p); got != want {
			t.Errorf("PhysToVirt(PhysEncrypted(%v)) = %v, want %v", p, got, want)
		}
	}
}

func TestTranslateAsymmetry(t *testing.T) {
	// Going physical -> virtual -> physical loses the encryption metadata.
	p := PhysEncrypted(testPhysStart + 0x2000)
	back := VirtToPhys(PhysToVirt(p))
	if back != testPhysStart+0x2000 {
		t.Errorf("VirtToPhys(PhysToVirt(%v)) = %v, want %#x", p, back, testPhysStart+0x2000)
	}
	if IsEncrypted(back) {
		t.Errorf("IsEncrypted(%v) = true after round trip, want false", back)
	}
}
