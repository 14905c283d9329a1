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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const boundary = 1 << 47

func TestDecode(t *testing.T) {
	want := &HvSystemConfig{
		HypervisorMemory: MemoryRegion{
			PhysStart: 0x7c00000,
			Size:      0x4000000,
		},
		MaxCPUs: 8,
	}
	for _, tc := range []struct {
		name   string
		format Format
		data   string
	}{
		{
			name:   "toml",
			format: FormatTOML,
			data: `
max_cpus = 8

[hypervisor_memory]
phys_start = 0x7c00000
size = 0x4000000
`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			data: `
max_cpus: 8
hypervisor_memory:
  phys_start: 0x7c00000
  size: 0x4000000
`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.data), tc.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeError(t *testing.T) {
	if _, err := Decode([]byte("hypervisor_memory = ["), FormatTOML); err == nil {
		t.Errorf("Decode(bad toml) succeeded, want error")
	}
	if _, err := Decode([]byte("hypervisor_memory: [1, "), FormatYAML); err == nil {
		t.Errorf("Decode(bad yaml) succeeded, want error")
	}
	if _, err := Decode(nil, Format(42)); err == nil {
		t.Errorf("Decode(unknown format) succeeded, want error")
	}
}

func TestFormatForPath(t *testing.T) {
	for path, want := range map[string]Format{
		"hv.toml":      FormatTOML,
		"hv.yaml":      FormatYAML,
		"/etc/hv.YML":  FormatYAML,
		"no-extension": FormatTOML,
	} {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hv.yaml")
	data := "hypervisor_memory:\n  phys_start: 0x100000000\n  size: 0x2000000\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	want := MemoryRegion{PhysStart: 0x100000000, Size: 0x2000000}
	if diff := cmp.Diff(want, c.HypervisorMemory); diff != "" {
		t.Errorf("HypervisorMemory mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want %v", err, os.ErrNotExist)
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		region MemoryRegion
		want   error
	}{
		{"ok", MemoryRegion{PhysStart: 0x7c00000, Size: 0x4000000}, nil},
		{"empty", MemoryRegion{PhysStart: 0x7c00000}, ErrEmpty},
		{"unaligned start", MemoryRegion{PhysStart: 0x7c00010, Size: 0x4000000}, ErrUnaligned},
		{"unaligned size", MemoryRegion{PhysStart: 0x7c00000, Size: 0x4000001}, ErrUnaligned},
		{"at boundary", MemoryRegion{PhysStart: boundary - 0x1000, Size: 0x1000}, nil},
		{"past boundary", MemoryRegion{PhysStart: boundary - 0x1000, Size: 0x2000}, ErrOutOfRange},
		{"overflow", MemoryRegion{PhysStart: 0xfffffffffffff000, Size: 0x2000}, ErrOutOfRange},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := &HvSystemConfig{HypervisorMemory: tc.region}
			if err := c.Validate(boundary); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateBoundary(t *testing.T) {
	c := &HvSystemConfig{HypervisorMemory: MemoryRegion{PhysStart: 0x7c00000, Size: 0x4000000}}
	for _, b := range []uint64{0, 3, 1<<47 | 1<<46} {
		if err := c.Validate(b); !errors.Is(err, ErrBadBoundary) {
			t.Errorf("Validate(%#x) = %v, want %v", b, err, ErrBadBoundary)
		}
	}
	if err := c.Validate(1 << 46); err != nil {
		t.Errorf("Validate(1<<46) = %v, want nil", err)
	}
}

func TestSetGet(t *testing.T) {
	prev := current.Load()
	defer current.Store(prev)

	c := &HvSystemConfig{HypervisorMemory: MemoryRegion{PhysStart: 0x1000, Size: 0x1000}}
	Set(c)
	if got := Get(); got != c {
		t.Errorf("Get() = %p, want %p", got, c)
	}
}

func TestSetNil(t *testing.T) {
	prev := current.Load()
	defer current.Store(prev)

	Set(&HvSystemConfig{HypervisorMemory: MemoryRegion{PhysStart: 0x1000, Size: 0x1000}})
	Set(nil)

	defer func() {
		if recover() == nil {
			t.Errorf("Get() after Set(nil) did not panic")
		}
	}()
	Get()
}
