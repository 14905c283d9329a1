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

// Package config holds the hypervisor system configuration handed over by
// the loader: where the hypervisor image sits in physical memory and how
// large its memory window is.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"hvmm.dev/hvmm/pkg/bits"
)

// pageMask mirrors the hypervisor's 4K page geometry. It is duplicated here
// so that this package does not depend on the memory package, which reads
// configuration through Get.
const pageMask = 1<<12 - 1

// Format is a serialization format for the system configuration.
type Format int

const (
	// FormatTOML is the default format.
	FormatTOML Format = iota
	// FormatYAML is selected for .yaml and .yml files.
	FormatYAML
)

// String implements fmt.Stringer.String.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath picks a Format from the file extension of path.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// MemoryRegion is a contiguous range of physical memory.
type MemoryRegion struct {
	// PhysStart is the physical address of the first byte of the region.
	PhysStart uint64 `toml:"phys_start" yaml:"phys_start"`
	// Size is the length of the region in bytes.
	Size uint64 `toml:"size" yaml:"size"`
}

// End returns the first physical address past the region.
func (r MemoryRegion) End() uint64 {
	return r.PhysStart + r.Size
}

// HvSystemConfig is the system configuration consumed by the hypervisor.
type HvSystemConfig struct {
	// HypervisorMemory is the physical window the hypervisor is loaded into.
	HypervisorMemory MemoryRegion `toml:"hypervisor_memory" yaml:"hypervisor_memory"`

	// MaxCPUs is the number of CPUs the loader brought up. Zero means
	// unknown.
	MaxCPUs uint32 `toml:"max_cpus" yaml:"max_cpus"`
}

var (
	// ErrUnaligned is returned when a region boundary is not page aligned.
	ErrUnaligned = errors.New("region is not page aligned")

	// ErrEmpty is returned when the hypervisor memory region has no size.
	ErrEmpty = errors.New("region is empty")

	// ErrOutOfRange is returned when a region overflows or crosses the
	// physical address boundary.
	ErrOutOfRange = errors.New("region is out of range")

	// ErrBadBoundary is returned when the physical address boundary is not
	// a single bit.
	ErrBadBoundary = errors.New("boundary is not a power of two")
)

// Validate checks that the hypervisor memory window is page aligned,
// non-empty and lies entirely below boundary, the first physical address
// bit used for encryption metadata.
func (c *HvSystemConfig) Validate(boundary uint64) error {
	if !bits.IsPowerOfTwo64(boundary) {
		return fmt.Errorf("boundary %#x: %w", boundary, ErrBadBoundary)
	}
	r := c.HypervisorMemory
	if r.Size == 0 {
		return fmt.Errorf("hypervisor_memory: %w", ErrEmpty)
	}
	if r.PhysStart&pageMask != 0 || r.Size&pageMask != 0 {
		return fmt.Errorf("hypervisor_memory [%#x, %#x): %w", r.PhysStart, r.End(), ErrUnaligned)
	}
	if r.End() < r.PhysStart || r.End() > boundary {
		return fmt.Errorf("hypervisor_memory [%#x, %#x) with boundary %#x: %w", r.PhysStart, r.End(), boundary, ErrOutOfRange)
	}
	return nil
}

// Decode parses a configuration from data.
func Decode(data []byte, format Format) (*HvSystemConfig, error) {
	var c HvSystemConfig
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &c); err != nil {
			return nil, fmt.Errorf("decoding toml config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decoding yaml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %v", format)
	}
	return &c, nil
}

// Load reads the configuration file at path. The format is chosen by the
// file extension.
func Load(path string) (*HvSystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	format := FormatForPath(path)
	c, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path":       path,
		"format":     format,
		"phys_start": fmt.Sprintf("%#x", c.HypervisorMemory.PhysStart),
		"size":       fmt.Sprintf("%#x", c.HypervisorMemory.Size),
	}).Info("Loaded hypervisor system config")
	return c, nil
}

var current atomic.Pointer[HvSystemConfig]

// Set installs c as the process-wide system configuration. A nil c clears
// it, after which Get panics until another configuration is installed.
//
// Consumers that derive constants from the configuration (such as the
// physical-virtual translation offset) read it once; installing a new
// configuration afterwards does not affect them.
func Set(c *HvSystemConfig) {
	if c == nil {
		log.Debug("Clearing hypervisor system config")
	} else {
		log.Debugf("Installing hypervisor system config %+v", c)
	}
	current.Store(c)
}

// Get returns the process-wide system configuration.
//
// Precondition: Set has been called. A missing configuration is a fatal
// startup error, so Get panics rather than returning an error.
func Get() *HvSystemConfig {
	c := current.Load()
	if c == nil {
		panic("hypervisor system config not initialized")
	}
	return c
}
