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

// Package memory provides the address types and the translation primitives
// used by the hypervisor's memory management: conversion between host
// virtual and host physical addresses, memory encryption metadata carried
// in the high bits of physical addresses, and page arithmetic.
//
// Nothing here validates that an address is mapped or owned by the caller;
// all functions are plain arithmetic.
package memory

import "fmt"

// Address is the set of address types accepted by the page arithmetic
// helpers. Plain uint64 byte counts satisfy it as well.
type Address interface {
	~uint64
}

// HostVirtAddr is a virtual address in the hypervisor's own address space.
type HostVirtAddr uint64

// HostPhysAddr is a host physical address.
type HostPhysAddr uint64

// GuestVirtAddr is a virtual address in a guest's address space.
type GuestVirtAddr uint64

// GuestPhysAddr is a guest physical address.
type GuestPhysAddr uint64

type (
	// VirtAddr is shorthand for HostVirtAddr.
	VirtAddr = HostVirtAddr

	// PhysAddr is shorthand for HostPhysAddr.
	PhysAddr = HostPhysAddr
)

// String implements fmt.Stringer.String.
func (v HostVirtAddr) String() string {
	return fmt.Sprintf("%#x", uint64(v))
}

// String implements fmt.Stringer.String.
func (p HostPhysAddr) String() string {
	return fmt.Sprintf("%#x", uint64(p))
}

// String implements fmt.Stringer.String.
func (v GuestVirtAddr) String() string {
	return fmt.Sprintf("%#x", uint64(v))
}

// String implements fmt.Stringer.String.
func (p GuestPhysAddr) String() string {
	return fmt.Sprintf("%#x", uint64(p))
}
