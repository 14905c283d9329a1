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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
	"hvmm.dev/hvmm/pkg/bits"
	"hvmm.dev/hvmm/pkg/memory"
)

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// VirtToPhys implements subcommands.Command for the "virt2phys" command.
type VirtToPhys struct {
	out io.Writer
}

// Name implements subcommands.Command.Name.
func (*VirtToPhys) Name() string {
	return "virt2phys"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*VirtToPhys) Synopsis() string {
	return "translate hypervisor virtual addresses to physical addresses"
}

// Usage implements subcommands.Command.Usage.
func (*VirtToPhys) Usage() string {
	return `virt2phys <vaddr>... - translate hypervisor virtual addresses to physical addresses
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*VirtToPhys) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (v *VirtToPhys) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if _, err := requireConfig(args); err != nil {
		log.Errorf("%v", err)
		return subcommands.ExitFailure
	}
	return runEach(stdout(v.out), f, func(w io.Writer, a uint64) {
		vaddr := memory.VirtAddr(a)
		fmt.Fprintf(w, "%v -> %v\n", vaddr, memory.VirtToPhys(vaddr))
	})
}

// PhysToVirt implements subcommands.Command for the "phys2virt" command.
type PhysToVirt struct {
	out io.Writer
}

// Name implements subcommands.Command.Name.
func (*PhysToVirt) Name() string {
	return "phys2virt"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*PhysToVirt) Synopsis() string {
	return "translate physical addresses to hypervisor virtual addresses"
}

// Usage implements subcommands.Command.Usage.
func (*PhysToVirt) Usage() string {
	return `phys2virt <paddr>... - translate physical addresses to hypervisor virtual addresses

Encryption bits in the physical address are ignored.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*PhysToVirt) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (p *PhysToVirt) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if _, err := requireConfig(args); err != nil {
		log.Errorf("%v", err)
		return subcommands.ExitFailure
	}
	return runEach(stdout(p.out), f, func(w io.Writer, a uint64) {
		paddr := memory.PhysAddr(a)
		fmt.Fprintf(w, "%v -> %v (encrypted=%t)\n", paddr, memory.PhysToVirt(paddr), memory.IsEncrypted(paddr))
	})
}

// Encrypt implements subcommands.Command for the "encrypt" command.
type Encrypt struct {
	out io.Writer
}

// Name implements subcommands.Command.Name.
func (*Encrypt) Name() string {
	return "encrypt"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Encrypt) Synopsis() string {
	return "apply the memory encryption encoding to physical addresses"
}

// Usage implements subcommands.Command.Usage.
func (*Encrypt) Usage() string {
	return `encrypt <paddr>... - apply the memory encryption encoding to physical addresses
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Encrypt) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute. No configuration is
// needed since the encoding is fixed at build time.
func (e *Encrypt) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return runEach(stdout(e.out), f, func(w io.Writer, a uint64) {
		paddr := memory.PhysAddr(a)
		fmt.Fprintf(w, "%v -> %v (%v)\n", paddr, memory.PhysEncrypted(paddr), memory.ActiveScheme)
	})
}

// Offset implements subcommands.Command for the "offset" command.
type Offset struct {
	out io.Writer
}

// Name implements subcommands.Command.Name.
func (*Offset) Name() string {
	return "offset"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Offset) Synopsis() string {
	return "print the physical-virtual translation offset and encryption scheme"
}

// Usage implements subcommands.Command.Usage.
func (*Offset) Usage() string {
	return `offset - print the physical-virtual translation offset and encryption scheme
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Offset) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (o *Offset) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if _, err := requireConfig(args); err != nil {
		log.Errorf("%v", err)
		return subcommands.ExitFailure
	}
	// Both values come from the cached offset, which is what translation
	// actually uses.
	offset := memory.PhysVirtOffset()
	w := stdout(o.out)
	fmt.Fprintf(w, "hv_base:    %v\n", memory.HostVirtAddr(memory.HVBase))
	fmt.Fprintf(w, "phys_start: %v\n", memory.HostPhysAddr(memory.HVBase-offset))
	fmt.Fprintf(w, "offset:     %#x\n", offset)
	fmt.Fprintf(w, "scheme:     %v\n", memory.ActiveScheme)
	fmt.Fprintf(w, "boundary:   %#x (bit %d)\n", memory.EncryptionBoundary, bits.TrailingZeros64(memory.EncryptionBoundary))
	return subcommands.ExitSuccess
}
