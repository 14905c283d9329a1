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

	"github.com/google/subcommands"
	"hvmm.dev/hvmm/pkg/memory"
)

// Pages implements subcommands.Command for the "pages" command.
type Pages struct {
	out io.Writer
}

// Name implements subcommands.Command.Name.
func (*Pages) Name() string {
	return "pages"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Pages) Synopsis() string {
	return "show page alignment of addresses or sizes"
}

// Usage implements subcommands.Command.Usage.
func (*Pages) Usage() string {
	return `pages <value>... - show page alignment of addresses or sizes
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Pages) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (p *Pages) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	return runEach(stdout(p.out), f, func(w io.Writer, v uint64) {
		fmt.Fprintf(w, "%#x: down=%#x up=%#x offset=%#x pages=%d aligned=%t\n",
			v, memory.AlignDown(v), memory.AlignUp(v), memory.PageOffset(v), memory.PageCount(v), memory.IsAligned(v))
	})
}
