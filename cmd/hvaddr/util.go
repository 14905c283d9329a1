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
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
	"hvmm.dev/hvmm/pkg/config"
)

var errNoConfig = errors.New("no system config, pass --config")

// parseAddrs parses each argument as an unsigned integer. Hex values need a
// 0x prefix.
func parseAddrs(args []string) ([]uint64, error) {
	addrs := make([]uint64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", arg, err)
		}
		addrs = append(addrs, v)
	}
	return addrs, nil
}

// requireConfig extracts the configuration passed to Execute.
func requireConfig(args []any) (*config.HvSystemConfig, error) {
	if len(args) == 0 {
		return nil, errNoConfig
	}
	conf, _ := args[0].(*config.HvSystemConfig)
	if conf == nil {
		return nil, errNoConfig
	}
	return conf, nil
}

// runEach parses the positional arguments of f and writes one output line
// per value using fn.
func runEach(w io.Writer, f *flag.FlagSet, fn func(io.Writer, uint64)) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	addrs, err := parseAddrs(f.Args())
	if err != nil {
		log.Errorf("%v", err)
		return subcommands.ExitUsageError
	}
	for _, a := range addrs {
		fn(w, a)
	}
	return subcommands.ExitSuccess
}
