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

// Binary hvaddr inspects hypervisor address translation for a given system
// configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
	"hvmm.dev/hvmm/pkg/config"
	"hvmm.dev/hvmm/pkg/memory"
)

var (
	configPath = flag.String("config", "", "path to the hypervisor system config (toml or yaml).")
	debug      = flag.Bool("debug", false, "enable debug logging.")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(VirtToPhys), "translation")
	subcommands.Register(new(PhysToVirt), "translation")
	subcommands.Register(new(Encrypt), "translation")
	subcommands.Register(new(Offset), "translation")
	subcommands.Register(new(Pages), "pages")

	flag.Parse()

	log.SetOutput(os.Stderr)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	os.Exit(int(subcommands.Execute(context.Background(), conf)))
}

// loadConfig loads, validates and installs the system configuration. An
// empty path leaves no configuration installed; commands that translate
// addresses fail in that case.
func loadConfig(path string) (*config.HvSystemConfig, error) {
	if path == "" {
		return nil, nil
	}
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(memory.EncryptionBoundary); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	config.Set(conf)
	return conf, nil
}
