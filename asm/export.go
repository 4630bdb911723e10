// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"sort"
	"strings"
)

// An ExportConfig controls how the debug-symbol exporter splits the
// address space into named regions. Addresses at or above SplitAddr are
// assigned to HighRegion with SplitAddr subtracted; lower addresses are
// assigned to LowRegion unrebased. The defaults suit a 32K PRG mapped
// at $8000 with work RAM below.
//
// A zero-valued field selects its default, so a split address of 0
// (placing every symbol in the rebased high region) cannot be requested
// explicitly; it is equivalent to the default split at $8000.
type ExportConfig struct {
	SplitAddr  int
	HighRegion string
	LowRegion  string
}

// DefaultExportConfig returns the default region split.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		SplitAddr:  0x8000,
		HighRegion: "P",
		LowRegion:  "R",
	}
}

func (c ExportConfig) orDefaults() ExportConfig {
	def := DefaultExportConfig()
	if c.SplitAddr == 0 {
		c.SplitAddr = def.SplitAddr
	}
	if c.HighRegion == "" {
		c.HighRegion = def.HighRegion
	}
	if c.LowRegion == "" {
		c.LowRegion = def.LowRegion
	}
	return c
}

// Render the final label tables as debug-symbol text, one line per
// name: "<region>:<4-digit hex address>:<name>".
//
// Local labels are merged into the flat global namespace. A local keeps
// its bare name unless that name is already taken, in which case it is
// exported under the composite key "@<scopeOwner>_<localName>".
func renderDebug(globals map[string]int, locals map[string]map[string]int, cfg ExportConfig) string {
	merged := make(map[string]int, len(globals))
	for name, addr := range globals {
		merged[name] = addr
	}

	owners := make([]string, 0, len(locals))
	for owner := range locals {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		names := make([]string, 0, len(locals[owner]))
		for name := range locals[owner] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			bare := strings.TrimPrefix(name, "@")
			if _, taken := merged[bare]; !taken {
				merged[bare] = locals[owner][name]
			} else {
				merged["@"+owner+"_"+bare] = locals[owner][name]
			}
		}
	}

	type symbol struct {
		name string
		addr int
	}
	symbols := make([]symbol, 0, len(merged))
	for name, addr := range merged {
		symbols = append(symbols, symbol{name, addr})
	}
	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].addr != symbols[j].addr {
			return symbols[i].addr < symbols[j].addr
		}
		return symbols[i].name < symbols[j].name
	})

	var sb strings.Builder
	for _, s := range symbols {
		region, addr := cfg.LowRegion, s.addr
		if s.addr >= cfg.SplitAddr {
			region, addr = cfg.HighRegion, s.addr-cfg.SplitAddr
		}
		fmt.Fprintf(&sb, "%s:%04X:%s\n", region, addr, s.name)
	}
	return sb.String()
}
