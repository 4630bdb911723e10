// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestExportRegions(t *testing.T) {
	globals := map[string]int{
		"HIGH": 0x8005,
		"LOW":  0x0203,
	}
	locals := map[string]map[string]int{
		"HIGH": {"@a": 0x8006},
	}

	cfg := ExportConfig{SplitAddr: 0x8000, HighRegion: "PRG", LowRegion: "RAM"}
	got := renderDebug(globals, locals, cfg)

	exp := "RAM:0203:LOW\n" +
		"PRG:0005:HIGH\n" +
		"PRG:0006:a\n"
	if got != exp {
		t.Errorf("export doesn't match expected")
		t.Errorf("got:\n%s", got)
		t.Errorf("exp:\n%s", exp)
	}
}

func TestExportLocalNameCollision(t *testing.T) {
	globals := map[string]int{
		"loop": 0x8000,
		"MAIN": 0x8001,
	}
	locals := map[string]map[string]int{
		"MAIN": {"@loop": 0x8002},
	}

	got := renderDebug(globals, locals, DefaultExportConfig())

	// The bare name "loop" is taken by a global, so the local falls
	// back to its composite name.
	exp := "P:0000:loop\n" +
		"P:0001:MAIN\n" +
		"P:0002:@MAIN_loop\n"
	if got != exp {
		t.Errorf("export doesn't match expected")
		t.Errorf("got:\n%s", got)
		t.Errorf("exp:\n%s", exp)
	}
}

func TestExportDefaults(t *testing.T) {
	cfg := ExportConfig{}.orDefaults()
	if cfg.SplitAddr != 0x8000 || cfg.HighRegion != "P" || cfg.LowRegion != "R" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
