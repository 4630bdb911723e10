// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse a 16-bit address. A leading '$' or '0x' marks a hexadecimal
// value; anything else is decimal.
func parseAddr(s string) (uint16, error) {
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}

	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s'", s)
	}
	return uint16(v), nil
}

var hexString = "0123456789ABCDEF"

func addrToBuf(addr uint16, b []byte) {
	b[0] = hexString[(addr>>12)&0xf]
	b[1] = hexString[(addr>>8)&0xf]
	b[2] = hexString[(addr>>4)&0xf]
	b[3] = hexString[addr&0xf]
}

func byteToBuf(v byte, b []byte) {
	b[0] = hexString[(v>>4)&0xf]
	b[1] = hexString[v&0xf]
}

func toPrintableChar(v byte) byte {
	switch {
	case v >= 32 && v < 127:
		return v
	default:
		return '.'
	}
}

// Return the assembled byte at the given absolute address.
func (m *Monitor) loadByte(addr uint16) byte {
	i := int(addr) - int(m.assembly.Origin)
	if i < 0 || i >= len(m.assembly.Code) {
		return 0
	}
	return m.assembly.Code[i]
}

// Dump assembled code bytes in rows of eight, with a printable-character
// column on the right. The requested range is clamped to the assembled
// image.
func (m *Monitor) dumpCode(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	origin := m.assembly.Origin
	last := uint32(origin) + uint32(len(m.assembly.Code)) - 1

	lo := uint32(addr0)
	hi := lo + uint32(bytes) - 1
	if lo < uint32(origin) {
		lo = uint32(origin)
	}
	if hi > last {
		hi = last
	}
	if lo > hi {
		m.println("Address out of range.")
		return
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Align the dump to 8-byte boundaries.
	start := lo & 0xfffffff8
	stop := (hi + 8) & 0xfffffff8

	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(r), buf[0:4])
		for a, c1, c2 := r, 6, 32; c1 < 29; a, c1, c2 = a+1, c1+3, c2+1 {
			if a >= lo && a <= hi {
				v := m.loadByte(uint16(a))
				byteToBuf(v, buf[c1:c1+2])
				buf[c2] = toPrintableChar(v)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		m.println(string(buf))
	}
}
