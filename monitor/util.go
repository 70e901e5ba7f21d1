// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import (
	"fmt"
	"strings"
)

func codeString(b []uint8) string {
	switch len(b) {
	case 1:
		return fmt.Sprintf("%02X", b[0])
	case 2:
		return fmt.Sprintf("%02X %02X", b[0], b[1])
	default:
		return ""
	}
}

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, ErrBoolInvalid(s)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var hexString = "0123456789ABCDEF"

// addrToBuf writes a three digit decimal address.
func addrToBuf(addr int, b []byte) {
	b[0] = '0' + byte(addr/100%10)
	b[1] = '0' + byte(addr/10%10)
	b[2] = '0' + byte(addr%10)
}

func byteToBuf(v uint8, b []byte) {
	b[0] = hexString[(v>>4)&0xf]
	b[1] = hexString[v&0xf]
}

func toPrintableChar(v uint8) byte {
	switch {
	case v >= 32 && v < 127:
		return v
	default:
		return '.'
	}
}

