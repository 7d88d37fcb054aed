// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"encoding/binary"
	"errors"
)

// decodeVarints decodes len(vs) consecutive varints from b, which must not
// contain any other data. what names the decoded type in errors.
func decodeVarints(what string, b []byte, vs ...*int64) error {
	for _, v := range vs {
		n, i := binary.Varint(b)
		switch {
		case i == 0:
			return errors.New("encoded " + what + " truncated")
		case i < 0:
			return errors.New("encoded " + what + " overflows int64")
		}
		*v = n
		b = b[i:]
	}
	if len(b) != 0 {
		return errors.New("extra data after " + what)
	}
	return nil
}
