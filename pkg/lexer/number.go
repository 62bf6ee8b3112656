package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func isRadixPrefix(r rune) bool {
	return r == 'b' || r == 'o' || r == 'd' || r == 'x'
}

func radixBase(r rune) int {
	switch r {
	case 'b':
		return 2
	case 'o':
		return 8
	case 'x':
		return 16
	}
	return 10
}

func isValidDigit(radix, r rune) bool {
	switch radix {
	case 'b':
		return r == '0' || r == '1'
	case 'o':
		return r >= '0' && r <= '7'
	case 'x':
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
	return r >= '0' && r <= '9'
}

// ParseNumber decodes a numeric literal lexeme as produced by Tokenise:
// '#', an optional '-', a radix letter, an optional '-' (only when none
// came before the radix) and the digits. An explicit radix letter may be
// omitted, in which case the literal is decimal.
func ParseNumber(lexeme string) (int32, error) {
	s, ok := strings.CutPrefix(lexeme, "#")
	if !ok {
		return 0, fmt.Errorf("number literal %q does not start with #", lexeme)
	}

	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	}
	radix := 'd'
	if s != "" && isRadixPrefix(rune(s[0])) {
		radix, s = rune(s[0]), s[1:]
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok && !neg {
		neg, s = true, rest
	}
	if s == "" {
		return 0, fmt.Errorf("number literal %q has no digits", lexeme)
	}

	u, err := strconv.ParseUint(s, radixBase(radix), 64)
	if err != nil {
		return 0, fmt.Errorf("number literal %q: %v", lexeme, err)
	}
	if neg {
		if u > -math.MinInt32 {
			return 0, fmt.Errorf("number literal %q out of range", lexeme)
		}
		return int32(-int64(u)), nil
	}
	if u > math.MaxInt32 {
		return 0, fmt.Errorf("number literal %q out of range", lexeme)
	}
	return int32(u), nil
}
