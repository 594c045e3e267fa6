package strconvx

// Minimal, allocation-aware decimal helpers. The serial wire format is
// plain base-10 ASCII, so only decimal is supported.

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

// ErrSyntax is returned for any malformed number.
var ErrSyntax error = parseError{}

// Atoi parses a decimal integer with an optional leading sign.
func Atoi(s string) (int, error) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	u, err := ParseUint(s)
	if err != nil {
		return 0, err
	}
	if u > 1<<62 {
		return 0, ErrSyntax
	}
	if neg {
		return -int(u), nil
	}
	return int(u), nil
}

// ParseUint parses an unsigned decimal integer. Empty strings and any
// non-digit byte are rejected.
func ParseUint(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrSyntax
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, ErrSyntax
		}
		d := uint64(c - '0')
		if v > (1<<64-1-d)/10 {
			return 0, ErrSyntax
		}
		v = v*10 + d
	}
	return v, nil
}

// Itoa formats a signed integer in base 10.
func Itoa(i int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i))
	}
	return FormatUint(uint64(i))
}

// FormatUint formats an unsigned integer in base 10.
func FormatUint(u uint64) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}
