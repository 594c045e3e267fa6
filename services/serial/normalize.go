// services/serial/normalize.go
package serial

// Line is one normalized input line: the command token plus its
// parameter tail. The tail keeps internal spacing intact (the `name`
// command consumes it verbatim); Arg0 is its first token.
type Line struct {
	Command string
	Params  string
	Arg0    string
}

// Normalize lowercases a raw line and splits off the command token.
// Exactly one separating space is skipped before the parameter tail, so
// an absent tail yields "" rather than stray bytes.
func Normalize(raw string) Line {
	s := asciiLower(raw)

	var ln Line
	if i := indexByte(s, ' '); i >= 0 {
		ln.Command = s[:i]
		ln.Params = s[i+1:]
	} else {
		ln.Command = s
	}
	ln.Arg0 = firstToken(ln.Params)
	return ln
}

// asciiLower lowercases A-Z only. The wire protocol is plain ASCII;
// anything else passes through untouched.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if c := b[j]; 'A' <= c && c <= 'Z' {
					b[j] = c + ('a' - 'A')
				}
			}
			return string(b)
		}
	}
	return s
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func firstToken(s string) string {
	if i := indexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
