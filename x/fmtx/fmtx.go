package fmtx

// Tiny printf subset shared by host and MCU builds. Supports the verbs
// the response protocol actually uses: %s, %d, %c, %v and %%. No
// reflection, no fmt import, so it stays cheap under TinyGo.

import (
	"io"

	"keypadcode-go/x/strconvx"
)

// Sprintf formats according to the supported verb subset. Unknown
// verbs are emitted verbatim so mistakes stay visible on the wire.
func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

// Fprintf formats and writes to w.
func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	var b builder
	b.format(format, a...)
	return w.Write(b.buf)
}

type builder struct {
	buf []byte
}

func (b *builder) str(s string)  { b.buf = append(b.buf, s...) }
func (b *builder) byte(c byte)   { b.buf = append(b.buf, c) }
func (b *builder) uint(u uint64) { b.str(strconvx.FormatUint(u)) }

func (b *builder) format(format string, a ...any) {
	arg := 0
	next := func() (any, bool) {
		if arg >= len(a) {
			return nil, false
		}
		v := a[arg]
		arg++
		return v, true
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.byte(c)
			continue
		}
		i++
		verb := format[i]
		if verb == '%' {
			b.byte('%')
			continue
		}
		v, ok := next()
		if !ok {
			b.str("%!")
			b.byte(verb)
			continue
		}
		switch verb {
		case 'd', 'v':
			b.any(v)
		case 's':
			switch s := v.(type) {
			case string:
				b.str(s)
			case []byte:
				b.buf = append(b.buf, s...)
			default:
				b.any(v)
			}
		case 'c':
			switch c := v.(type) {
			case byte:
				b.byte(c)
			case rune:
				b.byte(byte(c))
			case int:
				b.byte(byte(c))
			default:
				b.any(v)
			}
		default:
			b.str("%!")
			b.byte(verb)
		}
	}
}

func (b *builder) any(v any) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case []byte:
		b.buf = append(b.buf, x...)
	case bool:
		if x {
			b.byte('1')
		} else {
			b.byte('0')
		}
	case int:
		b.str(strconvx.Itoa(x))
	case int8:
		b.str(strconvx.Itoa(int(x)))
	case int16:
		b.str(strconvx.Itoa(int(x)))
	case int32:
		b.str(strconvx.Itoa(int(x)))
	case int64:
		b.str(strconvx.Itoa(int(x)))
	case uint:
		b.uint(uint64(x))
	case uint8:
		b.uint(uint64(x))
	case uint16:
		b.uint(uint64(x))
	case uint32:
		b.uint(uint64(x))
	case uint64:
		b.uint(x)
	case error:
		b.str(x.Error())
	default:
		b.str("<?>")
	}
}
