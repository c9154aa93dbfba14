package functions

import (
	"unicode/utf8"
)

// rangeBounds applies the shared argument convention of the range
// functions: no arguments keep both defaults, one argument sets the end.
func rangeBounds(args []uint64, defStart, defEnd uint64) (start, end uint64) {
	switch len(args) {
	case 0:
		return defStart, defEnd
	case 1:
		return defStart, args[0]
	default:
		return args[0], args[1]
	}
}

func checkRangeLength(name string, start, end uint64) error {
	if end >= start && end-start >= MaxOutputLength {
		return invalidArgument(name, "range %d..%d exceeds %d elements", start, end, MaxOutputLength)
	}
	return nil
}

type byteRange struct{}

func (byteRange) Name() string { return "byteRange" }

func (byteRange) Usage() []string {
	return []string{"${byteRange([start,] end)}"}
}

func (byteRange) Examples() []string {
	return []string{
		"/binary ${byteRange()}",
		"/binary ${byteRange(16)}",
		"/binary ${byteRange(0x41, 0x5a)}",
	}
}

func (byteRange) Info() string {
	return "generate bytes start..end inclusive (default 0..255)"
}

func (f byteRange) Run(args []uint64) ([]byte, error) {
	if err := checkArgCount(f.Name(), args, 2); err != nil {
		return nil, err
	}
	start, end := rangeBounds(args, 0, 255)
	if start > 255 || end > 255 {
		return nil, invalidArgument(f.Name(), "byte values must be in 0..255")
	}

	out := make([]byte, 0, 256)
	for i := start; i <= end; i++ {
		out = append(out, byte(i))
	}
	return out, nil
}

type charRange struct{}

func (charRange) Name() string { return "charRange" }

func (charRange) Usage() []string {
	return []string{"${charRange([start,] end)}"}
}

func (charRange) Examples() []string {
	return []string{
		"/send ${charRange()}",
		"/send ${charRange(0x7e)}",
		"/send ${charRange(0x3b1, 0x3c9)}",
	}
}

func (charRange) Info() string {
	return "generate characters start..end inclusive as UTF-8 (default 32..126)"
}

func (f charRange) Run(args []uint64) ([]byte, error) {
	if err := checkArgCount(f.Name(), args, 2); err != nil {
		return nil, err
	}
	start, end := rangeBounds(args, 32, 126)
	if start > utf8.MaxRune || end > utf8.MaxRune {
		return nil, invalidArgument(f.Name(), "code points must not exceed 0x%x", utf8.MaxRune)
	}
	if err := checkRangeLength(f.Name(), start, end); err != nil {
		return nil, err
	}
	if start <= 0xdfff && end >= 0xd800 && start <= end {
		return nil, invalidArgument(f.Name(), "range %d..%d contains surrogate code points", start, end)
	}

	var out []byte
	for i := start; i <= end; i++ {
		out = utf8.AppendRune(out, rune(i))
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
