package functions

import (
	"io"
	"strconv"
	"time"
)

const (
	defaultRandomCount = 16

	printableFirst = 0x20
	printableCount = 0x7e - 0x20 + 1
)

func randomCount(name string, args []uint64) (int, error) {
	if err := checkArgCount(name, args, 1); err != nil {
		return 0, err
	}
	if len(args) == 0 {
		return defaultRandomCount, nil
	}
	if args[0] > MaxOutputLength {
		return 0, invalidArgument(name, "count %d exceeds %d", args[0], MaxOutputLength)
	}
	return int(args[0]), nil
}

type randomBytes struct {
	source io.Reader
}

func (randomBytes) Name() string { return "randomBytes" }

func (randomBytes) Usage() []string {
	return []string{"${randomBytes([count])}"}
}

func (randomBytes) Examples() []string {
	return []string{
		"/binary ${randomBytes()}",
		"/binary ${randomBytes(1024)}",
	}
}

func (randomBytes) Info() string {
	return "generate count random bytes (default 16)"
}

func (f randomBytes) Run(args []uint64) ([]byte, error) {
	count, err := randomCount(f.Name(), args)
	if err != nil {
		return nil, err
	}
	out := make([]byte, count)
	if _, err := io.ReadFull(f.source, out); err != nil {
		return nil, invalidArgument(f.Name(), "read random source: %v", err)
	}
	return out, nil
}

type randomChars struct {
	source io.Reader
}

func (randomChars) Name() string { return "randomChars" }

func (randomChars) Usage() []string {
	return []string{"${randomChars([count])}"}
}

func (randomChars) Examples() []string {
	return []string{
		"/send ${randomChars()}",
		"/send ${randomChars(80)}",
	}
}

func (randomChars) Info() string {
	return "generate count random printable ASCII characters (default 16)"
}

// Run draws bytes and rejects values that would bias the modulo
func (f randomChars) Run(args []uint64) ([]byte, error) {
	count, err := randomCount(f.Name(), args)
	if err != nil {
		return nil, err
	}

	const limit = 256 - 256%printableCount
	out := make([]byte, 0, count)
	buf := make([]byte, count)
	for len(out) < count {
		n := count - len(out)
		if _, err := io.ReadFull(f.source, buf[:n]); err != nil {
			return nil, invalidArgument(f.Name(), "read random source: %v", err)
		}
		for _, b := range buf[:n] {
			if int(b) < limit {
				out = append(out, byte(printableFirst+int(b)%printableCount))
			}
		}
	}
	return out, nil
}

type clock struct {
	now func() time.Time
}

func (clock) Name() string { return "time" }

func (clock) Usage() []string {
	return []string{"${time()}"}
}

func (clock) Examples() []string {
	return []string{"/send {\"sent\": ${time()}}"}
}

func (clock) Info() string {
	return "current Unix time in seconds"
}

func (f clock) Run(args []uint64) ([]byte, error) {
	if err := checkArgCount(f.Name(), args, 0); err != nil {
		return nil, err
	}
	return []byte(strconv.FormatInt(f.now().Unix(), 10)), nil
}
