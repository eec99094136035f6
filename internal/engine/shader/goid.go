package shader

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutineSpace = []byte("goroutine ")

// curGoroutineID extracts the current goroutine's id from the runtime
// stack header ("goroutine N [running]:"). The id has no scheduling
// meaning; it only serves the owner-goroutine identity checks.
func curGoroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, goroutineSpace)
	i := bytes.IndexByte(buf, ' ')
	if i < 0 {
		panic("shader: unexpected goroutine stack header")
	}
	id, err := strconv.ParseUint(string(buf[:i]), 10, 64)
	if err != nil {
		panic("shader: cannot parse goroutine id: " + err.Error())
	}
	return id
}
