package render

import (
	"bytes"
	"sync"
)

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// GetBuffer returns an empty buffer from the shared pool. Callers must
// return it with PutBuffer, typically with defer.
func GetBuffer() *bytes.Buffer {
	return bufPool.Get().(*bytes.Buffer)
}

// PutBuffer resets buf and returns it to the pool. Very large buffers are
// dropped.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > 16<<20 {
		return
	}
	buf.Reset()
	bufPool.Put(buf)
}
