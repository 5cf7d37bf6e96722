package generator

import (
	"bytes"
	"sync"
)

// Tiered buffer sizes, picked by the number of operations and types a
// file will hold.
const (
	smallBufferSize  = 8 * 1024  // 8KB for <10 items
	mediumBufferSize = 32 * 1024 // 32KB for 10-50 items
	largeBufferSize  = 64 * 1024 // 64KB for 50+ items

	// maxPooledBufferSize keeps one huge module from pinning memory
	maxPooledBufferSize = 1 << 20
)

var smallBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, smallBufferSize))
	},
}

var mediumBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, mediumBufferSize))
	},
}

var largeBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, largeBufferSize))
	},
}

func poolFor(sizeHint int) *sync.Pool {
	switch {
	case sizeHint < 10:
		return &smallBufferPool
	case sizeHint < 50:
		return &mediumBufferPool
	default:
		return &largeBufferPool
	}
}

// getTemplateBuffer returns an empty buffer sized for sizeHint items.
func getTemplateBuffer(sizeHint int) *bytes.Buffer {
	buf := poolFor(sizeHint).Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putTemplateBuffer returns a buffer to the pool it was taken from.
func putTemplateBuffer(buf *bytes.Buffer, sizeHint int) {
	if buf == nil || buf.Cap() > maxPooledBufferSize {
		return
	}
	poolFor(sizeHint).Put(buf)
}
