package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/drakeaxelrod/yxa/hid"
)

// RawLogger records raw HID frames with direction and kind.
type RawLogger interface {
	Log(fromHost bool, data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a RawLogger writing to w. A nil writer yields a no-op
// logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits one line per frame: timestamp, direction, kind name and hex dump.
// fromHost=true means host->device.
func (r *rawLogger) Log(fromHost bool, data []byte) {
	if len(data) == 0 || r.w == nil {
		return
	}

	dir := "D->H"
	if fromHost {
		dir = "H->D"
	}
	kind := hid.Kind(data[0]).String()

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %s frame: %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		kind,
		len(data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
