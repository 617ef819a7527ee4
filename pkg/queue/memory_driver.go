package queue

import "context"

const memoryBuffer = 1000

// MemoryDriver is the channel-backed fallback driver used when Redis is not
// configured. Jobs survive only as long as the process; image-cleanup work
// lost on restart is re-queued by the next product write that orphans a file.
type MemoryDriver struct {
	ch chan []byte
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, memoryBuffer)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.ch <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
