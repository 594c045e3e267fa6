// platform/memflash.go
package platform

import "sync"

// MemFlash is an in-memory flash stand-in for host builds and tests.
type MemFlash struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemFlash() *MemFlash { return &MemFlash{} }

func (f *MemFlash) ReadAll() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]byte, len(f.blob))
	copy(out, f.blob)
	return out, nil
}

func (f *MemFlash) WriteAll(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blob = append(f.blob[:0], p...)
	return nil
}
