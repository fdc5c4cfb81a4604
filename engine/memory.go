package engine

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/docbridge/errors"
)

// Memory wraps a guest's linear memory with bounds-checked access.
type Memory struct {
	mem api.Memory
}

// Read returns a view of guest memory. The slice aliases the guest and is
// valid until the next call into it.
func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseTransport, int(offset)+int(length), int(m.Size()))
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseTransport, int(offset)+len(data), int(m.Size()))
	}
	return nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseTransport, int(offset)+4, int(m.Size()))
	}
	return v, nil
}

func (m *Memory) WriteU32(offset, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseTransport, int(offset)+4, int(m.Size()))
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *Memory) Size() uint32 {
	if m == nil || m.mem == nil {
		return 0
	}
	return m.mem.Size()
}
