package eval

import (
	"src.abasic.dev/pkg/eval/errs"
)

// Well-known addresses.
const (
	addrCursorH   = 36
	addrCursorV   = 37
	addrErrFlag   = 216
	addrErrLineLo = 218
	addrErrLineHi = 219
	addrErrCode   = 222
	addrSpeed     = 241
	addrKeyboard  = 0xC000
	addrKeyStrobe = 0xC010
)

// Memory is a sparse 64K byte address space with hooks for the addresses that
// mirror interpreter state.
type Memory struct {
	Low, High int

	cells map[int]byte
	hooks map[int]memHook
}

type memHook struct {
	read  func() byte
	write func(byte)
}

func newMemory(low, high int) *Memory {
	return &Memory{low, high, make(map[int]byte), make(map[int]memHook)}
}

// reserved reports whether addr bypasses the [Low, High] check: the zero page
// and the I/O page.
func reserved(addr int) bool {
	return addr < 0x100 || (0xC000 <= addr && addr < 0xC100)
}

// resolve maps a BASIC address to [0, 0xFFFF]. Negative addresses wrap.
func (m *Memory) resolve(addr int) (int, error) {
	if addr < -0xFFFF || addr > 0xFFFF {
		return 0, errs.Newf(errs.IllegalQuantity, "address %d", addr)
	}
	if addr < 0 {
		addr += 0x10000
	}
	if !reserved(addr) && (addr < m.Low || addr > m.High) {
		return 0, errs.Newf(errs.IllegalQuantity, "address %d outside [%d, %d]", addr, m.Low, m.High)
	}
	return addr, nil
}

// Peek reads a byte.
func (m *Memory) Peek(addr int) (int, error) {
	a, err := m.resolve(addr)
	if err != nil {
		return 0, err
	}
	if h, ok := m.hooks[a]; ok && h.read != nil {
		return int(h.read()), nil
	}
	return int(m.cells[a]), nil
}

// Poke writes a byte; the value must be in [0, 255].
func (m *Memory) Poke(addr, v int) error {
	a, err := m.resolve(addr)
	if err != nil {
		return err
	}
	if v < 0 || v > 255 {
		return errs.Newf(errs.IllegalQuantity, "byte value %d", v)
	}
	if h, ok := m.hooks[a]; ok && h.write != nil {
		h.write(byte(v))
		return nil
	}
	m.cells[a] = byte(v)
	return nil
}

// set stores a byte without any checks or hooks.
func (m *Memory) set(addr int, v byte) { m.cells[addr] = v }

func (m *Memory) hook(addr int, read func() byte, write func(byte)) {
	m.hooks[addr] = memHook{read, write}
}

// Load copies data into memory starting at addr.
func (m *Memory) Load(addr int, data []byte) error {
	for i, b := range data {
		if err := m.Poke(addr+i, int(b)); err != nil {
			return err
		}
	}
	return nil
}

// Dump returns n bytes starting at addr.
func (m *Memory) Dump(addr, n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.Newf(errs.IllegalQuantity, "length %d", n)
	}
	data := make([]byte, n)
	for i := range data {
		v, err := m.Peek(addr + i)
		if err != nil {
			return nil, err
		}
		data[i] = byte(v)
	}
	return data, nil
}

// installHooks maps interpreter state into memory: the cursor position, the
// ONERR flag, the keyboard latch and strobe, and the output speed.
func (ev *Evaler) installHooks() {
	m, p := ev.mem, ev.out
	m.hook(addrCursorH,
		func() byte { return byte(p.col) },
		func(v byte) { p.htab(int(v)) })
	m.hook(addrCursorV,
		func() byte { return byte(p.row) },
		func(v byte) { p.vtab(int(v)) })
	m.hook(addrErrFlag,
		func() byte {
			if ev.trap.armed {
				return 0x80
			}
			return 0
		},
		func(v byte) { ev.trap.armed = v&0x80 != 0 })
	m.hook(addrSpeed,
		func() byte { return byte(p.speed) },
		func(v byte) { p.speed = int(v) })
	m.hook(addrKeyboard,
		func() byte {
			if ev.key&0x80 == 0 && ev.Keys != nil {
				if c, ok := ev.Keys.PollKey(); ok {
					ev.key = c | 0x80
				}
			}
			return ev.key
		}, nil)
	strobe := func() byte {
		ev.key &^= 0x80
		return ev.key
	}
	m.hook(addrKeyStrobe, strobe, func(byte) { strobe() })
}
