// Package bus implements the CPU memory maps the processor executes against.
package bus

import (
	"errors"
	"fmt"

	"github.com/retroenv/nes6502/internal/arch"
	"github.com/retroenv/retrogolib/log"
)

// NES CPU memory map:
//
//	$0000-$07FF: 2KB internal RAM
//	$0800-$1FFF: mirrors of $0000-$07FF
//	$2000-$2007: PPU registers
//	$2008-$3FFF: mirrors of $2000-$2007, every 8 bytes
//	$4000-$401F: APU and I/O registers
//	$4020-$FFFF: cartridge space
const (
	RAMSize   = 0x0800
	RAMEnd    = 0x1fff
	PPUStart  = 0x2000
	PPUEnd    = 0x3fff
	PPUSize   = 8
	IOStart   = 0x4000
	IOEnd     = 0x401f
	CartStart = 0x4020
)

// ErrOverlap is returned when a device window overlaps RAM or another window.
var ErrOverlap = errors.New("address range overlaps")

var _ arch.Bus = &NES{}

// window is an address range routed to a device.
type window struct {
	start  uint16
	end    uint16
	mirror uint16 // size of the register block repeated over the range, 0 for none
	device arch.Device
}

// contains reports whether the window maps the address.
func (w window) contains(address uint16) bool {
	return address >= w.start && address <= w.end
}

// resolve maps an address inside the window to the register address.
func (w window) resolve(address uint16) uint16 {
	if w.mirror == 0 {
		return address
	}
	return w.start + (address-w.start)%w.mirror
}

// NES is the memory bus of the NES CPU. Unattached register ranges return
// the last value seen on the data bus. Until a device is attached in
// cartridge space, that space acts as plain memory so that programs can be
// loaded without a mapper. Once a cartridge device is attached, the
// remaining unattached cartridge space, like the $4020-$5FFF expansion
// area, is open bus as well.
type NES struct {
	logger *log.Logger

	ram          [RAMSize]byte
	storage      [0x10000]byte
	windows      []window
	openBus      byte
	cartAttached bool
}

// New returns a new NES bus without attached devices.
func New(logger *log.Logger) *NES {
	return &NES{
		logger: logger,
	}
}

// Attach routes the address range to the device. A non zero mirror size
// repeats the first mirror bytes of the range over the whole range.
func (b *NES) Attach(start, end, mirror uint16, device arch.Device) error {
	if end < start {
		return fmt.Errorf("invalid address range $%04X-$%04X", start, end)
	}
	if start <= RAMEnd {
		return fmt.Errorf("range $%04X-$%04X and RAM: %w", start, end, ErrOverlap)
	}
	for _, w := range b.windows {
		if start <= w.end && end >= w.start {
			return fmt.Errorf("range $%04X-$%04X and $%04X-$%04X: %w", start, end, w.start, w.end, ErrOverlap)
		}
	}

	b.windows = append(b.windows, window{
		start:  start,
		end:    end,
		mirror: mirror,
		device: device,
	})
	if end >= CartStart {
		b.cartAttached = true
	}
	b.logger.Debug("Attached device",
		log.Hex("start", start),
		log.Hex("end", end))
	return nil
}

// AttachPPU routes the mirrored PPU register range to the device.
func (b *NES) AttachPPU(device arch.Device) error {
	return b.Attach(PPUStart, PPUEnd, PPUSize, device)
}

// AttachIO routes the APU and I/O register range to the device.
func (b *NES) AttachIO(device arch.Device) error {
	return b.Attach(IOStart, IOEnd, 0, device)
}

// Read returns the byte at the address.
func (b *NES) Read(address uint16) byte {
	var value byte
	switch {
	case address <= RAMEnd:
		value = b.ram[address%RAMSize]

	default:
		if w, ok := b.window(address); ok {
			value = w.device.ReadRegister(w.resolve(address))
		} else if b.isStorage(address) {
			value = b.storage[address]
		} else {
			value = b.openBus
		}
	}

	b.openBus = value
	return value
}

// Write stores the byte at the address. Writes to unattached register
// ranges only update the open bus value.
func (b *NES) Write(address uint16, value byte) {
	b.openBus = value

	switch {
	case address <= RAMEnd:
		b.ram[address%RAMSize] = value

	default:
		if w, ok := b.window(address); ok {
			w.device.WriteRegister(w.resolve(address), value)
		} else if b.isStorage(address) {
			b.storage[address] = value
		}
	}
}

// Peek returns the byte at the address without side effects. Devices that
// do not support peeking return the open bus value.
func (b *NES) Peek(address uint16) byte {
	if address <= RAMEnd {
		return b.ram[address%RAMSize]
	}

	w, ok := b.window(address)
	switch {
	case ok:
		if peeker, ok := w.device.(arch.DevicePeeker); ok {
			return peeker.PeekRegister(w.resolve(address))
		}
		return b.openBus
	case b.isStorage(address):
		return b.storage[address]
	default:
		return b.openBus
	}
}

// Load writes the data starting at the address through the bus.
func (b *NES) Load(address uint16, data []byte) {
	for i, value := range data {
		b.Write(address+uint16(i), value)
	}
}

// isStorage reports whether the unattached address is backed by plain memory.
func (b *NES) isStorage(address uint16) bool {
	return address >= CartStart && !b.cartAttached
}

func (b *NES) window(address uint16) (window, bool) {
	for _, w := range b.windows {
		if w.contains(address) {
			return w, true
		}
	}
	return window{}, false
}
