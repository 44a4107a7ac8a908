package apu

import (
	"github.com/bdwalton/nescycle/counter"
	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/memory"
)

// Each sample byte fetched holds the CPU off the bus this long.
const DMC_FETCH_STALL = 4

// dmc plays 1-bit delta encoded samples straight out of CPU memory.
//
// https://www.nesdev.org/wiki/APU_DMC
type dmc struct {
	mem    *memory.Memory
	cpu    CPU
	log    logger.Logger
	irqBit uint8
	timer  *counter.Counter // clocked every CPU cycle

	irqEnable, loop, irq bool
	rate                 uint8
	level                uint8 // 7 bit output level

	sampleAddr, sampleLength uint16
	current, remaining       uint16

	// sample buffer, filled by the memory reader
	buffer     uint8
	bufferFull bool

	// output unit
	shift   uint8
	bits    uint8
	silence bool
}

func newDMC(mem *memory.Memory, cpu CPU, irqBit uint8, log logger.Logger) *dmc {
	d := &dmc{mem: mem, cpu: cpu, irqBit: irqBit, log: log, bits: 8, silence: true}
	d.timer = counter.New(dmcRates[0]-1, d.advance)
	return d
}

func (d *dmc) write(reg uint16, val uint8) {
	switch reg & 0x03 {
	case 0:
		d.irqEnable = val&0x80 != 0
		d.loop = val&0x40 != 0
		d.rate = val & 0x0F
		d.timer.SetReload(dmcRates[d.rate] - 1)
		if !d.irqEnable {
			d.clearIRQ()
		}
	case 1:
		d.level = val & 0x7F
	case 2:
		d.sampleAddr = 0xC000 | uint16(val)<<6
	case 3:
		d.sampleLength = uint16(val)<<4 | 1
	}
}

// setEnabled handles the DMC bit of a status write. Enabling restarts
// the sample only when the previous one has finished.
func (d *dmc) setEnabled(on bool) {
	d.clearIRQ()
	switch {
	case !on:
		d.remaining = 0
	case d.remaining == 0:
		d.restart()
	}
}

func (d *dmc) restart() {
	d.current = d.sampleAddr
	d.remaining = d.sampleLength
}

func (d *dmc) clearIRQ() {
	if d.irq {
		d.irq = false
		d.cpu.ReleaseIRQ(d.irqBit)
	}
}

func (d *dmc) step() {
	d.timer.Tick(1)
	d.fill()
}

// advance is one output clock: move the level by one bit of the shift
// register and start a new byte every 8 bits.
func (d *dmc) advance() {
	if !d.silence {
		if d.shift&0x01 != 0 {
			if d.level <= 125 {
				d.level += 2
			}
		} else if d.level >= 2 {
			d.level -= 2
		}
		d.shift >>= 1
	}

	d.bits--
	if d.bits == 0 {
		d.bits = 8
		d.silence = !d.bufferFull
		if d.bufferFull {
			d.shift = d.buffer
			d.bufferFull = false
		}
	}
}

// fill is the memory reader. It refills an empty sample buffer through
// the CPU bus, so mapper registers and mirrors apply.
func (d *dmc) fill() {
	if d.bufferFull || d.remaining == 0 {
		return
	}

	d.cpu.Stall(DMC_FETCH_STALL)
	d.buffer = d.mem.Read(d.current)
	d.bufferFull = true
	d.current++
	if d.current == 0 {
		d.current = 0x8000
	}
	d.remaining--

	if d.remaining > 0 {
		return
	}
	switch {
	case d.loop:
		d.restart()
	case d.irqEnable:
		d.log.Logf("apu", "DMC IRQ after sample at 0x%04x", d.sampleAddr)
		d.irq = true
		d.cpu.PullIRQ(d.irqBit)
	}
}

func (d *dmc) output() uint8 {
	return d.level
}

// DMCState is the saved form of the DMC.
type DMCState struct {
	IRQEnable, Loop, IRQ     bool
	Rate, Level              uint8
	SampleAddr, SampleLength uint16
	Current, Remaining       uint16
	Buffer                   uint8
	BufferFull               bool
	Shift, Bits              uint8
	Silence                  bool
	Timer                    counter.State
}

func (d *dmc) save() DMCState {
	return DMCState{
		IRQEnable: d.irqEnable, Loop: d.loop, IRQ: d.irq,
		Rate: d.rate, Level: d.level,
		SampleAddr: d.sampleAddr, SampleLength: d.sampleLength,
		Current: d.current, Remaining: d.remaining,
		Buffer: d.buffer, BufferFull: d.bufferFull,
		Shift: d.shift, Bits: d.bits, Silence: d.silence,
		Timer: d.timer.State(),
	}
}

func (d *dmc) load(s DMCState) {
	d.irqEnable, d.loop, d.irq = s.IRQEnable, s.Loop, s.IRQ
	d.rate, d.level = s.Rate&0x0F, s.Level&0x7F
	d.sampleAddr, d.sampleLength = s.SampleAddr, s.SampleLength
	d.current, d.remaining = s.Current, s.Remaining
	d.buffer, d.bufferFull = s.Buffer, s.BufferFull
	d.shift, d.bits, d.silence = s.Shift, s.Bits, s.Silence
	d.timer.SetState(s.Timer)
}
