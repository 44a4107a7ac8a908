package mos6502

import (
	"fmt"
)

// 6502 Addressing Modes, as far as the disassembler cares about them.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X // Indexed Indirect
	INDIRECT_Y // Indirect Indexed
)

var modenames map[uint8]string = map[uint8]string{IMPLICIT: "IMPLICIT", ACCUMULATOR: "ACCUMULATOR", IMMEDIATE: "IMMEDIATE", ZERO_PAGE: "ZERO_PAGE", ZERO_PAGE_X: "ZERO_PAGE_X", ZERO_PAGE_Y: "ZERO_PAGE_Y", RELATIVE: "RELATIVE", ABSOLUTE: "ABSOLUTE", ABSOLUTE_X: "ABSOLUTE_X", ABSOLUTE_Y: "ABSOLUTE_Y", INDIRECT: "INDIRECT", INDIRECT_X: "INDIRECT_X", INDIRECT_Y: "INDIRECT_Y"}

type opcode struct {
	name  string
	mode  uint8      // The memory addressing mode, for display
	class uint8      // The timing class driving the bus cycles
	exec  func(*CPU) // What happens to the value the class moves
}

func (o opcode) String() string {
	return fmt.Sprintf("{%s, %s}", o.name, modenames[o.mode])
}

// bytes returns the length of the instruction including the opcode.
func (o opcode) bytes() int {
	switch o.mode {
	case IMPLICIT, ACCUMULATOR:
		return 1
	case ABSOLUTE, ABSOLUTE_X, ABSOLUTE_Y, INDIRECT:
		return 3
	}
	return 2
}

// The full NMOS table, undocumented opcodes included.
// https://www.nesdev.org/wiki/CPU_unofficial_opcodes
var opcodes [256]opcode

func init() {
	opcodes = [256]opcode{
		0x00: {"BRK", IMPLICIT, CLASS_INTERRUPT, (*CPU).opFlow},
		0x01: {"ORA", INDIRECT_X, CLASS_IZX_READ, (*CPU).opORA},
		0x02: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x03: {"SLO", INDIRECT_X, CLASS_IZX_RMW, (*CPU).opSLO},
		0x04: {"NOP", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opNOP},
		0x05: {"ORA", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opORA},
		0x06: {"ASL", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opASL},
		0x07: {"SLO", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opSLO},
		0x08: {"PHP", IMPLICIT, CLASS_PUSH, (*CPU).opPHP},
		0x09: {"ORA", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opORA},
		0x0A: {"ASL", ACCUMULATOR, CLASS_IMPLIED, (*CPU).opASLAcc},
		0x0B: {"ANC", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opANC},
		0x0C: {"NOP", ABSOLUTE, CLASS_ABS_READ, (*CPU).opNOP},
		0x0D: {"ORA", ABSOLUTE, CLASS_ABS_READ, (*CPU).opORA},
		0x0E: {"ASL", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opASL},
		0x0F: {"SLO", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opSLO},
		0x10: {"BPL", RELATIVE, CLASS_RELATIVE, (*CPU).opBPL},
		0x11: {"ORA", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opORA},
		0x12: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x13: {"SLO", INDIRECT_Y, CLASS_IZY_RMW, (*CPU).opSLO},
		0x14: {"NOP", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opNOP},
		0x15: {"ORA", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opORA},
		0x16: {"ASL", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opASL},
		0x17: {"SLO", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opSLO},
		0x18: {"CLC", IMPLICIT, CLASS_IMPLIED, (*CPU).opCLC},
		0x19: {"ORA", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opORA},
		0x1A: {"NOP", IMPLICIT, CLASS_IMPLIED, (*CPU).opNOP},
		0x1B: {"SLO", ABSOLUTE_Y, CLASS_ABY_RMW, (*CPU).opSLO},
		0x1C: {"NOP", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opNOP},
		0x1D: {"ORA", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opORA},
		0x1E: {"ASL", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opASL},
		0x1F: {"SLO", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opSLO},
		0x20: {"JSR", ABSOLUTE, CLASS_JSR, (*CPU).opFlow},
		0x21: {"AND", INDIRECT_X, CLASS_IZX_READ, (*CPU).opAND},
		0x22: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x23: {"RLA", INDIRECT_X, CLASS_IZX_RMW, (*CPU).opRLA},
		0x24: {"BIT", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opBIT},
		0x25: {"AND", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opAND},
		0x26: {"ROL", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opROL},
		0x27: {"RLA", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opRLA},
		0x28: {"PLP", IMPLICIT, CLASS_PULL, (*CPU).opPLP},
		0x29: {"AND", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opAND},
		0x2A: {"ROL", ACCUMULATOR, CLASS_IMPLIED, (*CPU).opROLAcc},
		0x2B: {"ANC", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opANC},
		0x2C: {"BIT", ABSOLUTE, CLASS_ABS_READ, (*CPU).opBIT},
		0x2D: {"AND", ABSOLUTE, CLASS_ABS_READ, (*CPU).opAND},
		0x2E: {"ROL", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opROL},
		0x2F: {"RLA", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opRLA},
		0x30: {"BMI", RELATIVE, CLASS_RELATIVE, (*CPU).opBMI},
		0x31: {"AND", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opAND},
		0x32: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x33: {"RLA", INDIRECT_Y, CLASS_IZY_RMW, (*CPU).opRLA},
		0x34: {"NOP", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opNOP},
		0x35: {"AND", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opAND},
		0x36: {"ROL", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opROL},
		0x37: {"RLA", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opRLA},
		0x38: {"SEC", IMPLICIT, CLASS_IMPLIED, (*CPU).opSEC},
		0x39: {"AND", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opAND},
		0x3A: {"NOP", IMPLICIT, CLASS_IMPLIED, (*CPU).opNOP},
		0x3B: {"RLA", ABSOLUTE_Y, CLASS_ABY_RMW, (*CPU).opRLA},
		0x3C: {"NOP", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opNOP},
		0x3D: {"AND", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opAND},
		0x3E: {"ROL", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opROL},
		0x3F: {"RLA", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opRLA},
		0x40: {"RTI", IMPLICIT, CLASS_RTI, (*CPU).opFlow},
		0x41: {"EOR", INDIRECT_X, CLASS_IZX_READ, (*CPU).opEOR},
		0x42: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x43: {"SRE", INDIRECT_X, CLASS_IZX_RMW, (*CPU).opSRE},
		0x44: {"NOP", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opNOP},
		0x45: {"EOR", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opEOR},
		0x46: {"LSR", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opLSR},
		0x47: {"SRE", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opSRE},
		0x48: {"PHA", IMPLICIT, CLASS_PUSH, (*CPU).opPHA},
		0x49: {"EOR", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opEOR},
		0x4A: {"LSR", ACCUMULATOR, CLASS_IMPLIED, (*CPU).opLSRAcc},
		0x4B: {"ALR", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opALR},
		0x4C: {"JMP", ABSOLUTE, CLASS_ABS_JMP, (*CPU).opFlow},
		0x4D: {"EOR", ABSOLUTE, CLASS_ABS_READ, (*CPU).opEOR},
		0x4E: {"LSR", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opLSR},
		0x4F: {"SRE", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opSRE},
		0x50: {"BVC", RELATIVE, CLASS_RELATIVE, (*CPU).opBVC},
		0x51: {"EOR", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opEOR},
		0x52: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x53: {"SRE", INDIRECT_Y, CLASS_IZY_RMW, (*CPU).opSRE},
		0x54: {"NOP", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opNOP},
		0x55: {"EOR", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opEOR},
		0x56: {"LSR", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opLSR},
		0x57: {"SRE", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opSRE},
		0x58: {"CLI", IMPLICIT, CLASS_IMPLIED, (*CPU).opCLI},
		0x59: {"EOR", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opEOR},
		0x5A: {"NOP", IMPLICIT, CLASS_IMPLIED, (*CPU).opNOP},
		0x5B: {"SRE", ABSOLUTE_Y, CLASS_ABY_RMW, (*CPU).opSRE},
		0x5C: {"NOP", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opNOP},
		0x5D: {"EOR", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opEOR},
		0x5E: {"LSR", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opLSR},
		0x5F: {"SRE", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opSRE},
		0x60: {"RTS", IMPLICIT, CLASS_RTS, (*CPU).opFlow},
		0x61: {"ADC", INDIRECT_X, CLASS_IZX_READ, (*CPU).opADC},
		0x62: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x63: {"RRA", INDIRECT_X, CLASS_IZX_RMW, (*CPU).opRRA},
		0x64: {"NOP", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opNOP},
		0x65: {"ADC", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opADC},
		0x66: {"ROR", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opROR},
		0x67: {"RRA", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opRRA},
		0x68: {"PLA", IMPLICIT, CLASS_PULL, (*CPU).opPLA},
		0x69: {"ADC", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opADC},
		0x6A: {"ROR", ACCUMULATOR, CLASS_IMPLIED, (*CPU).opRORAcc},
		0x6B: {"ARR", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opARR},
		0x6C: {"JMP", INDIRECT, CLASS_IND_JMP, (*CPU).opFlow},
		0x6D: {"ADC", ABSOLUTE, CLASS_ABS_READ, (*CPU).opADC},
		0x6E: {"ROR", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opROR},
		0x6F: {"RRA", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opRRA},
		0x70: {"BVS", RELATIVE, CLASS_RELATIVE, (*CPU).opBVS},
		0x71: {"ADC", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opADC},
		0x72: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x73: {"RRA", INDIRECT_Y, CLASS_IZY_RMW, (*CPU).opRRA},
		0x74: {"NOP", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opNOP},
		0x75: {"ADC", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opADC},
		0x76: {"ROR", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opROR},
		0x77: {"RRA", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opRRA},
		0x78: {"SEI", IMPLICIT, CLASS_IMPLIED, (*CPU).opSEI},
		0x79: {"ADC", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opADC},
		0x7A: {"NOP", IMPLICIT, CLASS_IMPLIED, (*CPU).opNOP},
		0x7B: {"RRA", ABSOLUTE_Y, CLASS_ABY_RMW, (*CPU).opRRA},
		0x7C: {"NOP", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opNOP},
		0x7D: {"ADC", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opADC},
		0x7E: {"ROR", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opROR},
		0x7F: {"RRA", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opRRA},
		0x80: {"NOP", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opNOP},
		0x81: {"STA", INDIRECT_X, CLASS_IZX_WRITE, (*CPU).opSTA},
		0x82: {"NOP", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opNOP},
		0x83: {"SAX", INDIRECT_X, CLASS_IZX_WRITE, (*CPU).opSAX},
		0x84: {"STY", ZERO_PAGE, CLASS_ZP_WRITE, (*CPU).opSTY},
		0x85: {"STA", ZERO_PAGE, CLASS_ZP_WRITE, (*CPU).opSTA},
		0x86: {"STX", ZERO_PAGE, CLASS_ZP_WRITE, (*CPU).opSTX},
		0x87: {"SAX", ZERO_PAGE, CLASS_ZP_WRITE, (*CPU).opSAX},
		0x88: {"DEY", IMPLICIT, CLASS_IMPLIED, (*CPU).opDEY},
		0x89: {"NOP", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opNOP},
		0x8A: {"TXA", IMPLICIT, CLASS_IMPLIED, (*CPU).opTXA},
		0x8B: {"XAA", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opXAA},
		0x8C: {"STY", ABSOLUTE, CLASS_ABS_WRITE, (*CPU).opSTY},
		0x8D: {"STA", ABSOLUTE, CLASS_ABS_WRITE, (*CPU).opSTA},
		0x8E: {"STX", ABSOLUTE, CLASS_ABS_WRITE, (*CPU).opSTX},
		0x8F: {"SAX", ABSOLUTE, CLASS_ABS_WRITE, (*CPU).opSAX},
		0x90: {"BCC", RELATIVE, CLASS_RELATIVE, (*CPU).opBCC},
		0x91: {"STA", INDIRECT_Y, CLASS_IZY_WRITE, (*CPU).opSTA},
		0x92: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0x93: {"SHA", INDIRECT_Y, CLASS_IZY_WRITE, (*CPU).opSHA},
		0x94: {"STY", ZERO_PAGE_X, CLASS_ZPX_WRITE, (*CPU).opSTY},
		0x95: {"STA", ZERO_PAGE_X, CLASS_ZPX_WRITE, (*CPU).opSTA},
		0x96: {"STX", ZERO_PAGE_Y, CLASS_ZPY_WRITE, (*CPU).opSTX},
		0x97: {"SAX", ZERO_PAGE_Y, CLASS_ZPY_WRITE, (*CPU).opSAX},
		0x98: {"TYA", IMPLICIT, CLASS_IMPLIED, (*CPU).opTYA},
		0x99: {"STA", ABSOLUTE_Y, CLASS_ABY_WRITE, (*CPU).opSTA},
		0x9A: {"TXS", IMPLICIT, CLASS_IMPLIED, (*CPU).opTXS},
		0x9B: {"TAS", ABSOLUTE_Y, CLASS_ABY_WRITE, (*CPU).opTAS},
		0x9C: {"SHY", ABSOLUTE_X, CLASS_ABX_WRITE, (*CPU).opSHY},
		0x9D: {"STA", ABSOLUTE_X, CLASS_ABX_WRITE, (*CPU).opSTA},
		0x9E: {"SHX", ABSOLUTE_Y, CLASS_ABY_WRITE, (*CPU).opSHX},
		0x9F: {"SHA", ABSOLUTE_Y, CLASS_ABY_WRITE, (*CPU).opSHA},
		0xA0: {"LDY", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opLDY},
		0xA1: {"LDA", INDIRECT_X, CLASS_IZX_READ, (*CPU).opLDA},
		0xA2: {"LDX", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opLDX},
		0xA3: {"LAX", INDIRECT_X, CLASS_IZX_READ, (*CPU).opLAX},
		0xA4: {"LDY", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opLDY},
		0xA5: {"LDA", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opLDA},
		0xA6: {"LDX", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opLDX},
		0xA7: {"LAX", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opLAX},
		0xA8: {"TAY", IMPLICIT, CLASS_IMPLIED, (*CPU).opTAY},
		0xA9: {"LDA", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opLDA},
		0xAA: {"TAX", IMPLICIT, CLASS_IMPLIED, (*CPU).opTAX},
		0xAB: {"LXA", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opLXA},
		0xAC: {"LDY", ABSOLUTE, CLASS_ABS_READ, (*CPU).opLDY},
		0xAD: {"LDA", ABSOLUTE, CLASS_ABS_READ, (*CPU).opLDA},
		0xAE: {"LDX", ABSOLUTE, CLASS_ABS_READ, (*CPU).opLDX},
		0xAF: {"LAX", ABSOLUTE, CLASS_ABS_READ, (*CPU).opLAX},
		0xB0: {"BCS", RELATIVE, CLASS_RELATIVE, (*CPU).opBCS},
		0xB1: {"LDA", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opLDA},
		0xB2: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0xB3: {"LAX", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opLAX},
		0xB4: {"LDY", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opLDY},
		0xB5: {"LDA", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opLDA},
		0xB6: {"LDX", ZERO_PAGE_Y, CLASS_ZPY_READ, (*CPU).opLDX},
		0xB7: {"LAX", ZERO_PAGE_Y, CLASS_ZPY_READ, (*CPU).opLAX},
		0xB8: {"CLV", IMPLICIT, CLASS_IMPLIED, (*CPU).opCLV},
		0xB9: {"LDA", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opLDA},
		0xBA: {"TSX", IMPLICIT, CLASS_IMPLIED, (*CPU).opTSX},
		0xBB: {"LAS", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opLAS},
		0xBC: {"LDY", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opLDY},
		0xBD: {"LDA", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opLDA},
		0xBE: {"LDX", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opLDX},
		0xBF: {"LAX", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opLAX},
		0xC0: {"CPY", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opCPY},
		0xC1: {"CMP", INDIRECT_X, CLASS_IZX_READ, (*CPU).opCMP},
		0xC2: {"NOP", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opNOP},
		0xC3: {"DCP", INDIRECT_X, CLASS_IZX_RMW, (*CPU).opDCP},
		0xC4: {"CPY", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opCPY},
		0xC5: {"CMP", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opCMP},
		0xC6: {"DEC", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opDEC},
		0xC7: {"DCP", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opDCP},
		0xC8: {"INY", IMPLICIT, CLASS_IMPLIED, (*CPU).opINY},
		0xC9: {"CMP", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opCMP},
		0xCA: {"DEX", IMPLICIT, CLASS_IMPLIED, (*CPU).opDEX},
		0xCB: {"AXS", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opAXS},
		0xCC: {"CPY", ABSOLUTE, CLASS_ABS_READ, (*CPU).opCPY},
		0xCD: {"CMP", ABSOLUTE, CLASS_ABS_READ, (*CPU).opCMP},
		0xCE: {"DEC", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opDEC},
		0xCF: {"DCP", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opDCP},
		0xD0: {"BNE", RELATIVE, CLASS_RELATIVE, (*CPU).opBNE},
		0xD1: {"CMP", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opCMP},
		0xD2: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0xD3: {"DCP", INDIRECT_Y, CLASS_IZY_RMW, (*CPU).opDCP},
		0xD4: {"NOP", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opNOP},
		0xD5: {"CMP", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opCMP},
		0xD6: {"DEC", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opDEC},
		0xD7: {"DCP", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opDCP},
		0xD8: {"CLD", IMPLICIT, CLASS_IMPLIED, (*CPU).opCLD},
		0xD9: {"CMP", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opCMP},
		0xDA: {"NOP", IMPLICIT, CLASS_IMPLIED, (*CPU).opNOP},
		0xDB: {"DCP", ABSOLUTE_Y, CLASS_ABY_RMW, (*CPU).opDCP},
		0xDC: {"NOP", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opNOP},
		0xDD: {"CMP", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opCMP},
		0xDE: {"DEC", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opDEC},
		0xDF: {"DCP", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opDCP},
		0xE0: {"CPX", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opCPX},
		0xE1: {"SBC", INDIRECT_X, CLASS_IZX_READ, (*CPU).opSBC},
		0xE2: {"NOP", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opNOP},
		0xE3: {"ISC", INDIRECT_X, CLASS_IZX_RMW, (*CPU).opISC},
		0xE4: {"CPX", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opCPX},
		0xE5: {"SBC", ZERO_PAGE, CLASS_ZP_READ, (*CPU).opSBC},
		0xE6: {"INC", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opINC},
		0xE7: {"ISC", ZERO_PAGE, CLASS_ZP_RMW, (*CPU).opISC},
		0xE8: {"INX", IMPLICIT, CLASS_IMPLIED, (*CPU).opINX},
		0xE9: {"SBC", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opSBC},
		0xEA: {"NOP", IMPLICIT, CLASS_IMPLIED, (*CPU).opNOP},
		0xEB: {"SBC", IMMEDIATE, CLASS_IMMEDIATE, (*CPU).opSBC},
		0xEC: {"CPX", ABSOLUTE, CLASS_ABS_READ, (*CPU).opCPX},
		0xED: {"SBC", ABSOLUTE, CLASS_ABS_READ, (*CPU).opSBC},
		0xEE: {"INC", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opINC},
		0xEF: {"ISC", ABSOLUTE, CLASS_ABS_RMW, (*CPU).opISC},
		0xF0: {"BEQ", RELATIVE, CLASS_RELATIVE, (*CPU).opBEQ},
		0xF1: {"SBC", INDIRECT_Y, CLASS_IZY_READ, (*CPU).opSBC},
		0xF2: {"JAM", IMPLICIT, CLASS_IMPLIED, (*CPU).opJAM},
		0xF3: {"ISC", INDIRECT_Y, CLASS_IZY_RMW, (*CPU).opISC},
		0xF4: {"NOP", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opNOP},
		0xF5: {"SBC", ZERO_PAGE_X, CLASS_ZPX_READ, (*CPU).opSBC},
		0xF6: {"INC", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opINC},
		0xF7: {"ISC", ZERO_PAGE_X, CLASS_ZPX_RMW, (*CPU).opISC},
		0xF8: {"SED", IMPLICIT, CLASS_IMPLIED, (*CPU).opSED},
		0xF9: {"SBC", ABSOLUTE_Y, CLASS_ABY_READ, (*CPU).opSBC},
		0xFA: {"NOP", IMPLICIT, CLASS_IMPLIED, (*CPU).opNOP},
		0xFB: {"ISC", ABSOLUTE_Y, CLASS_ABY_RMW, (*CPU).opISC},
		0xFC: {"NOP", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opNOP},
		0xFD: {"SBC", ABSOLUTE_X, CLASS_ABX_READ, (*CPU).opSBC},
		0xFE: {"INC", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opINC},
		0xFF: {"ISC", ABSOLUTE_X, CLASS_ABX_RMW, (*CPU).opISC},
	}
}

// Disassemble renders the instruction at addr and returns its length.
// It reads through the CPU's memory, so it should not be pointed at
// registers with read side effects.
func (c *CPU) Disassemble(addr uint16) (string, int) {
	op := opcodes[c.read(addr)]
	lo := c.read(addr + 1)
	hi := c.read(addr + 2)
	w := uint16(hi)<<8 | uint16(lo)

	var operand string
	switch op.mode {
	case ACCUMULATOR:
		operand = "A"
	case IMMEDIATE:
		operand = fmt.Sprintf("#$%02X", lo)
	case ZERO_PAGE:
		operand = fmt.Sprintf("$%02X", lo)
	case ZERO_PAGE_X:
		operand = fmt.Sprintf("$%02X,X", lo)
	case ZERO_PAGE_Y:
		operand = fmt.Sprintf("$%02X,Y", lo)
	case RELATIVE:
		operand = fmt.Sprintf("$%04X", addr+2+uint16(int8(lo)))
	case ABSOLUTE:
		operand = fmt.Sprintf("$%04X", w)
	case ABSOLUTE_X:
		operand = fmt.Sprintf("$%04X,X", w)
	case ABSOLUTE_Y:
		operand = fmt.Sprintf("$%04X,Y", w)
	case INDIRECT:
		operand = fmt.Sprintf("($%04X)", w)
	case INDIRECT_X:
		operand = fmt.Sprintf("($%02X,X)", lo)
	case INDIRECT_Y:
		operand = fmt.Sprintf("($%02X),Y", lo)
	}

	if operand == "" {
		return op.name, op.bytes()
	}
	return op.name + " " + operand, op.bytes()
}

