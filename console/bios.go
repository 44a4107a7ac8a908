package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/bdwalton/nescycle/lineinput"
	"github.com/bdwalton/nescycle/memory"
	"github.com/bdwalton/nescycle/mos6502"
)

const (
	BIOS_HISTORY = 50
	// While running, input and signals are checked this often.
	RUN_CHECK_INSTRUCTIONS = 1000
)

const biosMenu = `(b)reak ADDR - add breakpoint
(c)lear - clear breakpoints
(r)un [FRAMES] - run until a breakpoint, new input or interrupt
(s)tep [N] - step the cpu N instructions
(f)rame [N] - run N frames
r(e)set - hit the reset button
(m)emory LOW HIGH - display a memory range
s(t)ack - show last 3 items on the stack
(i)nstruction - disassemble at the program counter
(p)c ADDR - set program counter
save FILE, load FILE - machine state
(h)istory, !N - show or repeat earlier commands
(q)uit - shutdown the nescycle`

type bios struct {
	m           *Machine
	out         io.Writer
	src         *lineinput.Source
	interactive bool
	breaks      map[uint16]struct{}
}

// BIOS runs a debug console reading commands from in, until it reads
// quit, in runs out or ctx is done. Prompts are only shown when in is a
// terminal.
func (m *Machine) BIOS(ctx context.Context, in io.Reader, out io.Writer) error {
	if m.mapper == nil {
		return ErrNoCartridge
	}

	b := &bios{
		m:      m,
		out:    out,
		src:    lineinput.New(in, BIOS_HISTORY),
		breaks: make(map[uint16]struct{}),
	}
	defer b.src.Close()
	if f, ok := in.(*os.File); ok {
		b.interactive = term.IsTerminal(int(f.Fd()))
	}

	for {
		if b.interactive {
			fmt.Fprintf(out, "%s\n\n%s\nChoice: ", m.cpu, biosMenu)
		}
		line, err := b.src.Wait(ctx)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		quit, err := b.command(ctx, line)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (b *bios) command(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "b", "B":
		addr, err := argAddress(args, 0)
		if err != nil {
			return false, err
		}
		b.breaks[addr] = struct{}{}
	case "c", "C":
		b.breaks = make(map[uint16]struct{})
	case "p", "P":
		addr, err := argAddress(args, 0)
		if err != nil {
			return false, err
		}
		b.m.cpu.SetPC(addr)
	case "q", "Q":
		return true, nil
	case "r", "R":
		frames, err := argCount(args, 0)
		if err != nil {
			return false, err
		}
		return false, b.run(ctx, frames)
	case "s", "S":
		n, err := argCount(args, 1)
		if err != nil {
			return false, err
		}
		for i := 0; i < n; i++ {
			if err := b.m.StepInstruction(); err != nil {
				return false, err
			}
		}
		fmt.Fprintln(b.out, b.m.cpu)
	case "f", "F":
		n, err := argCount(args, 1)
		if err != nil {
			return false, err
		}
		for i := 0; i < n; i++ {
			if err := b.m.StepFrame(); err != nil {
				return false, err
			}
		}
		fmt.Fprintf(b.out, "frame %d\n%s\n", b.m.Frames(), b.m.cpu)
	case "t", "T":
		b.stack()
	case "i", "I":
		pc := b.m.cpu.PC()
		text, n := b.m.cpu.Disassemble(pc)
		fmt.Fprintf(b.out, "0x%04x: ", pc)
		for i := 0; i < n; i++ {
			fmt.Fprintf(b.out, "%02x ", b.m.Peek(pc+uint16(i)))
		}
		fmt.Fprintf(b.out, " %s\n", text)
	case "e", "E":
		b.m.Reset()
	case "m", "M":
		low, err := argAddress(args, 0)
		if err != nil {
			return false, err
		}
		high, err := argAddress(args, 1)
		if err != nil {
			return false, err
		}
		b.dump(low, high)
	case "save", "load":
		if len(args) != 1 {
			return false, fmt.Errorf("%s needs a file name", cmd)
		}
		if cmd == "save" {
			return false, b.save(args[0])
		}
		return false, b.load(args[0])
	case "h", "H":
		for i, l := range b.src.History() {
			fmt.Fprintf(b.out, "%3d  %s\n", i, l)
		}
	default:
		if strings.HasPrefix(cmd, "!") {
			return b.replay(ctx, cmd[1:])
		}
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

// replay runs history entry n again.
func (b *bios) replay(ctx context.Context, n string) (bool, error) {
	i, err := strconv.Atoi(n)
	h := b.src.History()
	if err != nil || i < 0 || i >= len(h) {
		return false, fmt.Errorf("no history entry %q", n)
	}
	if strings.HasPrefix(strings.TrimSpace(h[i]), "!") {
		return false, fmt.Errorf("history entry %d is itself a replay", i)
	}
	fmt.Fprintf(b.out, "%s\n", h[i])
	return b.command(ctx, h[i])
}

// run steps the machine until a breakpoint, the frame limit when there
// is one, or the end of ctx. At a terminal, an interrupt or a new line
// of input stops it too.
func (b *bios) run(ctx context.Context, frames int) error {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, os.Interrupt)
	defer signal.Stop(sigQuit)

	stop := b.m.Frames() + uint64(frames)
	for i := 0; ; i++ {
		if err := b.m.StepInstruction(); err != nil {
			return err
		}
		if _, ok := b.breaks[b.m.cpu.PC()]; ok {
			fmt.Fprintf(b.out, "breakpoint at 0x%04x\n%s\n", b.m.cpu.PC(), b.m.cpu)
			return nil
		}
		if frames > 0 && b.m.Frames() >= stop {
			fmt.Fprintf(b.out, "frame %d\n%s\n", b.m.Frames(), b.m.cpu)
			return nil
		}
		if i%RUN_CHECK_INSTRUCTIONS != 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sigQuit:
			fmt.Fprintf(b.out, "interrupted\n%s\n", b.m.cpu)
			return nil
		default:
		}
		// Scripted input is commands, not a stop request.
		if !b.interactive {
			continue
		}
		if _, ok := b.src.Next(); ok {
			fmt.Fprintf(b.out, "stopped\n%s\n", b.m.cpu)
			return nil
		}
	}
}

func (b *bios) stack() {
	_, _, _, sp, _ := b.m.cpu.Registers()
	for i := 1; i <= 3 && int(sp)+i <= 0xFF; i++ {
		addr := mos6502.STACK_PAGE + uint16(sp) + uint16(i)
		fmt.Fprintf(b.out, "0x%04x: 0x%02x ", addr, b.m.Peek(addr))
	}
	fmt.Fprintln(b.out)
}

func (b *bios) dump(low, high uint16) {
	x := 1
	for i := low; ; i++ {
		fmt.Fprintf(b.out, "0x%04x: 0x%02x ", i, b.m.Peek(i))
		if x%5 == 0 {
			fmt.Fprintln(b.out)
		}
		if i >= high || i == memory.MAX_ADDRESS {
			break
		}
		x++
	}
	fmt.Fprintln(b.out)
}

func (b *bios) save(path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()
	return b.m.SaveState(f)
}

func (b *bios) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.m.LoadState(f)
}

// argAddress parses args[i] as a hex address, eg ff15 or 0xff15.
func argAddress(args []string, i int) (uint16, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing address (eg: ff15)")
	}
	s := strings.TrimPrefix(strings.ToLower(args[i]), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", args[i], err)
	}
	return uint16(v), nil
}

// argCount parses args[0] as a count, defaulting to def.
func argCount(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad count %q", args[0])
	}
	return n, nil
}
