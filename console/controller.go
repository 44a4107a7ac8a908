package console

// Buttons, as bits:
// 0 - A
// 1 - B
// 2 - Select
// 3 - Start
// 4 - Up
// 5 - Down
// 6 - Left
// 7 - Right
const (
	BUTTON_A = 1 << iota
	BUTTON_B
	BUTTON_SELECT
	BUTTON_START
	BUTTON_UP
	BUTTON_DOWN
	BUTTON_LEFT
	BUTTON_RIGHT
)

// controller is a standard pad's 8 bit shift register.
//
// https://www.nesdev.org/wiki/Standard_controller
type controller struct {
	buttons uint8 // held right now, set by the front end
	shift   uint8 // latched copy being shifted out
	idx     uint8
	strobe  bool
}

// write handles the strobe bit. While it is high the shift register
// keeps reloading, and the fall latches the buttons.
func (c *controller) write(val uint8) {
	was := c.strobe
	c.strobe = val&0x01 == 1
	if c.strobe || was {
		c.reload()
	}
}

func (c *controller) reload() {
	c.shift = c.buttons
	c.idx = 0
}

// read returns the next button, A first. After all 8 an official pad
// returns 1s.
func (c *controller) read() uint8 {
	if c.strobe {
		c.reload()
	}
	if c.idx > 7 {
		return 1
	}

	ret := c.shift & (1 << c.idx) >> c.idx
	c.idx++
	return ret
}

type controllerState struct {
	Buttons, Shift, Idx uint8
	Strobe              bool
}

func (c *controller) save() controllerState {
	return controllerState{c.buttons, c.shift, c.idx, c.strobe}
}

func (c *controller) load(s controllerState) {
	c.buttons, c.shift, c.idx, c.strobe = s.Buttons, s.Shift, s.Idx, s.Strobe
}
