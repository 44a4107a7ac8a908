// Package counter implements the down counters that pace every unit
// of the machine: the master clock dividers, the APU channel timers
// and the periodic mapper hooks.
package counter

// Counter counts ticks down and fires a callback each time the count
// passes zero, reloading as it goes. A counter with reload r fires once
// every r+1 ticks.
type Counter struct {
	value  int
	reload int
	fn     func()
}

// State is the serialisable part of a Counter. The callback is not
// state and must be supplied again by the owner.
type State struct {
	Value, Reload int
}

// New returns a counter that starts at reload and calls fn on every
// crossing. fn may be nil.
func New(reload int, fn func()) *Counter {
	return &Counter{value: reload, reload: reload, fn: fn}
}

// Tick advances the counter n ticks, firing once per crossing. Ticks
// are associative: Tick(a) then Tick(b) behaves exactly as Tick(a+b).
func (c *Counter) Tick(n int) {
	c.value -= n
	for c.value < 0 {
		c.value += c.reload + 1
		if c.fn != nil {
			c.fn()
		}
	}
}

// Delay pushes the next crossing n ticks further away.
func (c *Counter) Delay(n int) {
	c.value += n
}

func (c *Counter) Value() int {
	return c.value
}

// Set sets the current value without changing the reload.
func (c *Counter) Set(v int) {
	c.value = v
}

func (c *Counter) Reload() int {
	return c.reload
}

// SetReload changes the reload used at the next crossing. The current
// count is left alone.
func (c *Counter) SetReload(r int) {
	c.reload = r
}

// Restart sets the current value back to the reload.
func (c *Counter) Restart() {
	c.value = c.reload
}

func (c *Counter) State() State {
	return State{Value: c.value, Reload: c.reload}
}

func (c *Counter) SetState(s State) {
	c.value, c.reload = s.Value, s.Reload
}
