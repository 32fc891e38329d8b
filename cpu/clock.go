package cpu

import (
	"time"
)

const (
	TIMER_PERIOD = time.Second / 60 // Delay and sound timer decrement period.
)

// Clock is the source of wall-clock time for the timers.
type Clock interface {
	Now() time.Time
}

// WallClock is the system clock.
type WallClock struct{}

func (WallClock) Now() time.Time {
	return time.Now()
}

// tickTimers decrements the delay and sound timers by the number of whole
// timer periods since the last tick. The remainder carries to the next call.
func (cpu *Cpu) tickTimers() {
	elapsed := cpu.Clock.Now().Sub(cpu.lastTick)
	if elapsed < TIMER_PERIOD {
		return
	}

	ticks := elapsed / TIMER_PERIOD
	cpu.lastTick = cpu.lastTick.Add(ticks * TIMER_PERIOD)

	cpu.Dt = decay(cpu.Dt, ticks)
	cpu.St = decay(cpu.St, ticks)
}

func decay(timer uint8, ticks time.Duration) uint8 {
	if time.Duration(timer) <= ticks {
		return 0
	}
	return timer - uint8(ticks)
}
