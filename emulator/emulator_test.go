package emulator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/io"
)

type testClock struct {
	now time.Time
}

func (tc *testClock) Now() time.Time {
	return tc.now
}

// testScreen records the lit pixel count of each frame.
type testScreen struct {
	Lit    []int
	Err    error
	Closed int
}

func (ts *testScreen) Render(display *cpu.Display) error {
	ts.Lit = append(ts.Lit, display.Lit())
	return ts.Err
}

func (ts *testScreen) Close() error {
	ts.Closed++
	return nil
}

// program assembles instruction words into a program image.
func program(words ...uint16) (data []byte) {
	for _, word := range words {
		data = append(data, byte(word>>8), byte(word))
	}
	return
}

func newTestEmulator(t *testing.T, words ...uint16) (emu *Emulator, clock *testClock, screen *testScreen) {
	clock = &testClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	screen = &testScreen{}

	emu = NewEmulator(clock)
	emu.Screen = screen
	emu.Cpu.Seed(1)

	err := emu.Load(program(words...))
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(nil)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(DEFAULT_RATE, emu.Rate)
	assert.Equal(uint16(cpu.PROGRAM_START), emu.Cpu.Pc)
	assert.IsType(cpu.WallClock{}, emu.Cpu.Clock)
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	emu, _, screen := newTestEmulator(t, 0x00e0)

	// The blank frame is presented on load.
	assert.Equal([]int{0}, screen.Lit)
	assert.Equal(1, emu.Frames)

	err := emu.Load(make([]byte, cpu.MEMORY_SIZE))
	assert.ErrorIs(err, cpu.ErrProgramSize)
}

func TestEmulator_Tick_Draw(t *testing.T) {
	assert := assert.New(t)

	emu, _, screen := newTestEmulator(t,
		0x6005, // ld v0, 5
		0xf029, // ld f, v0
		0xd005, // drw v0, v0, 5
		0x1206, // jp 0x206
	)

	for range 8 {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	// Only the draw presented a frame; the glyph for 5 has 14 lit pixels.
	assert.Equal([]int{0, 14}, screen.Lit)
	assert.Equal(8, emu.Steps)
	assert.Equal(2, emu.Frames)
}

func TestEmulator_Tick_Quit(t *testing.T) {
	assert := assert.New(t)

	emu, _, _ := newTestEmulator(t, 0x1200)
	emu.Input = &io.ScriptInput{Input: strings.NewReader("2 -\nquit\n")}

	for range 2 {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(2, emu.Steps)
}

func TestEmulator_Tick_Keys(t *testing.T) {
	assert := assert.New(t)

	emu, _, _ := newTestEmulator(t,
		0xf30a, // ld v3, k
		0x1202, // jp 0x202
	)
	emu.Input = &io.ScriptInput{Input: strings.NewReader("3 -\n1 r\n")}

	for range 4 {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	assert.Equal(uint16(0x202), emu.Cpu.Pc)
	assert.Equal(uint8(0xd), emu.Cpu.V[3])
}

func TestEmulator_Tick_Fault(t *testing.T) {
	assert := assert.New(t)

	emu, _, _ := newTestEmulator(t,
		0x6001, // ld v0, 1
		0x00ee, // ret
	)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrStackEmpty)

	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(uint16(0x202), er.Pc)
	}
	assert.Contains(err.Error(), "0x202")

	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrHalted)
}

func TestEmulator_Tick_Sound(t *testing.T) {
	assert := assert.New(t)

	emu, clock, _ := newTestEmulator(t,
		0x6102, // ld v1, 2
		0xf118, // ld st, v1
		0x1204, // jp 0x204
	)
	output := &bytes.Buffer{}
	bell := &io.Bell{Output: output}
	emu.Speaker = bell

	for range 4 {
		_, err := emu.Tick()
		assert.NoError(err)
	}
	assert.Equal(1, bell.Rings)

	clock.now = clock.now.Add(2 * cpu.TIMER_PERIOD)
	_, err := emu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(0), emu.Cpu.St)
	assert.Equal("\a", output.String())
}

func TestEmulator_Tick_Device(t *testing.T) {
	assert := assert.New(t)

	emu, _, screen := newTestEmulator(t, 0x00e0)
	screen.Err = errors.New("no display")

	_, err := emu.Tick()
	var ed *ErrDevice
	if assert.True(errors.As(err, &ed)) {
		assert.Equal("screen", ed.Device)
	}
	assert.ErrorIs(err, screen.Err)
}

func TestEmulator_Run_Limit(t *testing.T) {
	assert := assert.New(t)

	emu, _, _ := newTestEmulator(t, 0x7001, 0x1200)
	emu.Rate = 0
	emu.Limit = 100

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(100, emu.Steps)
	assert.Equal(uint8(50), emu.Cpu.V[0])
}

func TestEmulator_Run_Pacing(t *testing.T) {
	assert := assert.New(t)

	emu, clock, _ := newTestEmulator(t, 0x1200)
	emu.Rate = 100
	emu.Limit = 10

	var waits []time.Duration
	emu.Wait = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		// Oversleep; the next wait makes up the difference.
		clock.now = clock.now.Add(d + time.Millisecond)
		return nil
	}

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(10, emu.Steps)

	if assert.Len(waits, 9) {
		assert.Equal(10*time.Millisecond, waits[0])
		for _, d := range waits[1:] {
			assert.Equal(9*time.Millisecond, d)
		}
	}
}

func TestEmulator_Run_Lag(t *testing.T) {
	assert := assert.New(t)

	emu, clock, _ := newTestEmulator(t, 0x1200)
	emu.Rate = 100
	emu.Limit = 4

	var waits []time.Duration
	emu.Wait = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		clock.now = clock.now.Add(d)
		return nil
	}

	// A stall far past the lag limit is not caught up with a burst.
	emu.Input = stallInput{clock: clock, stall: time.Second}

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Len(waits, 0)
	assert.Equal(4, emu.Steps)
}

// stallInput advances the clock on every poll.
type stallInput struct {
	clock *testClock
	stall time.Duration
}

func (si stallInput) Poll() (keys cpu.Keys, quit bool, err error) {
	si.clock.now = si.clock.now.Add(si.stall)
	return
}

func TestEmulator_Run_Cancel(t *testing.T) {
	assert := assert.New(t)

	emu, _, _ := newTestEmulator(t, 0x1200)
	emu.Rate = 100

	ctx, cancel := context.WithCancel(context.Background())
	emu.Wait = func(ctx context.Context, d time.Duration) error {
		if emu.Steps == 3 {
			cancel()
		}
		return ctx.Err()
	}

	err := emu.Run(ctx)
	assert.NoError(err)
	assert.Equal(3, emu.Steps)

	// Already cancelled: no steps at all.
	emu, _, _ = newTestEmulator(t, 0x1200)
	err = emu.Run(ctx)
	assert.NoError(err)
	assert.Equal(0, emu.Steps)
}

func TestEmulator_Run_Wait(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := wait(ctx, time.Hour)
	assert.ErrorIs(err, context.Canceled)
	assert.Less(time.Since(start), time.Minute)

	assert.NoError(wait(context.Background(), time.Millisecond))
}

func TestEmulator_Run_Fault(t *testing.T) {
	assert := assert.New(t)

	emu, _, _ := newTestEmulator(t, 0x6001, 0xffff)
	emu.Rate = 0

	err := emu.Run(context.Background())
	assert.ErrorIs(err, cpu.ErrOpcode(0))
	assert.Equal(1, emu.Steps)
}

func TestEmulator_Close(t *testing.T) {
	assert := assert.New(t)

	emu, _, screen := newTestEmulator(t)
	assert.NoError(emu.Close())
	assert.Equal(1, screen.Closed)
}

func TestEmulator_State(t *testing.T) {
	assert := assert.New(t)

	emu, _, _ := newTestEmulator(t, 0x6a42, 0x1202)
	for range 3 {
		_, err := emu.Tick()
		assert.NoError(err)
	}

	state := map[string]string{}
	var names []string
	for name, value := range emu.State() {
		state[name] = value
		names = append(names, name)
	}

	assert.Equal([]string{"steps", "frames", "pc"}, names[:3])
	assert.Equal("3", state["steps"])
	assert.Equal("1", state["frames"])
	assert.Equal("202", state["pc"])
	assert.Equal("42", state["va"])

	assert.Contains(emu.String(), "  steps: 3\n")
}
