package gui

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	TONE_FREQUENCY   = 440   // Hz
	TONE_SAMPLE_RATE = 44100 // Hz
	TONE_AMPLITUDE   = 32    // Peak offset from the silence value.

	// Samples queued per refill. The queue is kept at most two chunks deep.
	toneChunk = 1024
)

// tone plays a square wave through an SDL audio queue.
// prerequisite: SDL_INIT_AUDIO must be included in the call to sdl.Init()
type tone struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	chunk []uint8
	on    bool
}

func newTone() (t *tone, err error) {
	spec := &sdl.AudioSpec{
		Freq:     TONE_SAMPLE_RATE,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  toneChunk,
	}

	t = &tone{}

	t.id, err = sdl.OpenAudioDevice("", false, spec, &t.spec, 0)
	if err != nil {
		t = nil
		return
	}

	t.chunk = squareWave(int(t.spec.Freq), TONE_FREQUENCY, toneChunk, t.spec.Silence)

	sdl.PauseAudioDevice(t.id, false)

	return
}

// Sound keeps the queue topped up while on, and drains it when turned off.
func (t *tone) Sound(on bool) (err error) {
	if !on {
		if t.on {
			sdl.ClearQueuedAudio(t.id)
		}
		t.on = false
		return
	}

	t.on = true
	if sdl.GetQueuedAudioSize(t.id) < uint32(len(t.chunk)) {
		err = sdl.QueueAudio(t.id, t.chunk)
	}

	return
}

func (t *tone) Close() {
	sdl.CloseAudioDevice(t.id)
}

// squareWave returns count unsigned 8-bit samples of a square wave at
// frequency, centred on silence.
func squareWave(rate int, frequency int, count int, silence uint8) (samples []uint8) {
	samples = make([]uint8, count)

	period := max(rate/frequency, 2)
	for n := range samples {
		if (n % period) < period/2 {
			samples[n] = silence + TONE_AMPLITUDE
		} else {
			samples[n] = silence - TONE_AMPLITUDE
		}
	}

	return
}
