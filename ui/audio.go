package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// queueDuration is how much audio the sample queue holds before it
// starts dropping the oldest samples.
const queueDuration = 170 * time.Millisecond

// AudioPlayer plays int16 stereo samples through oto. Samples are pushed
// to a SampleQueue that oto's player pulls from.
type AudioPlayer struct {
	player     *oto.Player
	queue      *SampleQueue
	sampleRate int
}

// oto allows one context per process; it is opened at the rate of the
// first player.
var (
	otoCtx      *oto.Context
	otoRate     int
	otoInitOnce sync.Once
	otoInitErr  error
)

func ensureOtoContext(sampleRate int) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		})
		if otoInitErr != nil {
			return
		}
		otoRate = sampleRate
		<-ready
	})
	if otoInitErr == nil && otoRate != sampleRate {
		return nil, fmt.Errorf("audio context already open at %d Hz", otoRate)
	}
	return otoCtx, otoInitErr
}

// NewAudioPlayer starts stereo playback at sampleRate.
func NewAudioPlayer(sampleRate int, volume float64) (*AudioPlayer, error) {
	ctx, err := ensureOtoContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	queue := NewSampleQueue(samplesFor(sampleRate, queueDuration))
	player := ctx.NewPlayer(queue)
	// 100ms of bytes in oto's own buffer.
	player.SetBufferSize(2 * samplesFor(sampleRate, 100*time.Millisecond))
	player.SetVolume(volume)
	player.Play()

	return &AudioPlayer{
		player:     player,
		queue:      queue,
		sampleRate: sampleRate,
	}, nil
}

// samplesFor returns the number of interleaved stereo samples in d.
func samplesFor(sampleRate int, d time.Duration) int {
	return int(int64(sampleRate) * 2 * int64(d) / int64(time.Second))
}

// QueueSamples hands one frame of samples to the player.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	a.queue.Push(samples)
}

// Buffered returns the audio waiting to be played, in the queue and in
// oto's buffer. The runner paces frames against it.
func (a *AudioPlayer) Buffered() time.Duration {
	samples := a.queue.Len() + a.player.BufferedSize()/2
	return time.Duration(samples) * time.Second / time.Duration(2*a.sampleRate)
}

// SetVolume sets the playback volume (0.0 = silent, 1.0 = full).
func (a *AudioPlayer) SetVolume(vol float64) {
	a.player.SetVolume(vol)
}

// Close cleans up audio resources.
func (a *AudioPlayer) Close() {
	if a.queue != nil {
		a.queue.Close()
	}
	if a.player != nil {
		a.player.Close()
	}
}
