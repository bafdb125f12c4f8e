package emu

const (
	// SampleRate is the output rate of GetAudioSamples.
	SampleRate = 48000

	// audioBufferFrames sizes the per-frame buffer for the slowest
	// standard (50 Hz) with headroom.
	audioBufferFrames = 2 * (SampleRate/50 + 16)
)

// queueLineAudio appends the stereo samples covering the DMA cycles of
// the line that just ended. Paula output is not generated, so the samples
// are silent; they keep audio-driven frontends paced to the beam.
func (e *Emulator) queueLineAudio() {
	e.samplePhase += float64(e.lineCycles) * SampleRate / e.cs.Timing().ClockHz()
	e.lineCycles = 0
	n := int(e.samplePhase)
	e.samplePhase -= float64(n)
	for i := 0; i < n; i++ {
		e.audioBuffer = append(e.audioBuffer, 0, 0)
	}
}

// GetAudioSamples returns accumulated audio samples as 16-bit stereo PCM.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}
