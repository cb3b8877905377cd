// Package audio records the buzzer output of the machine into a WAV file.
//
// The machine reports per cycle whether the sound timer is active. The
// recorder turns that into a mono square wave, with silence for every cycle
// that the sound timer is zero.
package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recording format.
const (
	SampleRate = 44100
	BitDepth   = 16
	ToneHz     = 440

	amplitude     = 0x2000
	pcmFormat     = 1
	flushSamples  = 4096
	channels      = 1
	halfPeriodLen = SampleRate / (2 * ToneHz)
)

// Recorder collects the buzzer state of every cycle and writes it as audio
// samples to a WAV file.
type Recorder struct {
	file            *os.File
	encoder         *wav.Encoder
	buffer          *audio.IntBuffer
	samplesPerCycle int
	phase           int
	written         bool
}

// NewRecorder creates the WAV file at the given path. cycleRate is the number
// of machine cycles per second and determines the duration of a cycle.
func NewRecorder(path string, cycleRate int) (*Recorder, error) {
	if cycleRate <= 0 {
		return nil, fmt.Errorf("invalid cycle rate %d", cycleRate)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating audio file %s: %w", path, err)
	}

	return &Recorder{
		file:    file,
		encoder: wav.NewEncoder(file, SampleRate, BitDepth, channels, pcmFormat),
		buffer: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  SampleRate,
			},
			Data:           make([]int, 0, flushSamples),
			SourceBitDepth: BitDepth,
		},
		samplesPerCycle: max(1, SampleRate/cycleRate),
	}, nil
}

// Record appends the samples of one cycle.
func (r *Recorder) Record(active bool) error {
	for range r.samplesPerCycle {
		sample := 0
		if active {
			sample = amplitude
			if (r.phase/halfPeriodLen)%2 == 1 {
				sample = -amplitude
			}
			r.phase++
		}
		r.buffer.Data = append(r.buffer.Data, sample)
	}

	if len(r.buffer.Data) >= flushSamples {
		return r.flush()
	}
	return nil
}

// Close writes the remaining samples, finalizes the WAV headers and closes
// the file.
func (r *Recorder) Close() error {
	if err := r.flush(); err != nil {
		_ = r.file.Close()
		return err
	}
	if err := r.encoder.Close(); err != nil {
		_ = r.file.Close()
		return fmt.Errorf("closing audio encoder: %w", err)
	}
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("closing audio file: %w", err)
	}
	return nil
}

func (r *Recorder) flush() error {
	if len(r.buffer.Data) == 0 && r.written {
		return nil
	}
	if err := r.encoder.Write(r.buffer); err != nil {
		return fmt.Errorf("writing audio samples: %w", err)
	}
	r.written = true
	r.buffer.Data = r.buffer.Data[:0]
	return nil
}
