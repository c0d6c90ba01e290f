// Package mic captures microphone input into a PCM buffer for offline
// analysis. It does not perform any live pitch detection or UI feedback;
// capture-while-singing and analyze-afterward are separate steps, per the
// pipeline's synchronous, non-streaming design.
package mic

import (
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"

	"singtrainer/internal/audioio"
)

/*
Recorder manages a PortAudio input stream and accumulates captured
samples into an in-memory take, for cmd/record to persist and hand off
to the analysis pipeline.

Fields:
  - Stream: PortAudio stream handle.
  - Buffer: per-read chunk, refilled by Read().
  - Done: closed by Stop() to signal the capture loop to exit.
  - SR: sample rate the stream was opened at.
*/
type Recorder struct {
	Stream *portaudio.Stream
	Buffer []float32
	Done   chan struct{}
	SR     int

	captured []float32
}

// NewRecorder creates a recorder that will capture at sr Hz, reading
// chunkSize samples per PortAudio call.
func NewRecorder(sr, chunkSize int) *Recorder {
	return &Recorder{
		Buffer: make([]float32, chunkSize),
		SR:     sr,
	}
}

/*
Start opens the default microphone input stream, retrying with
exponential backoff to ride out a transient device-busy error from
PortAudio.
*/
func (r *Recorder) Start() error {
	var err error
	const maxRetries = 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(100*(1<<attempt)) * time.Millisecond)
		}

		r.Stream, err = portaudio.OpenDefaultStream(1, 0, float64(r.SR), len(r.Buffer), r.Buffer)
		if err != nil {
			continue
		}
		if err = r.Stream.Start(); err != nil {
			r.Stream.Close()
			r.Stream = nil
			continue
		}

		r.Done = make(chan struct{})
		r.captured = r.captured[:0]
		return nil
	}

	return fmt.Errorf("mic: failed to start input stream after %d attempts: %w", maxRetries, err)
}

// Stop signals the capture loop to exit and tears down the stream.
func (r *Recorder) Stop() {
	if r.Done != nil {
		close(r.Done)
		time.Sleep(50 * time.Millisecond)
	}
	if r.Stream != nil {
		r.Stream.Stop()
		r.Stream.Close()
		r.Stream = nil
	}
	r.Done = nil
}

// Read blocks until Buffer is refilled with the next chunk of samples.
func (r *Recorder) Read() error {
	if r.Stream == nil {
		return nil
	}
	return r.Stream.Read()
}

// IsDone reports whether Stop has been called.
func (r *Recorder) IsDone() bool {
	select {
	case <-r.Done:
		return true
	default:
		return false
	}
}

/*
Capture runs the read loop until stop is closed (or Stop() is called),
appending every chunk to the accumulated take, then returns the full
recording as PCM. No analysis happens until the take is complete; the
offline pipeline picks it up from there.
*/
func (r *Recorder) Capture(stop <-chan struct{}) (audioio.PCM, error) {
	for {
		select {
		case <-stop:
			return audioio.PCM{Samples: r.captured, SR: r.SR}, nil
		default:
		}
		if r.IsDone() {
			return audioio.PCM{Samples: r.captured, SR: r.SR}, nil
		}
		if err := r.Read(); err != nil {
			return audioio.PCM{}, err
		}
		chunk := make([]float32, len(r.Buffer))
		copy(chunk, r.Buffer)
		r.captured = append(r.captured, chunk...)
	}
}
