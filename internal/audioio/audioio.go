// Package audioio decodes WAV and MP3 files into mono float32 PCM, the
// common input shape every PitchExtractor consumes.
package audioio

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// PCM is decoded audio ready for analysis: mono samples in [-1, 1] at SR.
type PCM struct {
	Samples []float32
	SR      int
}

/*
Load reads path, dispatching on its extension to the WAV or MP3 decoder.

Multi-channel sources are averaged down to mono; the pitch extractors
only accept a single channel.

Output:
  - PCM with Samples averaged down to mono, SR from the file's header.
  - error if the extension is unrecognized or decoding fails.
*/
func Load(path string) (PCM, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return loadWAV(path)
	case ".mp3":
		return loadMP3(path)
	default:
		return PCM{}, fmt.Errorf("audioio: unsupported file extension: %s", path)
	}
}

func loadWAV(path string) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return PCM{}, fmt.Errorf("audioio: invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return PCM{}, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return PCM{}, fmt.Errorf("audioio: invalid wav buffer: %s", path)
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	maxAmp := float64(int(1) << (uint(buf.SourceBitDepth) - 1))
	if buf.SourceBitDepth == 0 {
		maxAmp = math.MaxInt16 + 1
	}

	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = float32(sum / float64(ch) / maxAmp)
	}
	return PCM{Samples: out, SR: buf.Format.SampleRate}, nil
}

func loadMP3(path string) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return PCM{}, err
	}

	raw, err := io.ReadAll(dec)
	if err != nil && err != io.EOF {
		return PCM{}, err
	}

	// go-mp3 always decodes to 16-bit stereo little-endian PCM.
	frames := len(raw) / 4
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		l := int16(raw[i*4]) | int16(raw[i*4+1])<<8
		r := int16(raw[i*4+2]) | int16(raw[i*4+3])<<8
		out[i] = float32((float64(l) + float64(r)) / 2.0 / 32768.0)
	}
	return PCM{Samples: out, SR: dec.SampleRate()}, nil
}

// WriteMonoWAV writes samples (in [-1, 1]) as a 16-bit mono WAV file.
// Used by cmd/record to persist a captured take.
func WriteMonoWAV(path string, samples []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	data := make([]int, len(samples))
	for i, s := range samples {
		v := int(s * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		data[i] = v
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}
