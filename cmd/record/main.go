// Command record captures a take from the default microphone and saves
// it as a mono WAV file, ready to be passed to cmd/analyze's -user flag.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gordonklaus/portaudio"

	"singtrainer/internal/audioio"
	"singtrainer/internal/mic"
)

func main() {
	out := flag.String("out", "take.wav", "path to write the recorded take to")
	sr := flag.Int("sr", 44100, "sample rate to record at")
	chunk := flag.Int("chunk", 1024, "samples per PortAudio read")
	flag.Parse()

	if err := portaudio.Initialize(); err != nil {
		log.Fatalf("record: initializing portaudio: %v", err)
	}
	defer portaudio.Terminate()

	rec := mic.NewRecorder(*sr, *chunk)
	if err := rec.Start(); err != nil {
		log.Fatalf("record: %v", err)
	}

	fmt.Println("recording... press Enter to stop")
	stop := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(stop)
	}()

	pcm, err := rec.Capture(stop)
	rec.Stop()
	if err != nil {
		log.Fatalf("record: capture failed: %v", err)
	}

	if err := audioio.WriteMonoWAV(*out, pcm.Samples, pcm.SR); err != nil {
		log.Fatalf("record: writing %s: %v", *out, err)
	}
	log.Printf("record: wrote %d samples (%.1fs) to %s", len(pcm.Samples), float64(len(pcm.Samples))/float64(pcm.SR), *out)
}
