// Command analyze runs the full offline pipeline over a reference track
// and a user take: extract pitch from both, align the user onto the
// reference grid, compare, segment into events, summarize, diagnose
// octave/key offset, optionally align lyrics, and write the resulting
// artifacts to an output directory.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"singtrainer/internal/align"
	"singtrainer/internal/audioio"
	"singtrainer/internal/compare"
	"singtrainer/internal/config"
	"singtrainer/internal/event"
	"singtrainer/internal/fetch"
	"singtrainer/internal/keyoffset"
	"singtrainer/internal/lyrics"
	"singtrainer/internal/notate"
	"singtrainer/internal/pitch"
	"singtrainer/internal/summary"
)

func main() {
	refPath := flag.String("ref", "", "reference input: wav/mp3 audio or a pre-extracted pitch .json; takes precedence over -yt/-import")
	yt := flag.String("yt", "", "acquire the reference track by searching YouTube for this query via yt-dlp")
	importPath := flag.String("import", "", "acquire the reference track by importing this local audio file")
	songsDir := flag.String("songs-dir", "songs", "directory -yt/-import lay the acquired reference track under")
	userPath := flag.String("user", "", "user take: wav/mp3 audio or a pre-extracted pitch .json")
	lyricsPath := flag.String("lyrics", "", "optional path to a lyrics file (.lrc, .srt, or plain text)")
	outDir := flag.String("out", "analysis", "directory to write artifacts into")
	refAlgo := flag.String("ref-algo", "yin", "pitch extraction algorithm for the reference track: yin or fftpeak")
	userAlgo := flag.String("user-algo", "fftpeak", "pitch extraction algorithm for the user track: yin or fftpeak")
	autosync := flag.Bool("autosync", true, "search for a global time offset before comparing")
	flag.Parse()

	resolvedRef := resolveRefPath(*refPath, *yt, *importPath, *songsDir)
	if resolvedRef == "" || *userPath == "" {
		log.Fatal("analyze: a reference (-ref, -yt, or -import) and -user are required")
	}

	cfg := config.Load()

	refTrack := loadTrack(resolvedRef, *refAlgo, cfg)
	userTrack := loadTrack(*userPath, *userAlgo, cfg)

	aligned := align.Align(&refTrack, &userTrack, *autosync, cfg.Analysis.AutosyncMax)
	cents := compare.Compare(&refTrack, aligned)
	events := event.Segment(cents, &refTrack, aligned, cfg.Analysis.TolCents, cfg.Analysis.MinEventDuration)
	sum := summary.Summarize(cents, cfg.Analysis.TolCents, cfg.Analysis.MinSecondsVerdi, refTrack.FramePeriod(), events)
	keyResult := keyoffset.Analyze(cents)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("analyze: creating output dir: %v", err)
	}

	writeJSON(filepath.Join(*outDir, "pitch.json"), refTrack)
	writeJSON(filepath.Join(*outDir, "user_pitch.json"), userTrack)
	writeJSON(filepath.Join(*outDir, "events.json"), events)
	writeJSON(filepath.Join(*outDir, "summary.json"), sum)
	writeJSON(filepath.Join(*outDir, "key_offset.json"), keyResult)

	if *lyricsPath != "" {
		lines := alignLyrics(*lyricsPath, &refTrack, cfg)
		data, err := lyrics.MarshalLinesJSON(lines)
		if err != nil {
			log.Fatalf("analyze: marshaling lyrics: %v", err)
		}
		if err := os.WriteFile(filepath.Join(*outDir, "lyrics.json"), data, 0o644); err != nil {
			log.Fatalf("analyze: writing lyrics.json: %v", err)
		}

		srt := lyrics.WriteSRT(lines)
		if err := os.WriteFile(filepath.Join(*outDir, "lyrics.srt"), []byte(srt), 0o644); err != nil {
			log.Fatalf("analyze: writing lyrics.srt: %v", err)
		}
		lrc := lyrics.WriteLRC(lines)
		if err := os.WriteFile(filepath.Join(*outDir, "lyrics.lrc"), []byte(lrc), 0o644); err != nil {
			log.Fatalf("analyze: writing lyrics.lrc: %v", err)
		}
		overlay, err := lyrics.WriteOverlayJSON(lines)
		if err != nil {
			log.Fatalf("analyze: marshaling overlay: %v", err)
		}
		if err := os.WriteFile(filepath.Join(*outDir, "lyrics_overlay.json"), overlay, 0o644); err != nil {
			log.Fatalf("analyze: writing lyrics_overlay.json: %v", err)
		}
	}

	log.Printf("analyze: wrote artifacts to %s (verdict: %s)", *outDir, sum.Verdict)
	log.Printf("analyze: key diagnosis: %s, %s off reference (reference median note %s)",
		keyResult.Verdict, notate.SemitonesName(keyResult.SemitoneOffset), notate.NoteName(medianVoicedFreq(refTrack)))
}

// resolveRefPath picks the reference audio path: an explicit -ref wins
// outright; otherwise -yt/-import acquire one into songsDir via
// internal/fetch and the resulting songs/<name>/song.* file is used.
func resolveRefPath(refFlag, ytQuery, importPath, songsDir string) string {
	if refFlag != "" {
		return refFlag
	}
	var songDir string
	var err error
	switch {
	case ytQuery != "":
		songDir, err = fetch.Download(songsDir, ytQuery)
		if err != nil {
			log.Fatalf("analyze: fetching -yt %q: %v", ytQuery, err)
		}
	case importPath != "":
		songDir, err = fetch.ImportSong(songsDir, importPath)
		if err != nil {
			log.Fatalf("analyze: importing -import %q: %v", importPath, err)
		}
	default:
		return ""
	}

	matches, err := filepath.Glob(filepath.Join(songDir, "song.*"))
	if err != nil || len(matches) == 0 {
		log.Fatalf("analyze: no acquired song file found under %s", songDir)
	}
	return matches[0]
}

// medianVoicedFreq returns the median f0 (Hz) among t's voiced frames, or
// 0 if none are voiced, for rendering a representative note name in the
// CLI summary line.
func medianVoicedFreq(t pitch.Track) float64 {
	var voiced []float64
	for _, f := range t.Frames {
		if f.Voiced() {
			voiced = append(voiced, *f.F0)
		}
	}
	if len(voiced) == 0 {
		return 0
	}
	sortFloats(voiced)
	return voiced[len(voiced)/2]
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// loadTrack turns path into a pitch track: a .json file is read as an
// already-extracted track (the offline pre-computation path), anything
// else is decoded as audio and run through the chosen extractor.
func loadTrack(path, algo string, cfg config.Config) pitch.Track {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("analyze: reading pitch track %s: %v", path, err)
		}
		var track pitch.Track
		if err := json.Unmarshal(raw, &track); err != nil {
			log.Fatalf("analyze: parsing pitch track %s: %v", path, err)
		}
		return track
	}

	pcm, err := audioio.Load(path)
	if err != nil {
		log.Fatalf("analyze: loading %s: %v", path, err)
	}
	return extract(algo, cfg, pcm)
}

func extract(algo string, cfg config.Config, pcm audioio.PCM) pitch.Track {
	var extractor pitch.Extractor
	switch strings.ToLower(algo) {
	case "yin":
		yc := pitch.DefaultYINConfig()
		yc.Hop, yc.FrameLen = cfg.Pitch.Hop, cfg.Pitch.FrameLen
		yc.Fmin, yc.Fmax = cfg.Pitch.Fmin, cfg.Pitch.Fmax
		yc.MaxSeconds = cfg.Pitch.MaxSeconds
		extractor = pitch.NewYIN(yc)
	case "fftpeak":
		fc := pitch.DefaultFFTConfig()
		fc.Hop, fc.FrameLen = cfg.Pitch.Hop, cfg.Pitch.FrameLen
		fc.Fmin, fc.Fmax = cfg.Pitch.Fmin, cfg.Pitch.Fmax
		fc.MaxSeconds = cfg.Pitch.MaxSeconds
		if cfg.Pitch.EnergyTh > 0 {
			fc.EnergyTh = cfg.Pitch.EnergyTh
		}
		extractor = pitch.NewFFTPeak(fc)
	default:
		log.Fatalf("analyze: unknown pitch algorithm %q (want yin or fftpeak)", algo)
	}
	return extractor.Extract(pcm.Samples, pcm.SR)
}

func alignLyrics(path string, ref *pitch.Track, cfg config.Config) []lyrics.Line {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("analyze: reading lyrics file: %v", err)
	}

	var src lyrics.Source
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lrc":
		src = lyrics.Source{Kind: lyrics.KindLRC, Text: string(raw)}
	case ".srt":
		src = lyrics.Source{Kind: lyrics.KindSRT, Text: string(raw)}
	default:
		src = lyrics.Source{Kind: lyrics.KindPlain, Text: string(raw)}
	}

	lines, err := lyrics.Align(ref, src, cfg.Analysis.LyricGapSec, cfg.Analysis.MinLineDuration)
	if err != nil {
		log.Fatalf("analyze: aligning lyrics: %v", err)
	}
	return lines
}

func writeJSON(path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("analyze: marshaling %s: %v", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("analyze: writing %s: %v", path, err)
	}
}
