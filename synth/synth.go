package synth

import (
	"io"
	"math"
	"math/rand"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/pitch"
	"github.com/HisarCS/MusicCo/util"
)

func samplesFor(duration float64) int {
	return int(duration * constants.SampleRate)
}

// PianoWave generates a piano-like mono waveform: fundamental plus two
// harmonics, 20 ms attack and 50 ms release to avoid clicks.
func PianoWave(frequency, duration float64) []float64 {
	n := samplesFor(duration)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / constants.SampleRate
		res[i] = math.Sin(2*math.Pi*frequency*t)*0.6 +
			math.Sin(2*math.Pi*frequency*2*t)*0.2 +
			math.Sin(2*math.Pi*frequency*3*t)*0.1
	}
	applyEnvelope(res, 0.02, 0, 1, 0.05)
	return res
}

// ElectroGuitarWave generates a distorted guitar-like mono waveform: a
// sine/sawtooth mix through a tanh soft clip, ADSR with sustain 0.7 and a
// 6 Hz tremolo.
func ElectroGuitarWave(frequency, duration float64) []float64 {
	n := samplesFor(duration)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / constants.SampleRate
		sawtooth := 2 * (t*frequency - math.Floor(0.5+t*frequency))
		mixed := math.Sin(2*math.Pi*frequency*t)*0.5 +
			sawtooth*0.2 +
			math.Sin(2*math.Pi*frequency*2*t)*0.15 +
			math.Sin(2*math.Pi*frequency*3*t)*0.1
		distorted := math.Tanh(mixed * 2.5)
		tremolo := 1.0 + 0.1*math.Sin(2*math.Pi*6.0*t)
		res[i] = distorted * tremolo
	}
	applyEnvelope(res, 0.01, 0.1, 0.7, 0.1)
	return res
}

// ErrorBuzz generates the dissonant miss sound: three clashing sines plus
// gaussian noise, 100 ms release, at half gain.
func ErrorBuzz(duration float64) []float64 {
	n := samplesFor(duration)
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / constants.SampleRate
		res[i] = (math.Sin(2*math.Pi*440*t)*0.3 +
			math.Sin(2*math.Pi*466*t)*0.3 +
			math.Sin(2*math.Pi*380*t)*0.3 +
			rand.NormFloat64()*0.2) * 0.5
	}
	applyEnvelope(res, 0, 0, 1, 0.1)
	return res
}

// applyEnvelope shapes samples in place: linear attack to 1, linear decay to
// the sustain level, linear release to 0 at the tail. Zero durations skip
// their stage.
func applyEnvelope(samples []float64, attack, decay, sustain, release float64) {
	n := len(samples)
	attackN := int(attack * constants.SampleRate)
	decayN := int(decay * constants.SampleRate)
	releaseN := int(release * constants.SampleRate)

	for i := 0; i < attackN && i < n; i++ {
		samples[i] *= float64(i) / float64(attackN)
	}
	if decayN > 0 && n > attackN+decayN {
		for i := 0; i < decayN; i++ {
			level := 1 - (1-sustain)*float64(i)/float64(decayN)
			samples[attackN+i] *= level
		}
		for i := attackN + decayN; i < n; i++ {
			samples[i] *= sustain
		}
	}
	if releaseN > 0 && n > releaseN {
		start := 1.0
		if decayN > 0 {
			start = sustain
		}
		for i := 0; i < releaseN; i++ {
			samples[n-releaseN+i] *= start * (1 - float64(i)/float64(releaseN))
		}
	}
}

// Pan computes the stereo position of a note between 0 (left) and 1 (right):
// lower octaves left, higher right. When the whole track sits in one octave,
// position falls back to the note's degree within the scale.
func Pan(rec model.NoteRecord, minOctave, maxOctave int) float64 {
	octaveRange := util.Max(1, maxOctave-minOctave)
	if octaveRange > 1 {
		return 0.1 + 0.8*float64(rec.Octave-minOctave)/float64(octaveRange)
	}
	idx := pitch.Index(rec.Note)
	if idx < 0 {
		return 0.5
	}
	return 0.1 + 0.8*float64(idx)/float64(len(pitch.Names())-1)
}

// RenderTrack mixes all records onto a stereo int16 timeline at their start
// offsets. Notes with names outside the solfege vocabulary have no pitch and
// are skipped, as playback always did.
func RenderTrack(records []model.NoteRecord) *audio.IntBuffer {
	var end float64
	minOctave, maxOctave := math.MaxInt, math.MinInt
	for _, rec := range records {
		end = math.Max(end, rec.End())
		minOctave = util.Min(minOctave, rec.Octave)
		maxOctave = util.Max(maxOctave, rec.Octave)
	}

	total := samplesFor(end)
	left := make([]float64, total)
	right := make([]float64, total)

	for _, rec := range records {
		frequency, ok := pitch.Frequency(rec.Note, rec.Octave)
		if !ok {
			logrus.Warnf("skipping unplayable note %v%v", rec.Note, rec.Octave)
			continue
		}
		var wave []float64
		switch rec.Instrument {
		case model.ElectroGuitar:
			wave = ElectroGuitarWave(frequency, rec.Duration)
		default:
			wave = PianoWave(frequency, rec.Duration)
		}
		pan := Pan(rec, minOctave, maxOctave)
		gain := float64(rec.Volume) / 100
		offset := samplesFor(rec.Start)
		for i, s := range wave {
			if offset+i >= total {
				break
			}
			left[offset+i] += s * gain * (1 - pan)
			right[offset+i] += s * gain * pan
		}
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  constants.SampleRate,
		},
		Data:           make([]int, total*2),
		SourceBitDepth: 16,
	}
	for i := 0; i < total; i++ {
		buf.Data[2*i] = toInt16(left[i])
		buf.Data[2*i+1] = toInt16(right[i])
	}
	return buf
}

func toInt16(v float64) int {
	clamped := math.Max(-1, math.Min(1, v))
	return int(clamped * 32767)
}

// WriteWAV encodes a buffer as 16-bit PCM.
func WriteWAV(w io.WriteSeeker, buf *audio.IntBuffer) error {
	e := wav.NewEncoder(w, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels, 1)
	if err := e.Write(buf); err != nil {
		return err
	}
	return e.Close()
}
