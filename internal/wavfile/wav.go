// Package wavfile decodes WAV audio into the raw PCM form the signal
// conditioner expects.
package wavfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned when the input is not a well-formed WAV stream.
var ErrInvalidWAV = errors.New("wavfile: invalid WAV data")

// Decoded holds interleaved int32 PCM samples plus the stream's format.
type Decoded struct {
	Samples    []int32
	SampleRate int
	Channels   int
}

const bufferFrames = 8192

// Decode reads a complete WAV stream from r.
func Decode(r io.Reader) (*Decoded, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	format := decoder.Format()
	buf := &audio.IntBuffer{
		Data:   make([]int, bufferFrames*format.NumChannels),
		Format: format,
	}

	var samples []int32
	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("wavfile: reading PCM data: %w", err)
		}
		if n == 0 {
			break
		}
		for i := 0; i < n; i++ {
			samples = append(samples, int32(buf.Data[i]))
		}
		if n < len(buf.Data) {
			break
		}
	}

	if len(samples) == 0 {
		return nil, ErrInvalidWAV
	}

	return &Decoded{
		Samples:    samples,
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
	}, nil
}
