package wavfile

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

func encodeTestWAV(t *testing.T, samples []int, sampleRate, channels int) []byte {
	t.Helper()
	ws := &memWriteSeeker{}
	enc := wav.NewEncoder(ws, sampleRate, 16, channels, 1)
	ib := &audio.IntBuffer{
		Data: samples,
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
	}
	require.NoError(t, enc.Write(ib))
	require.NoError(t, enc.Close())
	return ws.buf
}

// memWriteSeeker is a minimal in-memory io.WriteSeeker, since the wav
// encoder seeks back to patch chunk sizes into the header after writing.
type memWriteSeeker struct {
	buf []byte
	pos int64
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.buf)) + offset
	}
	return m.pos, nil
}

func TestDecode_MonoRoundTrip(t *testing.T) {
	samples := []int{100, -100, 200, -200, 300, -300}
	data := encodeTestWAV(t, samples, 44100, 1)

	decoded, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 44100, decoded.SampleRate)
	require.Equal(t, 1, decoded.Channels)
	require.Len(t, decoded.Samples, len(samples))
}

func TestDecode_InvalidData(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a wav file")))
	require.ErrorIs(t, err, ErrInvalidWAV)
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	require.Error(t, err)
}
