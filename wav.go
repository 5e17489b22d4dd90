package sightread

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteWav writes an interleaved stereo buffer as a .wav file at SampleRate.
// With pcm16 the samples are stored as 16-bit integers, otherwise as 32-bit
// floats.
func WriteWav(w io.Writer, buffer []float32, pcm16 bool) error {
	buf := new(bytes.Buffer)
	wavHeader(len(buffer), pcm16, buf)
	if err := samplesTo(buf, buffer, pcm16); err != nil {
		return fmt.Errorf("WriteWav failed: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("WriteWav failed: %w", err)
	}
	return nil
}

func samplesTo(buf *bytes.Buffer, data []float32, pcm16 bool) error {
	var err error
	if pcm16 {
		ints := make([]int16, len(data))
		for i, v := range data {
			ints[i] = int16(clamp(int(v*math.MaxInt16), math.MinInt16, math.MaxInt16))
		}
		err = binary.Write(buf, binary.LittleEndian, ints)
	} else {
		err = binary.Write(buf, binary.LittleEndian, data)
	}
	if err != nil {
		return fmt.Errorf("could not write samples: %w", err)
	}
	return nil
}

// wavHeader writes the RIFF header for bufferLength interleaved stereo
// samples. Float data gets the extended fmt chunk and a fact chunk.
func wavHeader(bufferLength int, pcm16 bool, buf *bytes.Buffer) {
	const numChannels = 2
	var bytesPerSample, chunkSize, fmtChunkSize, waveFormat int
	if pcm16 {
		bytesPerSample = 2
		chunkSize = 36 + bytesPerSample*bufferLength
		fmtChunkSize = 16
		waveFormat = 1 // PCM
	} else {
		bytesPerSample = 4
		chunkSize = 50 + bytesPerSample*bufferLength
		fmtChunkSize = 18
		waveFormat = 3 // IEEE float
	}
	le := func(v any) { binary.Write(buf, binary.LittleEndian, v) }
	buf.WriteString("RIFF")
	le(uint32(chunkSize))
	buf.WriteString("WAVEfmt ")
	le(uint32(fmtChunkSize))
	le(uint16(waveFormat))
	le(uint16(numChannels))
	le(uint32(SampleRate))
	le(uint32(SampleRate * numChannels * bytesPerSample))
	le(uint16(numChannels * bytesPerSample))
	le(uint16(8 * bytesPerSample))
	if !pcm16 {
		le(uint16(0)) // extension size
		buf.WriteString("fact")
		le(uint32(4))
		le(uint32(bufferLength / numChannels))
	}
	buf.WriteString("data")
	le(uint32(bytesPerSample * bufferLength))
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
