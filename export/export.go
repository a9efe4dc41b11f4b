/*
NAME
  export.go

DESCRIPTION
  export.go streams decoded C3D frames to a compact binary record
  format, each record length-prefixed and the whole stream Zstandard
  compressed, following the pooled encoder/decoder pattern the
  compress package uses for its Zstd compressor.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package export persists decoded C3D frame streams to a compact,
// Zstandard-compressed record file, and reads them back.
package export

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/ausocean/c3d/container/c3d"
)

var encoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Sprintf("export: failed to create zstd encoder: %v", err))
		}
		return enc
	},
}

var decoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("export: failed to create zstd decoder: %v", err))
		}
		return dec
	},
}

// Record is one exported frame: its index, its points (stored as 5
// float64 per marker: X, Y, Z, Residual, Cameras) and analog samples.
type Record struct {
	Index  int
	Points c3d.PointRecord
	Analog c3d.AnalogRecord
}

// WriteAll drains it and writes every frame to w as a single
// Zstandard-compressed block.
func WriteAll(w io.Writer, it *c3d.FrameIterator) error {
	var raw []byte
	for {
		idx, points, analog, ok := it.Next()
		if !ok {
			break
		}
		raw = appendRecord(raw, idx, points, analog)
	}

	enc := encoderPool.Get().(*zstd.Encoder)
	defer encoderPool.Put(enc)
	compressed := enc.EncodeAll(raw, nil)

	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("export: could not write compressed records: %w", err)
	}
	return nil
}

// ReadAll reads a Zstandard-compressed block produced by WriteAll and
// decodes it into a slice of Records.
func ReadAll(r io.Reader) ([]Record, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("export: could not read compressed records: %w", err)
	}

	dec := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(dec)
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("export: could not decompress records: %w", err)
	}

	var out []Record
	for len(raw) > 0 {
		rec, rest, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
		raw = rest
	}
	return out, nil
}

// appendRecord encodes one frame as:
//
//	index(i32) pointCount(u16) analogCount(u16)
//	pointCount*[x,y,z,residual,cameras (f64 each)]
//	analogCount*[value (f64)]
func appendRecord(buf []byte, idx int, points c3d.PointRecord, analog c3d.AnalogRecord) []byte {
	head := make([]byte, 8)
	binary.LittleEndian.PutUint32(head[0:4], uint32(int32(idx)))
	binary.LittleEndian.PutUint16(head[4:6], uint16(len(points)))
	binary.LittleEndian.PutUint16(head[6:8], uint16(len(analog)))
	buf = append(buf, head...)

	var f8 [8]byte
	putF64 := func(v float64) {
		binary.LittleEndian.PutUint64(f8[:], math.Float64bits(v))
		buf = append(buf, f8[:]...)
	}
	for _, p := range points {
		putF64(p.X)
		putF64(p.Y)
		putF64(p.Z)
		putF64(p.Residual)
		putF64(p.Cameras)
	}
	for _, v := range analog {
		putF64(v)
	}
	return buf
}

func decodeRecord(buf []byte) (Record, []byte, error) {
	if len(buf) < 8 {
		return Record{}, nil, fmt.Errorf("export: truncated record header")
	}
	idx := int(int32(binary.LittleEndian.Uint32(buf[0:4])))
	pointCount := int(binary.LittleEndian.Uint16(buf[4:6]))
	analogCount := int(binary.LittleEndian.Uint16(buf[6:8]))
	buf = buf[8:]

	need := pointCount*5*8 + analogCount*8
	if len(buf) < need {
		return Record{}, nil, fmt.Errorf("export: truncated record body")
	}

	readF64 := func() float64 {
		v := math.Float64frombits(binary.LittleEndian.Uint64(buf[:8]))
		buf = buf[8:]
		return v
	}

	points := make(c3d.PointRecord, pointCount)
	for i := range points {
		points[i] = c3d.Point{
			X: readF64(), Y: readF64(), Z: readF64(),
			Residual: readF64(), Cameras: readF64(),
		}
	}
	analog := make(c3d.AnalogRecord, analogCount)
	for i := range analog {
		analog[i] = readF64()
	}

	return Record{Index: idx, Points: points, Analog: analog}, buf, nil
}
