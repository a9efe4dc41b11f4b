/*
NAME
  frame.go

DESCRIPTION
  frame.go implements the lazy per-frame decoder over a C3D data
  section: one call to Next decodes one frame's point record and,
  when the file carries analog channels, its analog record.

  Encoding mode is derived once, at construction, from the header's
  scale field: scale<=0 means point and analog words are 4-byte IEEE
  floats; scale>0 means they are 2-byte integers, and point X/Y/Z
  coordinates are multiplied by |scale| (analog samples are not).

  Each point's fourth word carries a camera-visibility mask in its
  high byte and a residual error estimate in its low byte, except when
  the word's value is <=-0.01, which marks the point as occluded and
  forces both fields to a -0.01 sentinel. Analog samples are corrected
  by, in order, a per-channel offset subtraction, a per-channel scale
  multiplication and a single general-scale multiplication, each
  applied only when the corresponding ANALOG:* parameter is present.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package c3d

import (
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Point is one decoded 3-D marker sample.
type Point struct {
	X, Y, Z  float64
	Residual float64 // error estimate, or -0.01 if the point is occluded.
	Cameras  float64 // bitmask (bits 8..15, as a weighted sum) of contributing cameras, or -0.01 if occluded.
}

// PointRecord holds one Point per configured marker, in marker order.
type PointRecord []Point

// AnalogRecord holds one calibrated sample per configured analog
// channel, in channel order.
type AnalogRecord []float64

// FrameIterator lazily decodes frames from a C3D data section. It
// holds exclusive access to its byte source for its lifetime; call
// Close to release that hold back to the owning Adapter.
type FrameIterator struct {
	src     io.Reader
	log     logging.Logger
	release func()

	frameIdx  int
	lastFrame int

	isFloat        bool
	pointWordSize  int
	pointScale     float64
	absScale       float64
	analogWordSize int
	analogUnsigned bool

	pointCount  int
	analogCount int

	analogOffset   []float64
	analogScale    []float64
	analogGenScale float64

	pointBuf  []byte
	analogBuf []byte
}

// newFrameIterator seeks src to the data section described by h and
// prepares a FrameIterator, reading analog calibration parameters from
// dict where present.
func newFrameIterator(src io.ReadSeeker, h Header, dict *Dictionary, log logging.Logger) (*FrameIterator, error) {
	off := int64(h.DataStart-1) * blockSize
	if _, err := src.Seek(off, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "c3d: seek to data section")
	}

	it := &FrameIterator{
		src:            src,
		log:            log,
		frameIdx:       int(h.FrameFirst),
		lastFrame:      int(h.FrameLast),
		isFloat:        h.IsFloat(),
		pointCount:     int(h.PointCount),
		analogCount:    int(h.AnalogCount),
		absScale:       math.Abs(float64(h.Scale)),
		analogGenScale: 1,
	}
	if it.isFloat {
		it.pointWordSize = 4
		it.pointScale = 1
	} else {
		it.pointWordSize = 2
		it.pointScale = it.absScale
	}
	it.analogWordSize = it.pointWordSize

	if !it.isFloat {
		if p, ok := dict.Get("ANALOG:FORMAT"); ok {
			if s, ok := p.AsString(); ok && strings.TrimSpace(s) == "UNSIGNED" {
				it.analogUnsigned = true
			}
		}
	}
	if p, ok := dict.Get("ANALOG:OFFSET"); ok {
		if vals, ok := p.AsI16s(); ok {
			it.analogOffset = make([]float64, len(vals))
			for i, v := range vals {
				it.analogOffset[i] = float64(v)
			}
		}
	}
	if p, ok := dict.Get("ANALOG:SCALE"); ok {
		if vals, ok := p.AsF32s(); ok {
			it.analogScale = make([]float64, len(vals))
			for i, v := range vals {
				it.analogScale[i] = float64(v)
			}
		}
	}
	if p, ok := dict.Get("ANALOG:GEN_SCALE"); ok {
		if vals, ok := p.AsF32s(); ok && len(vals) > 0 {
			it.analogGenScale = float64(vals[0])
		}
	}

	it.pointBuf = make([]byte, 4*it.pointCount*it.pointWordSize)
	it.analogBuf = make([]byte, it.analogCount*it.analogWordSize)
	return it, nil
}

// Close releases the iterator's exclusive hold on its owning Adapter,
// allowing a new FrameIterator to be constructed. Close does not close
// the underlying byte source.
func (it *FrameIterator) Close() error {
	if it.release != nil {
		it.release()
		it.release = nil
	}
	return nil
}

// Next decodes the next frame. ok is false once the header's declared
// frame range is exhausted, or once the byte source runs out early -
// real-world files routinely under-report their frame count, so a
// short read ends the stream rather than returning an error.
func (it *FrameIterator) Next() (index int, points PointRecord, analog AnalogRecord, ok bool) {
	if it.frameIdx > it.lastFrame {
		return 0, nil, nil, false
	}

	if len(it.pointBuf) > 0 {
		if _, err := io.ReadFull(it.src, it.pointBuf); err != nil {
			if it.log != nil {
				it.log.Debug("c3d: frame stream ended before declared frame_last", "frame", it.frameIdx, "error", err)
			}
			return 0, nil, nil, false
		}
	}

	var analogRec AnalogRecord
	if it.analogCount > 0 {
		if _, err := io.ReadFull(it.src, it.analogBuf); err != nil {
			if it.log != nil {
				it.log.Debug("c3d: frame stream ended before declared frame_last", "frame", it.frameIdx, "error", err)
			}
			return 0, nil, nil, false
		}
		analogRec = it.decodeAnalog()
	}

	idx := it.frameIdx
	it.frameIdx++
	return idx, it.decodePoints(), analogRec, true
}

func (it *FrameIterator) decodePoints() PointRecord {
	out := make(PointRecord, it.pointCount)
	stride := 4 * it.pointWordSize
	for i := 0; i < it.pointCount; i++ {
		word := it.pointBuf[i*stride : (i+1)*stride]

		var x, y, z, w float64
		var wBits uint16
		if it.isFloat {
			x = float64(math.Float32frombits(binary.LittleEndian.Uint32(word[0:4])))
			y = float64(math.Float32frombits(binary.LittleEndian.Uint32(word[4:8])))
			z = float64(math.Float32frombits(binary.LittleEndian.Uint32(word[8:12])))
			w = float64(math.Float32frombits(binary.LittleEndian.Uint32(word[12:16])))
			// Only the high-order two bytes of the fourth word carry the
			// residual/camera bit pattern in float-mode files; the low
			// two are the float's mantissa noise.
			wBits = binary.LittleEndian.Uint16(word[14:16])
		} else {
			x = float64(int16(binary.LittleEndian.Uint16(word[0:2]))) * it.pointScale
			y = float64(int16(binary.LittleEndian.Uint16(word[2:4]))) * it.pointScale
			z = float64(int16(binary.LittleEndian.Uint16(word[4:6]))) * it.pointScale
			wRaw := int16(binary.LittleEndian.Uint16(word[6:8]))
			w = float64(wRaw)
			wBits = uint16(wRaw)
		}

		var residual, cameras float64
		if w <= -0.01 {
			residual, cameras = -0.01, -0.01
		} else {
			residual = float64(wBits&0x00FF) * it.absScale
			cameras = float64(wBits & 0xFF00)
		}
		out[i] = Point{X: x, Y: y, Z: z, Residual: residual, Cameras: cameras}
	}
	return out
}

func (it *FrameIterator) decodeAnalog() AnalogRecord {
	out := make(AnalogRecord, it.analogCount)
	ws := it.analogWordSize
	for i := 0; i < it.analogCount; i++ {
		raw := it.analogBuf[i*ws : (i+1)*ws]

		var v float64
		switch {
		case it.isFloat:
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw)))
		case it.analogUnsigned:
			v = float64(binary.LittleEndian.Uint16(raw))
		default:
			v = float64(int16(binary.LittleEndian.Uint16(raw)))
		}

		if i < len(it.analogOffset) {
			v -= it.analogOffset[i]
		}
		if i < len(it.analogScale) {
			v *= it.analogScale[i]
		}
		v *= it.analogGenScale

		out[i] = v
	}
	return out
}
