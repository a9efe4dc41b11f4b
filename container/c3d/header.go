/*
NAME
  header.go

DESCRIPTION
  header.go decodes the fixed 512-byte C3D header record.

  ==========================================================================
  | word | bytes | field                                                   |
  ==========================================================================
  | 1    | 0-1   | parameter_start (u8), magic_word (u8, must be 0x50)     |
  --------------------------------------------------------------------------
  | 2    | 2-3   | point_counts (u16)                                      |
  --------------------------------------------------------------------------
  | 3    | 4-5   | analog_counts (u16)                                     |
  --------------------------------------------------------------------------
  | 4    | 6-7   | frame_first (u16, 1-based)                              |
  --------------------------------------------------------------------------
  | 5    | 8-9   | frame_last (u16, 1-based inclusive)                     |
  --------------------------------------------------------------------------
  | 6    | 10-11 | max interpolation gap (unused by the core)              |
  --------------------------------------------------------------------------
  | 7-8  | 12-15 | scale (f32); <=0 means IEEE float frames, >0 means i16  |
  --------------------------------------------------------------------------
  | 9    | 16-17 | data_start (u16, 1-based)                               |
  --------------------------------------------------------------------------
  | 10   | 18-19 | analog_per_frame (u16)                                  |
  --------------------------------------------------------------------------
  | 11-12| 20-23 | frame_rate (f32, Hz)                                    |
  --------------------------------------------------------------------------
  | -    | 24-511| event table and reserved fields, retained verbatim      |
  --------------------------------------------------------------------------

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

	"github.com/pkg/errors"
)

// blockSize is the fixed block granularity of a C3D file: headers,
// parameter sections and data sections are all addressed in units of
// blockSize bytes.
const blockSize = 512

const headerMagicWord = 0x50

// Header holds the fields of the 512-byte C3D header record that the
// rest of the package consumes. Raw retains the entire record verbatim
// for pass-through of fields (the event table, reserved areas) that
// this package does not interpret.
type Header struct {
	ParameterStart uint8
	PointCount     uint16
	AnalogCount    uint16
	FrameFirst     uint16
	FrameLast      uint16
	Scale          float32
	DataStart      uint16
	AnalogPerFrame uint16
	FrameRate      float32
	Raw            [blockSize]byte
}

// IsFloat reports whether point and analog samples are stored as IEEE
// 754 floats (Scale <= 0) rather than scaled 16-bit integers (Scale > 0).
func (h Header) IsFloat() bool { return h.Scale <= 0 }

// ReadHeader reads exactly 512 bytes from r and decodes them as a C3D
// header. It returns ErrTruncated if fewer than 512 bytes are
// available, or ErrBadMagic if the magic word does not match.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	n, err := io.ReadFull(r, h.Raw[:])
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return Header{}, errors.Wrapf(ErrTruncated, "header: read %d of %d bytes", n, blockSize)
		}
		return Header{}, errors.Wrap(err, "header: read")
	}

	if h.Raw[1] != headerMagicWord {
		return Header{}, errors.Wrapf(ErrBadMagic, "header: magic word 0x%02x", h.Raw[1])
	}

	h.ParameterStart = h.Raw[0]
	h.PointCount = binary.LittleEndian.Uint16(h.Raw[2:4])
	h.AnalogCount = binary.LittleEndian.Uint16(h.Raw[4:6])
	h.FrameFirst = binary.LittleEndian.Uint16(h.Raw[6:8])
	h.FrameLast = binary.LittleEndian.Uint16(h.Raw[8:10])
	h.Scale = math.Float32frombits(binary.LittleEndian.Uint32(h.Raw[12:16]))
	h.DataStart = binary.LittleEndian.Uint16(h.Raw[16:18])
	h.AnalogPerFrame = binary.LittleEndian.Uint16(h.Raw[18:20])
	h.FrameRate = math.Float32frombits(binary.LittleEndian.Uint32(h.Raw[20:24]))

	return h, nil
}
