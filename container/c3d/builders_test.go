/*
NAME
  builders_test.go

DESCRIPTION
  builders_test.go assembles synthetic C3D byte streams for the tests
  in this package: a 512-byte header, a pointer-linked parameter
  section, and raw data section bytes.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package c3d

import (
	"bytes"
	"encoding/binary"
	"math"
)

// testEntry describes one group or parameter entry to encode.
type testEntry struct {
	name    string
	id      int8 // absolute group id; sign is derived from isGroup
	isGroup bool
	locked  bool
	desc    string

	dataLength Kind
	dims       []uint8
	payload    []byte
}

// buildParameterSection encodes entries into a block-padded parameter
// section, including its 4-byte sub-header, ready to follow a header
// record in a synthetic file.
func buildParameterSection(entries []testEntry) []byte {
	type built struct {
		nameLen int8
		id      int8
		name    string
		trailer []byte
	}

	built_ := make([]built, 0, len(entries))
	for _, e := range entries {
		nameLen := int8(len(e.name))
		if e.locked {
			nameLen = -nameLen
		}
		id := e.id
		if e.isGroup {
			id = -e.id
		}

		var trailer bytes.Buffer
		if e.isGroup {
			trailer.WriteByte(byte(len(e.desc)))
			trailer.WriteString(e.desc)
		} else {
			trailer.WriteByte(byte(int8(e.dataLength)))
			trailer.WriteByte(byte(len(e.dims)))
			trailer.Write(e.dims)
			trailer.Write(e.payload)
			trailer.WriteByte(byte(len(e.desc)))
			trailer.WriteString(e.desc)
		}
		built_ = append(built_, built{nameLen: nameLen, id: id, name: e.name, trailer: trailer.Bytes()})
	}

	var body bytes.Buffer
	for i, be := range built_ {
		body.WriteByte(byte(be.nameLen))
		body.WriteByte(byte(be.id))
		body.WriteString(be.name)

		var offset int16
		if i < len(built_)-1 {
			offset = int16(2 + len(be.trailer))
		}
		var offBuf [2]byte
		binary.LittleEndian.PutUint16(offBuf[:], uint16(offset))
		body.Write(offBuf[:])
		body.Write(be.trailer)
	}

	raw := body.Bytes()
	blocks := (4 + len(raw) + blockSize - 1) / blockSize
	if blocks == 0 {
		blocks = 1
	}
	padded := make([]byte, blocks*blockSize)
	padded[2] = byte(blocks)
	padded[3] = paramMagicWord
	copy(padded[4:], raw)
	return padded
}

// buildHeader encodes a 512-byte header record.
func buildHeader(paramStart uint8, pointCount, analogCount, frameFirst, frameLast uint16, scale float32, dataStart, analogPerFrame uint16, frameRate float32) []byte {
	buf := make([]byte, blockSize)
	buf[0] = paramStart
	buf[1] = headerMagicWord
	binary.LittleEndian.PutUint16(buf[2:4], pointCount)
	binary.LittleEndian.PutUint16(buf[4:6], analogCount)
	binary.LittleEndian.PutUint16(buf[6:8], frameFirst)
	binary.LittleEndian.PutUint16(buf[8:10], frameLast)
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(scale))
	binary.LittleEndian.PutUint16(buf[16:18], dataStart)
	binary.LittleEndian.PutUint16(buf[18:20], analogPerFrame)
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(frameRate))
	return buf
}

// buildFile concatenates a header, parameter section, and data section
// into one synthetic C3D byte stream. The caller is responsible for
// paramStart/dataStart in the header matching the sections' sizes.
func buildFile(header, params, data []byte) []byte {
	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(params)
	buf.Write(data)
	return buf.Bytes()
}

func i16Bytes(vs ...int16) []byte {
	buf := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}

func f32Bytes(vs ...float32) []byte {
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func u16Bytes(vs ...uint16) []byte {
	buf := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}
