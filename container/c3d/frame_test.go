/*
NAME
  frame_test.go

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
	"testing"
)

// assembleFile wraps entries and data in a header whose paramStart and
// dataStart are computed from the encoded parameter section's size, so
// callers only need to supply the header fields the scenario actually
// exercises.
func assembleFile(entries []testEntry, pointCount, analogCount, frameFirst, frameLast uint16, scale float32, analogPerFrame uint16, frameRate float32, data []byte) []byte {
	params := buildParameterSection(entries)
	const paramStart = 2
	dataStart := uint16(paramStart + len(params)/blockSize)
	header := buildHeader(paramStart, pointCount, analogCount, frameFirst, frameLast, scale, dataStart, analogPerFrame, frameRate)
	return buildFile(header, params, data)
}

func TestFrameIterator_IntegerPoints(t *testing.T) {
	frame1 := i16Bytes(4, 8, 12, 0x0105)
	frame2 := i16Bytes(-4, 0, 16, -1)
	data := append(append([]byte{}, frame1...), frame2...)

	file := assembleFile(nil, 1, 0, 1, 2, 0.25, 0, 0, data)

	a, err := Open(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	it, err := a.Reader()
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	defer it.Close()

	idx, points, analog, ok := it.Next()
	if !ok {
		t.Fatal("Next() (frame 1) = not ok")
	}
	if idx != 1 {
		t.Errorf("frame 1 index = %d, want 1", idx)
	}
	if len(analog) != 0 {
		t.Errorf("frame 1 analog = %v, want empty", analog)
	}
	want1 := Point{X: 1.0, Y: 2.0, Z: 3.0, Residual: 1.25, Cameras: 256}
	if len(points) != 1 || points[0] != want1 {
		t.Errorf("frame 1 points = %v, want [%v]", points, want1)
	}

	idx, points, _, ok = it.Next()
	if !ok {
		t.Fatal("Next() (frame 2) = not ok")
	}
	if idx != 2 {
		t.Errorf("frame 2 index = %d, want 2", idx)
	}
	want2 := Point{X: -1.0, Y: 0.0, Z: 4.0, Residual: -0.01, Cameras: -0.01}
	if len(points) != 1 || points[0] != want2 {
		t.Errorf("frame 2 points = %v, want [%v]", points, want2)
	}

	if _, _, _, ok = it.Next(); ok {
		t.Error("Next() past frame_last = ok, want false")
	}
}

func TestFrameIterator_AnalogCalibrationPipeline(t *testing.T) {
	entries := []testEntry{
		{name: "ANALOG", id: 1, isGroup: true},
		{name: "OFFSET", id: 1, dataLength: KindI16, dims: []uint8{2}, payload: i16Bytes(10, 20)},
		{name: "SCALE", id: 1, dataLength: KindF32, dims: []uint8{2}, payload: f32Bytes(2.0, 0.5)},
		{name: "GEN_SCALE", id: 1, dataLength: KindF32, dims: []uint8{1}, payload: f32Bytes(3.0)},
	}
	data := f32Bytes(15.0, 24.0)

	file := assembleFile(entries, 0, 2, 1, 1, -1.0, 0, 0, data)

	a, err := Open(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	it, err := a.Reader()
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	defer it.Close()

	_, points, analog, ok := it.Next()
	if !ok {
		t.Fatal("Next() = not ok")
	}
	if len(points) != 0 {
		t.Errorf("points = %v, want empty", points)
	}
	want := AnalogRecord{30.0, 6.0}
	if len(analog) != len(want) || analog[0] != want[0] || analog[1] != want[1] {
		t.Errorf("analog = %v, want %v", analog, want)
	}
}

func TestFrameIterator_UnsignedAnalogFormat(t *testing.T) {
	entries := []testEntry{
		{name: "ANALOG", id: 1, isGroup: true},
		{name: "FORMAT", id: 1, dataLength: KindChar, dims: []uint8{8}, payload: []byte("UNSIGNED")},
	}
	data := u16Bytes(0xFFFF, 0x0001)

	file := assembleFile(entries, 0, 2, 1, 1, 1.0, 0, 0, data)

	a, err := Open(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	it, err := a.Reader()
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	defer it.Close()

	_, _, analog, ok := it.Next()
	if !ok {
		t.Fatal("Next() = not ok")
	}
	want := AnalogRecord{65535.0, 1.0}
	if len(analog) != len(want) || analog[0] != want[0] || analog[1] != want[1] {
		t.Errorf("analog = %v, want %v", analog, want)
	}
}

func TestFrameIterator_EndsEarlyOnTruncatedStream(t *testing.T) {
	// Declares two frames but supplies only one frame's worth of bytes.
	frame1 := i16Bytes(1, 1, 1, 0)
	file := assembleFile(nil, 1, 0, 1, 2, 1.0, 0, 0, frame1)

	a, err := Open(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	it, err := a.Reader()
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	defer it.Close()

	if _, _, _, ok := it.Next(); !ok {
		t.Fatal("Next() (frame 1) = not ok, want ok")
	}
	if _, _, _, ok := it.Next(); ok {
		t.Error("Next() past a truncated stream = ok, want false")
	}
}

func TestAdapter_Reader_RejectsConcurrentUse(t *testing.T) {
	file := assembleFile(nil, 0, 0, 1, 1, 1.0, 0, 0, nil)

	a, err := Open(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	it, err := a.Reader()
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}

	if _, err := a.Reader(); err == nil {
		t.Error("second Reader() while the first is open = nil error, want ErrReaderInUse")
	}

	it.Close()

	if _, err := a.Reader(); err != nil {
		t.Errorf("Reader() after Close = %v, want nil error", err)
	}
}
