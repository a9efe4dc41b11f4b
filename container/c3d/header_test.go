/*
NAME
  header_test.go

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
	"errors"
	"testing"
)

func TestReadHeader_BadMagic(t *testing.T) {
	buf := buildHeader(2, 1, 0, 1, 1, 1, 3, 0, 0)
	buf[1] = 0x51 // not the C3D magic word.

	_, err := ReadHeader(bytes.NewReader(buf))
	if err == nil {
		t.Fatal("expected an error for a bad magic word, got nil")
	}
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("got error %v, want one wrapping ErrBadMagic", err)
	}
}

func TestReadHeader_Truncated(t *testing.T) {
	buf := buildHeader(2, 1, 0, 1, 1, 1, 3, 0, 0)[:200]

	_, err := ReadHeader(bytes.NewReader(buf))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("got error %v, want one wrapping ErrTruncated", err)
	}
}

func TestReadHeader_Fields(t *testing.T) {
	buf := buildHeader(2, 1, 2, 1, 10, -1.0, 4, 2, 200.0)

	h, err := ReadHeader(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	want := Header{
		ParameterStart: 2,
		PointCount:     1,
		AnalogCount:    2,
		FrameFirst:     1,
		FrameLast:      10,
		Scale:          -1.0,
		DataStart:      4,
		AnalogPerFrame: 2,
		FrameRate:      200.0,
	}
	got := h
	got.Raw = [blockSize]byte{}
	want.Raw = [blockSize]byte{}
	if got != want {
		t.Errorf("ReadHeader = %+v, want %+v", got, want)
	}
	if !h.IsFloat() {
		t.Error("IsFloat() = false for scale <= 0, want true")
	}
}

func TestHeader_IsFloat(t *testing.T) {
	cases := []struct {
		scale float32
		want  bool
	}{
		{-1.0, true},
		{0, true},
		{0.25, false},
	}
	for _, c := range cases {
		h := Header{Scale: c.scale}
		if got := h.IsFloat(); got != c.want {
			t.Errorf("Header{Scale: %v}.IsFloat() = %v, want %v", c.scale, got, c.want)
		}
	}
}
