/*
NAME
  query_test.go

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

func analogGroupFixture() *Dictionary {
	entries := []testEntry{
		{name: "ANALOG", id: 1, isGroup: true},
		{
			name: "OFFSET", id: 1, dataLength: KindI16,
			dims: []uint8{2}, payload: i16Bytes(10, 20),
		},
	}
	params := buildParameterSection(entries)
	dict, err := decodeParameters(bytes.NewReader(params), Header{ParameterStart: 1}, nil)
	if err != nil {
		panic(err)
	}
	return dict
}

func TestDictionary_Get_SeparatorEquivalence(t *testing.T) {
	dict := analogGroupFixture()

	pColon, ok := dict.Get("ANALOG:OFFSET")
	if !ok {
		t.Fatal(`Get("ANALOG:OFFSET") missing`)
	}
	pDot, ok := dict.Get("ANALOG.OFFSET")
	if !ok {
		t.Fatal(`Get("ANALOG.OFFSET") missing`)
	}
	if pColon != pDot {
		t.Errorf("Get with ':' and '.' separators returned different parameters: %p != %p", pColon, pDot)
	}
}

func TestDictionary_Get_NoSeparator(t *testing.T) {
	dict := analogGroupFixture()
	if _, ok := dict.Get("ANALOGOFFSET"); ok {
		t.Error(`Get("ANALOGOFFSET") = ok, want not-ok without a separator`)
	}
}

func TestDictionary_AnalogLabels_ConcatenatesSplitParameters(t *testing.T) {
	entries := []testEntry{
		{name: "ANALOG", id: 1, isGroup: true},
		{
			name: "LABELS", id: 1, dataLength: KindChar,
			dims: []uint8{4, 2}, payload: []byte("CH01CH02"),
		},
		{
			name: "LABELS2", id: 1, dataLength: KindChar,
			dims: []uint8{4, 1}, payload: []byte("CH03"),
		},
	}
	params := buildParameterSection(entries)
	dict, err := decodeParameters(bytes.NewReader(params), Header{ParameterStart: 1}, nil)
	if err != nil {
		t.Fatalf("decodeParameters: %v", err)
	}

	labels, ok := dict.AnalogLabels()
	if !ok {
		t.Fatal("AnalogLabels() not ok")
	}
	want := []string{"CH01", "CH02", "CH03"}
	if len(labels) != len(want) {
		t.Fatalf("AnalogLabels() = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("AnalogLabels()[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestDictionary_PointLabels(t *testing.T) {
	entries := []testEntry{
		{name: "POINT", id: 1, isGroup: true},
		{
			name: "LABELS", id: 1, dataLength: KindChar,
			dims: []uint8{4, 2}, payload: []byte("HIP1KNE1"),
		},
	}
	params := buildParameterSection(entries)
	dict, err := decodeParameters(bytes.NewReader(params), Header{ParameterStart: 1}, nil)
	if err != nil {
		t.Fatalf("decodeParameters: %v", err)
	}

	labels, ok := dict.PointLabels()
	if !ok {
		t.Fatal("PointLabels() not ok")
	}
	if len(labels) != 2 {
		t.Fatalf("PointLabels() = %v, want 2 entries", labels)
	}
}
