/*
NAME
  parameter.go

DESCRIPTION
  parameter.go decodes the C3D parameter section: a self-descriptive,
  pointer-linked binary dictionary of groups and parameters.

  The section begins with a 4-byte sub-header (two reserved bytes, a
  parameter block count, and a magic word of 0x54), followed by
  parameter_block_count*512-4 bytes of tightly packed entries. Each
  entry is either a group or a parameter, distinguished by the sign of
  its id byte:

  ==========================================================================
  | offset | field            | meaning                                   |
  ==========================================================================
  | 0      | name_len (i8)    | abs = name length, sign = locked          |
  --------------------------------------------------------------------------
  | 1      | id (i8)          | >0 parameter of group |id|, <0 group |id| |
  --------------------------------------------------------------------------
  | 2      | name             | |name_len| ASCII bytes                    |
  --------------------------------------------------------------------------
  | ...    | offset (i16 LE)  | byte distance from this field to the next |
  --------------------------------------------------------------------------

  The offset field is authoritative: the next entry always starts at
  offsetFieldPos+offset, never at however many bytes the trailer
  decoder happened to consume. A parameter may reference a group that
  has not yet appeared; groups are staged by numeric id and rekeyed by
  name once the whole section has been walked.

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
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

const paramMagicWord = 0x54

// Parameter is one decoded parameter entry: a typed, dimensioned
// sequence of scalar Values plus its description and locked flag.
type Parameter struct {
	Name        string
	Description string
	Locked      bool
	DataLength  Kind
	Dims        []uint8
	Values      []Value
}

// AsString returns a char parameter's values joined into a string,
// trimmed of trailing spaces and NUL padding. ok is false if the
// parameter is not a char parameter.
func (p *Parameter) AsString() (string, bool) {
	if p == nil || p.DataLength != KindChar {
		return "", false
	}
	b := make([]byte, len(p.Values))
	for i, v := range p.Values {
		b[i], _ = v.AsChar()
	}
	return trimPadding(string(b)), true
}

// AsBytes returns a byte parameter's values. ok is false if the
// parameter is not a byte parameter.
func (p *Parameter) AsBytes() ([]byte, bool) {
	if p == nil || p.DataLength != KindByte {
		return nil, false
	}
	out := make([]byte, len(p.Values))
	for i, v := range p.Values {
		out[i], _ = v.AsByte()
	}
	return out, true
}

// AsI16s returns an i16 parameter's values. ok is false if the
// parameter is not an i16 parameter.
func (p *Parameter) AsI16s() ([]int16, bool) {
	if p == nil || p.DataLength != KindI16 {
		return nil, false
	}
	out := make([]int16, len(p.Values))
	for i, v := range p.Values {
		out[i], _ = v.AsI16()
	}
	return out, true
}

// AsF32s returns an f32 parameter's values. ok is false if the
// parameter is not an f32 parameter.
func (p *Parameter) AsF32s() ([]float32, bool) {
	if p == nil || p.DataLength != KindF32 {
		return nil, false
	}
	out := make([]float32, len(p.Values))
	for i, v := range p.Values {
		out[i], _ = v.AsF32()
	}
	return out, true
}

// ValueStrings formats p's values for display, one string per element,
// regardless of kind. It is intended for dumping a parameter's contents
// rather than for programmatic consumption; callers that need typed
// values should use AsString/AsBytes/AsI16s/AsF32s instead.
func (p *Parameter) ValueStrings() []string {
	out := make([]string, len(p.Values))
	for i, v := range p.Values {
		switch v.Kind() {
		case KindChar:
			b, _ := v.AsChar()
			out[i] = string(b)
		case KindByte:
			b, _ := v.AsByte()
			out[i] = fmt.Sprintf("%d", b)
		case KindI16:
			n, _ := v.AsI16()
			out[i] = fmt.Sprintf("%d", n)
		case KindF32:
			f, _ := v.AsF32()
			out[i] = fmt.Sprintf("%g", f)
		}
	}
	return out
}

// Group is a named collection of parameters.
type Group struct {
	Name        string
	Description string
	Locked      bool
	Parameters  map[string]*Parameter
}

// Dictionary is the fully decoded parameter section: groups keyed by
// name, each holding its parameters keyed by name.
type Dictionary struct {
	Groups map[string]*Group
}

// stagingGroup accumulates a group's fields as the section is walked;
// its numeric id is the only stable key until the whole section has
// been read, since a parameter's group entry may arrive after it.
type stagingGroup struct {
	id          int
	name        string
	description string
	locked      bool
	named       bool
	parameters  map[string]*Parameter
}

// decodeParameters reads and parses the parameter section of a C3D
// file, assuming rs is already known to hold a valid header h. It
// seeks rs to the parameter section itself.
func decodeParameters(rs io.ReadSeeker, h Header, log logging.Logger) (*Dictionary, error) {
	off := int64(h.ParameterStart-1) * blockSize
	if _, err := rs.Seek(off, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "c3d: seek to parameter section")
	}

	var sub [4]byte
	if _, err := io.ReadFull(rs, sub[:]); err != nil {
		return nil, errors.Wrap(ErrTruncated, "c3d: parameter sub-header")
	}
	if sub[3] != paramMagicWord {
		return nil, errors.Wrapf(ErrBadMagic, "c3d: parameter magic word 0x%02x", sub[3])
	}

	blockCount := int(sub[2])
	if blockCount == 0 {
		return nil, errors.Wrap(ErrMalformedParameter, "c3d: parameter block count is zero")
	}

	buf := make([]byte, blockCount*blockSize-4)
	if _, err := io.ReadFull(rs, buf); err != nil {
		return nil, errors.Wrap(ErrTruncated, "c3d: parameter section body")
	}

	groups := make(map[int]*stagingGroup)
	groupFor := func(id int) *stagingGroup {
		g, ok := groups[id]
		if !ok {
			g = &stagingGroup{id: id, parameters: make(map[string]*Parameter)}
			groups[id] = g
		}
		return g
	}

	c := 0
	for {
		if len(buf)-c < 2 || buf[c] == 0 || buf[c+1] == 0 {
			break
		}

		nameLenRaw := int8(buf[c])
		id := int8(buf[c+1])
		locked := nameLenRaw < 0
		n := int(nameLenRaw)
		if n < 0 {
			n = -n
		}

		if c+2+n+2 > len(buf) {
			return nil, errors.Wrap(ErrMalformedParameter, "c3d: entry name runs past the parameter buffer")
		}
		name := string(buf[c+2 : c+2+n])
		if !utf8.ValidString(name) {
			return nil, errors.Wrap(ErrMalformedParameter, "c3d: entry name is not valid text")
		}
		offsetFieldPos := c + 2 + n
		offset := int16(binary.LittleEndian.Uint16(buf[offsetFieldPos : offsetFieldPos+2]))
		trailerStart := offsetFieldPos + 2

		if id > 0 {
			p, err := decodeParameterTrailer(buf, trailerStart, name, locked)
			if err != nil {
				return nil, err
			}
			if !utf8.ValidString(p.Description) {
				return nil, errors.Wrap(ErrMalformedParameter, "c3d: parameter description is not valid text")
			}
			g := groupFor(int(id))
			g.parameters[p.Name] = p
			if log != nil {
				log.Debug("c3d: decoded parameter", "group_id", id, "name", p.Name)
			}
		} else {
			desc, err := decodeGroupTrailer(buf, trailerStart)
			if err != nil {
				return nil, err
			}
			if !utf8.ValidString(desc) {
				return nil, errors.Wrap(ErrMalformedParameter, "c3d: group description is not valid text")
			}
			g := groupFor(int(-id))
			g.name = name
			g.description = desc
			g.locked = locked
			g.named = true
			if log != nil {
				log.Debug("c3d: decoded group", "group_id", -id, "name", name)
			}
		}

		if offset == 0 {
			break
		}
		next := offsetFieldPos + int(offset)
		if next <= offsetFieldPos || next > len(buf) {
			return nil, errors.Wrapf(ErrMalformedParameter, "c3d: entry offset steps outside the parameter buffer (%d)", next)
		}
		c = next
	}

	dict := &Dictionary{Groups: make(map[string]*Group, len(groups))}
	for id, g := range groups {
		name := g.name
		if !g.named {
			name = fmt.Sprintf("GROUP_%d", id)
			if log != nil {
				log.Warning("c3d: parameter references a group with no group entry", "id", id)
			}
		}
		dict.Groups[name] = &Group{
			Name:        name,
			Description: g.description,
			Locked:      g.locked,
			Parameters:  g.parameters,
		}
	}
	return dict, nil
}

// decodeParameterTrailer parses the data_length/num_dims/dims/payload/
// desc_len/description trailer of a parameter entry starting at pos in
// buf, and returns the assembled Parameter.
func decodeParameterTrailer(buf []byte, pos int, name string, locked bool) (*Parameter, error) {
	if pos+2 > len(buf) {
		return nil, errors.Wrap(ErrMalformedParameter, "c3d: parameter trailer truncated before dims")
	}
	dataLength := Kind(int8(buf[pos]))
	numDims := int(buf[pos+1])
	pos += 2

	if pos+numDims > len(buf) {
		return nil, errors.Wrap(ErrMalformedParameter, "c3d: parameter dims run past the parameter buffer")
	}
	dims := make([]uint8, numDims)
	copy(dims, buf[pos:pos+numDims])
	pos += numDims

	elemCount := 1
	for _, d := range dims {
		elemCount *= int(d)
	}
	width := dataLength.width()
	if width == 0 {
		return nil, errors.Wrapf(ErrMalformedParameter, "c3d: unsupported parameter data length %d", int8(dataLength))
	}
	payloadLen := elemCount * width
	if pos+payloadLen > len(buf) {
		return nil, errors.Wrap(ErrMalformedParameter, "c3d: parameter payload runs past the parameter buffer")
	}
	values, err := decodeElements(dataLength, buf[pos:pos+payloadLen])
	if err != nil {
		return nil, err
	}
	pos += payloadLen

	if pos >= len(buf) {
		return nil, errors.Wrap(ErrMalformedParameter, "c3d: parameter description length missing")
	}
	descLen := int(buf[pos])
	pos++
	if pos+descLen > len(buf) {
		return nil, errors.Wrap(ErrMalformedParameter, "c3d: parameter description runs past the parameter buffer")
	}
	desc := string(buf[pos : pos+descLen])

	return &Parameter{
		Name:        name,
		Description: desc,
		Locked:      locked,
		DataLength:  dataLength,
		Dims:        dims,
		Values:      values,
	}, nil
}

// decodeGroupTrailer parses the desc_len/description trailer of a
// group entry starting at pos in buf, and returns the description.
func decodeGroupTrailer(buf []byte, pos int) (string, error) {
	if pos >= len(buf) {
		return "", errors.Wrap(ErrMalformedParameter, "c3d: group description length missing")
	}
	descLen := int(buf[pos])
	pos++
	if pos+descLen > len(buf) {
		return "", errors.Wrap(ErrMalformedParameter, "c3d: group description runs past the parameter buffer")
	}
	return string(buf[pos : pos+descLen]), nil
}

// decodeElements splits payload into elements of the given kind.
func decodeElements(k Kind, payload []byte) ([]Value, error) {
	width := k.width()
	if width == 0 {
		return nil, errors.Wrapf(ErrMalformedParameter, "c3d: unsupported element kind %d", int8(k))
	}
	if len(payload)%width != 0 {
		return nil, errors.Wrap(ErrMalformedParameter, "c3d: payload size is not a multiple of the element width")
	}

	n := len(payload) / width
	values := make([]Value, n)
	for i := 0; i < n; i++ {
		chunk := payload[i*width : (i+1)*width]
		switch k {
		case KindChar:
			values[i] = charValue(chunk[0])
		case KindByte:
			values[i] = byteValue(chunk[0])
		case KindI16:
			values[i] = i16Value(int16(binary.LittleEndian.Uint16(chunk)))
		case KindF32:
			values[i] = f32Value(math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
		}
	}
	return values, nil
}

// trimPadding strips trailing spaces and NUL bytes, the two paddings
// C3D writers use for fixed-width char parameters.
func trimPadding(s string) string {
	i := len(s)
	for i > 0 && (s[i-1] == ' ' || s[i-1] == 0) {
		i--
	}
	return s[:i]
}
