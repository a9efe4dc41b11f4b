/*
NAME
  query.go

DESCRIPTION
  query.go resolves GROUP:NAME / GROUP.NAME lookups against a decoded
  Dictionary, and provides the derived label listings used to map
  point and analog channel indices onto names.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package c3d

import (
	"sort"
	"strings"
)

// Get resolves a "GROUP:NAME" or "GROUP.NAME" key against the
// dictionary. The separator is whichever of ':' or '.' occurs first in
// key; lookups are case-sensitive and there is no wildcard matching.
// ok is false if the separator is absent, or the group or parameter
// does not exist.
func (d *Dictionary) Get(key string) (*Parameter, bool) {
	group, name, ok := splitKey(key)
	if !ok {
		return nil, false
	}
	g, ok := d.Groups[group]
	if !ok {
		return nil, false
	}
	p, ok := g.Parameters[name]
	return p, ok
}

// splitKey splits a "GROUP:NAME"/"GROUP.NAME" key on the first
// occurrence of either separator.
func splitKey(key string) (group, name string, ok bool) {
	i := strings.IndexAny(key, ":.")
	if i < 0 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

// PointLabels reads POINT:LABELS and returns one trimmed label per
// marker. ok is false if the parameter is absent or malformed.
func (d *Dictionary) PointLabels() ([]string, bool) {
	p, ok := d.Get("POINT:LABELS")
	if !ok {
		return nil, false
	}
	return splitCharLabels(p)
}

// AnalogLabels enumerates ANALOG group parameters whose name contains
// "LABEL" (LABELS, LABELS2, LABELS3, ...), sorted lexicographically by
// parameter name, and concatenates their decoded label lists. C3D
// writers split analog labels across several parameters once the
// channel count exceeds a single parameter's capacity.
func (d *Dictionary) AnalogLabels() ([]string, bool) {
	g, ok := d.Groups["ANALOG"]
	if !ok {
		return nil, false
	}

	var names []string
	for name := range g.Parameters {
		if strings.Contains(name, "LABEL") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		labels, ok := splitCharLabels(g.Parameters[name])
		if !ok {
			continue
		}
		out = append(out, labels...)
	}
	return out, true
}

// splitCharLabels decodes a char parameter whose first dimension is a
// per-label width and whose remaining dimensions multiply out to a
// label count, the layout C3D uses for POINT:LABELS and ANALOG:LABELS*.
func splitCharLabels(p *Parameter) ([]string, bool) {
	if p == nil || p.DataLength != KindChar || len(p.Dims) < 1 {
		return nil, false
	}

	width := int(p.Dims[0])
	count := 1
	for _, d := range p.Dims[1:] {
		count *= int(d)
	}

	if width == 0 {
		return make([]string, count), true
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		start := i * width
		end := start + width
		if end > len(p.Values) {
			break
		}
		b := make([]byte, width)
		for j := 0; j < width; j++ {
			b[j], _ = p.Values[start+j].AsChar()
		}
		out = append(out, strings.TrimSpace(string(b)))
	}
	return out, true
}
