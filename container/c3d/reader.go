/*
NAME
  reader.go

DESCRIPTION
  reader.go provides the Adapter: the file-level orchestrator that
  opens a byte source, verifies both magic words, decodes the header
  and parameter dictionary, and hands out a single FrameIterator at a
  time over the data section.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package c3d

import (
	"io"
	"sync"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Adapter owns a C3D file's header and parameter dictionary, and
// mediates access to its data section. It is not safe for concurrent
// use by multiple goroutines; the byte source is exclusively held by
// whichever component (Adapter during Open, FrameIterator during
// iteration) is currently reading from it.
type Adapter struct {
	src    io.ReadSeeker
	log    logging.Logger
	header Header
	dict   *Dictionary

	mu       sync.Mutex
	reading  bool
}

// Open rewinds src, decodes its header and parameter section, and
// returns an Adapter over it. It fails with ErrBadMagic, ErrTruncated,
// ErrMalformedParameter, or a wrapped I/O error.
func Open(src io.ReadSeeker, opts ...Option) (*Adapter, error) {
	a := &Adapter{src: src}
	for _, opt := range opts {
		opt(a)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "c3d: rewind byte source")
	}

	h, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}

	dict, err := decodeParameters(src, h, a.log)
	if err != nil {
		return nil, err
	}

	a.header = h
	a.dict = dict
	return a, nil
}

// Header returns the decoded header record.
func (a *Adapter) Header() Header { return a.header }

// Get resolves a "GROUP:NAME"/"GROUP.NAME" parameter lookup.
func (a *Adapter) Get(key string) (*Parameter, bool) { return a.dict.Get(key) }

// PointLabels returns the decoded POINT:LABELS strings.
func (a *Adapter) PointLabels() ([]string, bool) { return a.dict.PointLabels() }

// AnalogLabels returns the concatenated ANALOG:LABELS* strings.
func (a *Adapter) AnalogLabels() ([]string, bool) { return a.dict.AnalogLabels() }

// Groups returns the decoded parameter dictionary's groups, keyed by
// name, for callers that need to enumerate every parameter rather than
// look one up by key.
func (a *Adapter) Groups() map[string]*Group { return a.dict.Groups }

// Reader returns a new FrameIterator rooted at the file's data
// section. Only one FrameIterator may be outstanding at a time; call
// Close on it before requesting another. Reader fails with
// ErrMissingHeader if called before Open has completed (impossible
// through this constructor, but kept for embedding callers that build
// an Adapter another way) or ErrReaderInUse if a prior iterator is
// still open.
func (a *Adapter) Reader() (*FrameIterator, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dict == nil {
		return nil, ErrMissingHeader
	}
	if a.reading {
		return nil, ErrReaderInUse
	}

	it, err := newFrameIterator(a.src, a.header, a.dict, a.log)
	if err != nil {
		return nil, err
	}

	a.reading = true
	it.release = func() {
		a.mu.Lock()
		a.reading = false
		a.mu.Unlock()
	}
	return it, nil
}
