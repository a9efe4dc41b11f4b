/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error taxonomy for the c3d package.
  Call sites wrap these with github.com/pkg/errors so that errors.Is
  still matches the sentinel while context (offsets, counts) rides
  along in the error message.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package c3d

import "errors"

var (
	// ErrBadMagic is returned when the header or parameter sub-header
	// magic word does not match the C3D format.
	ErrBadMagic = errors.New("c3d: bad magic word")

	// ErrTruncated is returned when the byte source ends during a
	// structural read (header or parameter section). At frame-decode
	// time, truncation is not an error; see FrameIterator.Next.
	ErrTruncated = errors.New("c3d: byte source truncated")

	// ErrMalformedParameter is returned when the parameter section is
	// internally inconsistent: a payload runs past the section buffer,
	// an offset steps outside it, or a name/description fails to decode.
	ErrMalformedParameter = errors.New("c3d: malformed parameter section")

	// ErrMissingHeader is returned by Adapter.Reader when called before
	// the adapter has successfully parsed a header and parameter section.
	ErrMissingHeader = errors.New("c3d: adapter has no parsed header")

	// ErrReaderInUse is returned by Adapter.Reader when a FrameIterator
	// from a previous call has not been closed.
	ErrReaderInUse = errors.New("c3d: a frame reader is already active")
)
