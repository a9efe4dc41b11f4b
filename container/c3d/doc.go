/*
NAME
  doc.go

DESCRIPTION
  doc.go holds the package documentation for c3d.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package c3d provides a read-only decoder for the C3D biomechanics
// file format. A file is a sequence of 512-byte blocks holding a fixed
// header, a self-descriptive parameter dictionary (groups of named,
// typed, multi-dimensional parameters), and a data section of
// interleaved 3-D point and analog samples, one record per
// motion-capture frame.
//
// Open a file with Open, query its header and parameters directly on
// the returned Adapter, and stream frames with Reader:
//
//	a, err := c3d.Open(f)
//	if err != nil {
//		return err
//	}
//	it, err := a.Reader()
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for {
//		idx, points, analog, ok := it.Next()
//		if !ok {
//			break
//		}
//		_ = idx
//		_ = points
//		_ = analog
//	}
//
// Writing or mutating C3D files is out of scope, as are the big-endian
// DEC/SGI floating-point variants of the format and real-time network
// streaming.
package c3d
