/*
NAME
  options.go

DESCRIPTION
  options.go provides option functions that can be passed to Open for
  adapter configuration, following the same functional-option shape
  used by mts.NewEncoder's options.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package c3d

import "github.com/ausocean/utils/logging"

// Option configures an Adapter at Open time.
type Option func(*Adapter)

// WithLogger attaches a structured logger to the adapter and any
// FrameIterator it subsequently hands out. Without this option no
// logging is performed.
func WithLogger(l logging.Logger) Option {
	return func(a *Adapter) { a.log = l }
}
