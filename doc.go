// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledmux is a container for the packages that drive a directly
// multiplexed eight digit seven-segment LED panel.
//
// glyph holds the segment table, content the persistent and overlay display
// content, and mux the scan engine that turns content into GPIO waveforms.
// console and snapshot emulate the panel without hardware.
package ledmux
