/*
NAME
  analog.go

DESCRIPTION
  analog.go provides signal-processing helpers for the analog channel
  samples decoded by container/c3d: summary statistics, a Hann-windowed
  FFT magnitude spectrum, and RMS, following the window/FFT pipeline
  codec/pcm uses for audio buffers.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package analog provides statistical and spectral analysis of C3D
// analog channel samples.
package analog

import (
	"errors"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptySeries is returned by functions that require at least one
// sample.
var ErrEmptySeries = errors.New("analog: empty series")

// Stats holds summary statistics for one analog channel across the
// frames it was collected over.
type Stats struct {
	Mean     float64
	StdDev   float64
	Min, Max float64
}

// Summarize computes Stats over samples. samples is typically one
// channel's values gathered across many FrameIterator.Next calls.
func Summarize(samples []float64) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrEmptySeries
	}
	mean, std := stat.MeanStdDev(samples, nil)
	min, max := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Stats{Mean: mean, StdDev: std, Min: min, Max: max}, nil
}

// RMS returns the root-mean-square of samples.
func RMS(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrEmptySeries
	}
	var sumSq float64
	for _, v := range samples {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(samples))), nil
}

// Spectrum applies a Hann window to samples and returns the magnitude
// of the real FFT's first len(samples)/2+1 bins, the single-sided
// spectrum of a real-valued signal.
func Spectrum(samples []float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySeries
	}
	win := window.Hann(len(samples))
	windowed := make([]float64, len(samples))
	for i, v := range samples {
		windowed[i] = v * win[i]
	}

	coeffs := fft.FFTReal(windowed)
	n := len(coeffs)/2 + 1
	mag := make([]float64, n)
	for i := 0; i < n; i++ {
		mag[i] = math.Hypot(real(coeffs[i]), imag(coeffs[i]))
	}
	return mag, nil
}
