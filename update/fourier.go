/*
 * fourier.go, part of gocg.
 *
 * Copyright 2024 The gocg developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package update

import (
	"math"

	gocg "github.com/cgmatch/gocg"
	"gonum.org/v1/gonum/dsp/fourier"
)

//Fourier computes the radially symmetric 3-D Fourier transform of f on the
//equidistant grid r, returning the reciprocal grid and the transform. The
//grid may start at zero or at its own spacing, nowhere else. The transform
//is isometric, so applying it to its own output recovers the input; that
//makes it serve as both the forward and the inverse transform.
//When r starts at zero, the first output point divides by k=0 and is NaN.
func Fourier(r, f []float64) ([]float64, []float64, error) {
	if len(r) != len(f) {
		return nil, nil, gocg.CError{Msg: "Fourier: grid and function lengths differ", Deco: []string{"update.Fourier"}}
	}
	dr, err := GridSpacing(r, 0.01)
	if err != nil {
		return nil, nil, gocg.ErrDecorate(err, "update.Fourier")
	}
	rw := append([]float64(nil), r...)
	fw := append([]float64(nil), f...)
	r0Added := false
	switch {
	case closeTo(rw[0], dr):
		rw = append([]float64{0}, rw...)
		fw = append([]float64{0}, fw...)
		r0Added = true
	case closeTo(rw[0], 0):
	default:
		return nil, nil, gocg.CError{Msg: "Fourier: grid must start at zero or at its spacing", Deco: []string{"update.Fourier"}}
	}
	//an even grid would end at the Nyquist frequency, where the imaginary
	//part is always zero, so it is padded to an odd one.
	var n int
	if len(rw)%2 == 0 {
		rw = append(rw, rw[len(rw)-1]+dr)
		fw = append(fw, 0)
		n = (len(rw)-1)*2 - 1
	} else {
		n = len(rw)*2 - 1
	}
	seq := make([]float64, n)
	for i := range rw {
		seq[i] = rw[i] * fw[i]
	}
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, seq)
	k := make([]float64, len(coeff))
	fHat := make([]float64, len(coeff))
	for j := range coeff {
		k[j] = float64(j) / (float64(n) * dr)
		fHat[j] = -2 / k[j] * dr * imag(coeff[j])
	}
	if r0Added {
		k = k[1:]
		fHat = fHat[1:]
	}
	return k, fHat, nil
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}
