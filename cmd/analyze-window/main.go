// Command analyze-window prints statistics of Kaiser-Bessel-Derived windows
// for a set of filter and window lengths.
//
// Usage:
//
//	analyze-window
//	analyze-window -alpha 6 -filter 2048 -window 1024
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/tphakala/go-audio-mdct/internal/window"
)

const (
	// Princen-Bradley error above which a window is flagged
	pbTolerance = 1e-9

	// Number of rising-half samples shown in detail
	samplesToShow = 8
)

// defaultPairs are the (N, W) pairs analyzed when no -filter flag is given.
var defaultPairs = [][2]int{
	{256, 256},
	{1024, 1024},
	{1440, 480},
	{1440, 1440},
	{2048, 256},
	{2048, 2048},
	{16, 10},
}

func main() {
	alpha := flag.Float64("alpha", window.DefaultAlpha, "KBD alpha (beta = pi*alpha)")
	filterLength := flag.Int("filter", 0, "Filter length N (0 analyzes the default set)")
	windowLength := flag.Int("window", 0, "Window length W (0 uses N)")
	flag.Parse()

	pairs := defaultPairs
	if *filterLength > 0 {
		w := *windowLength
		if w == 0 {
			w = *filterLength
		}
		pairs = [][2]int{{*filterLength, w}}
	}

	fmt.Printf("=== KBD Window Analysis (alpha = %g) ===\n\n", *alpha)
	fmt.Printf("%6s %6s %8s %10s %12s %12s %8s\n", "N", "W", "rising", "energy", "symmetry", "PB error", "status")

	for _, pair := range pairs {
		if err := analyze(pair[0], pair[1], *alpha); err != nil {
			log.Printf("N=%d W=%d: %v", pair[0], pair[1], err)
		}
	}

	if len(pairs) == 1 {
		showRisingHalf(pairs[0][1], *alpha)
	}
}

func analyze(n, w int, alpha float64) error {
	win, err := window.KBD(w, n, alpha)
	if err != nil {
		return err
	}

	var symmetry float64
	for i := range len(win) / 2 {
		symmetry = math.Max(symmetry, math.Abs(win[i]-win[len(win)-1-i]))
	}

	pb := window.PrincenBradleyError(win)
	status := "ok"
	if pb > pbTolerance {
		status = "ALIASED"
	}

	fmt.Printf("%6d %6d %8d %10.4f %12.3e %12.3e %8s\n",
		n, w, w/2, window.Energy(win), symmetry, pb, status)
	return nil
}

func showRisingHalf(w int, alpha float64) {
	rising := window.RisingHalf(w, alpha)
	fmt.Printf("\nRising half (%d samples):\n", len(rising))
	for i, v := range rising {
		if i >= samplesToShow && i < len(rising)-samplesToShow {
			continue
		}
		fmt.Printf("  [%4d] %.12f\n", i, v)
	}
}
