package main

import (
	"fmt"
	"os"
	"time"

	"github.com/andresmejia3/stegtext/pkg/stego"
	"github.com/schollz/progressbar/v3"
)

// newProgress returns an engine progress callback that drives a progress bar
// on stderr, and a function that finishes the bar. The bar is created on the
// first callback, once the total is known.
func newProgress(description string) (stego.Progress, func()) {
	var bar *progressbar.ProgressBar

	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(
				total,
				progressbar.OptionSetDescription(description),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetWidth(15),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionShowCount(),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprint(os.Stderr, "\n")
				}),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionFullWidth(),
				progressbar.OptionSetRenderBlankState(true),
			)
		}
		bar.Set(done)
	}

	finish := func() {
		if bar != nil {
			bar.Finish()
		}
	}
	return progress, finish
}
