// Package benchbar provides a really simple progress bar for the benchmarking
// process.
package benchbar

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar tracks the progress of one benchmark phase.
type Bar struct {
	pb          *progressbar.ProgressBar
	description string
	maxItems    int
}

// NewBar returns a bar that renders to w.
func NewBar(w io.Writer, description string, maxItems int) *Bar {
	pb := progressbar.NewOptions(
		maxItems,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionFullWidth(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
	)

	return &Bar{
		pb:          pb,
		description: description,
		maxItems:    maxItems,
	}
}

// Inc advances the bar by one item.
func (b *Bar) Inc() {
	_ = b.pb.Add(1)
}

// Current returns the number of items done so far.
func (b *Bar) Current() int {
	return int(b.pb.State().CurrentNum)
}

// Finish fills the bar and releases it.
func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
