package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return MaxInt(80, MinInt(120, width))
}

func unitForDuration(d time.Duration) time.Duration {
	if d < time.Millisecond {
		return time.Microsecond
	}
	if d < time.Second {
		return time.Millisecond
	}
	if d < time.Minute {
		return time.Second
	}
	return time.Minute
}

// ProgressBar prints a line per update, backing off so long runs don't flood
// the output.
type ProgressBar struct {
	out   io.Writer
	label string
	total int
	width func() int

	value          int
	startTime      time.Time
	updateInterval time.Duration
	lastUpdate     time.Time

	lock sync.Mutex
}

func CreateProgressBar(total int, label string) *ProgressBar {
	return NewProgressBar(os.Stdout, total, label, termWidth)
}

func NewProgressBar(out io.Writer, total int, label string, width func() int) *ProgressBar {
	now := time.Now()
	return &ProgressBar{
		out:            out,
		label:          label,
		total:          total,
		width:          width,
		startTime:      now,
		lastUpdate:     now,
		updateInterval: 200 * time.Millisecond,
	}
}

func (p *ProgressBar) Set(i int) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.value = i
	p.update(false)
}

func (p *ProgressBar) Add(i int) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.value += i
	p.update(false)
}

func (p *ProgressBar) Close() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.update(true)
}

func (p *ProgressBar) update(force bool) {
	if !force && time.Since(p.lastUpdate) < p.updateInterval {
		return
	}
	p.lastUpdate = time.Now()
	p.updateInterval *= 2

	value := MinInt(p.value, p.total)
	if value <= 0 || p.total <= 0 {
		return
	}

	elapsed := time.Since(p.startTime)
	perSecond := int64(float64(value) / elapsed.Seconds())
	percent := float64(value) / float64(p.total)
	expectedFinish := time.Duration(float64(elapsed) / percent)
	unit := unitForDuration(elapsed)

	prefix := fmt.Sprintf("%s %3d%% ", p.label, int(percent*100))
	suffix := fmt.Sprintf(" %v => %v @ %v/s", elapsed.Round(unit), expectedFinish.Round(unit), humanize.Comma(perSecond))

	barLen := MaxInt(0, p.width()-utf8.RuneCountInString(prefix)-utf8.RuneCountInString(suffix))
	doneLen := MinInt(int(float64(barLen)*percent), barLen)

	fmt.Fprintf(p.out, "%s%s%s%s\n", prefix, strings.Repeat("=", doneLen), strings.Repeat(" ", barLen-doneLen), suffix)
}
