package view

import (
	"time"

	"github.com/dustin/go-humanize"
)

// checkedAtLayout mirrors the en-US locale string the canvas shows.
const checkedAtLayout = "1/2/2006, 3:04:05 PM"

// Formatter turns timestamps into display strings relative to a clock.
type Formatter struct {
	Now      func() time.Time
	Location *time.Location
}

func (f Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// TimeAgo formats t relative to the formatter's clock, e.g. "5 minutes ago".
func (f Formatter) TimeAgo(t time.Time) string {
	return humanize.RelTime(t, f.now(), "ago", "from now")
}

// CheckedAt formats t as a local date and time.
func (f Formatter) CheckedAt(t time.Time) string {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(checkedAtLayout)
}

// DefaultColorClasses maps component colours to the collapsed node
// background class.
var DefaultColorClasses = map[string]string{
	"gray":   "bg-gray-100",
	"red":    "bg-red-100",
	"orange": "bg-orange-100",
	"yellow": "bg-yellow-100",
	"green":  "bg-green-100",
	"blue":   "bg-blue-100",
	"indigo": "bg-indigo-100",
	"purple": "bg-purple-100",
	"pink":   "bg-pink-100",
}

const fallbackColorClass = "bg-gray-100"

// ColorClasses looks up background classes by colour name.
type ColorClasses map[string]string

// BackgroundColorClass returns the class for color, falling back to gray.
func (c ColorClasses) BackgroundColorClass(color string) string {
	if class, ok := c[color]; ok {
		return class
	}
	if class, ok := DefaultColorClasses[color]; ok {
		return class
	}
	return fallbackColorClass
}
