// Package tle reads NORAD two-line element sets and retrieves them from CelesTrak.
package tle

import "time"

// Entry is one satellite's two-line element set.
type Entry struct {
	NORADID int
	Name    string
	Epoch   time.Time
	Line1   string
	Line2   string
}
