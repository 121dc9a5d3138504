package log

import "github.com/davecgh/go-spew/spew"

// LogClosure renders its value only when the line is written, so expensive
// dumps cost nothing below their level.
type LogClosure func() string

func (c LogClosure) String() string {
	return c()
}

// SpewClosure dumps v with go-spew when the log line is rendered.
func SpewClosure(v interface{}) LogClosure {
	return LogClosure(func() string {
		return spew.Sdump(v)
	})
}
