package sightread

import (
	"errors"
	"fmt"
)

type (
	// ParseErrorKind classifies why a score failed to parse.
	ParseErrorKind int

	// ParseError is the diagnostic returned when a score cannot be parsed.
	// Parsing stops at the first problem, so a ParseError always describes a
	// single location. Bar numbers are 1-based; Line is the 0-based index of
	// the offending line in the source.
	ParseError struct {
		Kind     ParseErrorKind
		Bar      int
		Line     int
		Pitch    Pitch
		Duration float64
		Err      error // underlying cause, if any
	}
)

const (
	FileNotFound ParseErrorKind = iota
	MalformedLine
	InvalidTiming
	UnplayablePitch
	UnrenderableDuration
)

var (
	ErrFileNotFound         = errors.New("file not found")
	ErrMalformedLine        = errors.New("malformed line")
	ErrInvalidTiming        = errors.New("invalid timing")
	ErrUnplayablePitch      = errors.New("unplayable pitch")
	ErrUnrenderableDuration = errors.New("unrenderable duration")
)

var kindErrors = [...]error{
	FileNotFound:         ErrFileNotFound,
	MalformedLine:        ErrMalformedLine,
	InvalidTiming:        ErrInvalidTiming,
	UnplayablePitch:      ErrUnplayablePitch,
	UnrenderableDuration: ErrUnrenderableDuration,
}

func (k ParseErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(kindErrors) {
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
	return kindErrors[k].Error()
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case FileNotFound:
		return "File not found"
	case InvalidTiming:
		return fmt.Sprintf("Bar %d (line %d) appears to be invalid (wrong timing)", e.Bar, e.Line)
	case UnplayablePitch:
		return fmt.Sprintf("Note %s in Bar %d (line %d) is not playable", e.Pitch, e.Bar, e.Line)
	case UnrenderableDuration:
		return fmt.Sprintf("Duration %.2f in Bar %d (line %d) cannot be displayed", e.Duration, e.Bar, e.Line)
	default:
		return fmt.Sprintf("Bar %d (line %d) appears to be invalid", e.Bar, e.Line)
	}
}

// Is makes errors.Is(err, ErrInvalidTiming) etc. work on a *ParseError.
func (e *ParseError) Is(target error) bool {
	if int(e.Kind) < 0 || int(e.Kind) >= len(kindErrors) {
		return false
	}
	return kindErrors[e.Kind] == target
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
