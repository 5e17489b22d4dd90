//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/sightread/sightread/trainer"
	"github.com/warthog618/gpiod"
	"github.com/warthog618/gpiod/device/rpi"
)

// Buttons is a ButtonInput reading the character devices of the GPIO chips,
// plus an optional quit button on a line of its own.
type Buttons struct {
	*ButtonInput
	lines []*gpiod.Lines
	quit  *gpiod.Line
}

// Open requests the lines of the banks as pulled-up inputs.
func Open(prefs trainer.InputPreferences) (*Buttons, error) {
	b := &Buttons{}
	for _, bank := range prefs.Banks {
		lines, err := gpiod.RequestLines(bank.Chip, BankOffsets(bank), gpiod.AsInput, gpiod.WithPullUp)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("could not request lines of %s: %w", bank.Chip, err)
		}
		b.lines = append(b.lines, lines)
	}
	if prefs.QuitChip != "" {
		offset := prefs.QuitLine
		if offset == 0 {
			offset = rpi.GPIO17
		}
		quit, err := gpiod.RequestLine(prefs.QuitChip, offset, gpiod.AsInput, gpiod.WithPullUp)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("could not request quit line: %w", err)
		}
		b.quit = quit
	}
	b.ButtonInput = NewButtonInput(prefs.Banks, func(bank int, values []int) error {
		return b.lines[bank].Values(values)
	}, prefs.Debounce)
	return b, nil
}

// QuitPressed reports whether the quit button is held down.
func (b *Buttons) QuitPressed() bool {
	if b.quit == nil {
		return false
	}
	v, err := b.quit.Value()
	return err == nil && v == 0
}

func (b *Buttons) Close() error {
	var err error
	for _, l := range b.lines {
		err = errors.Join(err, l.Close())
	}
	if b.quit != nil {
		err = errors.Join(err, b.quit.Close())
	}
	return err
}
