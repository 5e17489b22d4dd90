// Package gpio reads push buttons wired to GPIO lines, e.g. on the port
// expanders of a Raspberry Pi hat. The buttons pull their lines low when
// pressed.
package gpio

import (
	"errors"
	"fmt"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
)

type (
	// ButtonInput is an InputSource over banks of buttons. Each Poll reads
	// every bank once and debounces the buttons.
	ButtonInput struct {
		*trainer.KeyInput[button]
		read   func(bank int, values []int) error
		values [][]int
		err    error
	}

	button struct {
		bank, index int
	}

	// BankReader reads the current levels of the lines of a bank, in the
	// order the bank's offsets were listed.
	BankReader func(bank int, values []int) error
)

// NewButtonInput maps the lines of banks to pitches, reading them with read.
// Lines are listed to read in ascending pitch order.
func NewButtonInput(banks []trainer.ButtonBank, read BankReader, debounce int) *ButtonInput {
	b := &ButtonInput{read: read, values: make([][]int, len(banks))}
	keys := map[button]sightread.Pitch{}
	for i, bank := range banks {
		for j, pitch := range bankPitches(bank) {
			keys[button{i, j}] = pitch
		}
		b.values[i] = make([]int, len(bank.Lines))
		for j := range b.values[i] {
			b.values[i][j] = 1
		}
	}
	b.KeyInput = trainer.NewKeyInput(keys, b.pressed, debounce)
	return b
}

func (b *ButtonInput) pressed(k button) bool {
	return b.values[k.bank][k.index] == 0
}

// Poll reads the banks and updates the buttons. A bank that fails to read
// keeps its previous levels; the error is kept for Err.
func (b *ButtonInput) Poll() {
	for i, v := range b.values {
		if err := b.read(i, v); err != nil {
			b.err = errors.Join(b.err, fmt.Errorf("reading button bank %d failed: %w", i, err))
		}
	}
	b.KeyInput.Poll()
}

// Err returns the read errors since the previous call and clears them.
func (b *ButtonInput) Err() error {
	err := b.err
	b.err = nil
	return err
}

// bankPitches returns the pitches of the bank sorted, which is also the
// order of the offsets requested from the chip.
func bankPitches(bank trainer.ButtonBank) []sightread.Pitch {
	set := sightread.PitchSet{}
	for p := range bank.Lines {
		set.Add(p)
	}
	return set.Sorted()
}

// BankOffsets returns the line offsets of the bank in the order NewButtonInput
// expects them to be read.
func BankOffsets(bank trainer.ButtonBank) []int {
	var ret []int
	for _, p := range bankPitches(bank) {
		ret = append(ret, bank.Lines[p])
	}
	return ret
}
