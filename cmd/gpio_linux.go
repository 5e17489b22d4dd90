//go:build linux

package cmd

import (
	"github.com/sightread/sightread/trainer"
	"github.com/sightread/sightread/trainer/gpio"
)

// OpenButtons requests the GPIO lines of the push buttons. quit reports
// whether the quit button is held.
func OpenButtons(prefs trainer.InputPreferences) (input trainer.InputCloser, quit func() bool, err error) {
	b, err := gpio.Open(prefs)
	if err != nil {
		return nil, nil, err
	}
	return b, b.QuitPressed, nil
}
