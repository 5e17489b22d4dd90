//go:build !linux

package cmd

import (
	"errors"

	"github.com/sightread/sightread/trainer"
)

func OpenButtons(prefs trainer.InputPreferences) (input trainer.InputCloser, quit func() bool, err error) {
	return nil, nil, errors.New("push buttons are only supported on linux")
}
