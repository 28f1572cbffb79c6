package overworld

import "errors"

var (
	errNoStartScreen     = errors.New("overworld: start screen not declared in memory map")
	errNoCandidateScreen = errors.New("overworld: no eligible target screen for start-screen shuffle")
)
