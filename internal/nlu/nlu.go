package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is a locally handled voice command.
type Intent int

const (
	IntentNone Intent = iota
	IntentPowerOff
	IntentReboot
	IntentReportIP
	IntentRepeat
	IntentSetVolume
	IntentVolumeDown
	IntentVolumeUp
)

func (i Intent) String() string {
	switch i {
	case IntentPowerOff:
		return "power_off"
	case IntentReboot:
		return "reboot"
	case IntentReportIP:
		return "report_ip"
	case IntentRepeat:
		return "repeat"
	case IntentSetVolume:
		return "set_volume"
	case IntentVolumeDown:
		return "volume_down"
	case IntentVolumeUp:
		return "volume_up"
	default:
		return "none"
	}
}

// Result is the classification of one recognized utterance.
type Result struct {
	Intent Intent
	// Query is the lowercased utterance.
	Query string
	// Say is the text to repeat for IntentRepeat.
	Say string
	// Volume is the requested level for IntentSetVolume, valid when HasVolume.
	Volume    int
	HasVolume bool
}

// Matched reports whether the utterance maps to a local command.
func (r Result) Matched() bool {
	return r.Intent != IntentNone
}

var digitsRe = regexp.MustCompile(`^[0-9]+$`)

// Classify maps recognized text to a command. Rules are evaluated in order
// and the first match wins.
func Classify(text string) Result {
	q := strings.ToLower(text)
	res := Result{Query: q}

	switch {
	case q == "power off":
		res.Intent = IntentPowerOff
	case q == "reboot":
		res.Intent = IntentReboot
	case strings.Contains(q, "ip address"):
		res.Intent = IntentReportIP
	case strings.Contains(q, "repeat"):
		res.Intent = IntentRepeat
		// Surrounding whitespace is kept: "please repeat that" says "please  that".
		res.Say = strings.Replace(q, "repeat", "", 1)
	case strings.Contains(q, "secondary volume to"):
		res.Intent = IntentSetVolume
		res.Volume, res.HasVolume = firstNumber(q)
	case strings.Contains(q, "secondary volume down"):
		res.Intent = IntentVolumeDown
	case strings.Contains(q, "secondary volume up"):
		res.Intent = IntentVolumeUp
	}

	return res
}

// firstNumber returns the first whitespace separated all-digit token,
// ignoring percent signs, clamped to [0,100].
func firstNumber(q string) (int, bool) {
	for _, tok := range strings.Fields(strings.ReplaceAll(q, "%", "")) {
		if !digitsRe.MatchString(tok) {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			// only overflow is possible here
			return 100, true
		}
		return clampVolume(n), true
	}
	return 0, false
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
