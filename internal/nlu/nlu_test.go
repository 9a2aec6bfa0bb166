package nlu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text   string
		intent Intent
	}{
		{"power off", IntentPowerOff},
		{"Power Off", IntentPowerOff},
		{"please power off", IntentNone},
		{"reboot", IntentReboot},
		{"reboot now", IntentNone},
		{"what is my ip address", IntentReportIP},
		{"tell me the IP address", IntentReportIP},
		{"repeat after me", IntentRepeat},
		{"repeat the ip address", IntentReportIP},
		{"set secondary volume to 30", IntentSetVolume},
		{"secondary volume down", IntentVolumeDown},
		{"turn the secondary volume up", IntentVolumeUp},
		{"repeat secondary volume up", IntentRepeat},
		{"what's the weather like", IntentNone},
		{"", IntentNone},
	}

	for _, tc := range tests {
		got := Classify(tc.text)
		assert.Equal(t, tc.intent, got.Intent, "Classify(%q)", tc.text)
	}
}

func TestClassifyRepeatKeepsWhitespace(t *testing.T) {
	res := Classify("Please repeat that cat fact")
	assert.Equal(t, IntentRepeat, res.Intent)
	assert.Equal(t, "please  that cat fact", res.Say)

	res = Classify("repeat repeat")
	assert.Equal(t, " repeat", res.Say)
}

func TestClassifyVolume(t *testing.T) {
	tests := []struct {
		text   string
		volume int
		ok     bool
	}{
		{"set secondary volume to 42%", 42, true},
		{"set secondary volume to 42 %", 42, true},
		{"set secondary volume to 7 or 9", 7, true},
		{"set secondary volume to 250", 100, true},
		{"set secondary volume to 99999999999999999999999", 100, true},
		{"set secondary volume to 0", 0, true},
		{"set secondary volume to -5", 0, false},
		{"set secondary volume to forty", 0, false},
	}

	for _, tc := range tests {
		res := Classify(tc.text)
		require.Equal(t, IntentSetVolume, res.Intent, tc.text)
		assert.Equal(t, tc.ok, res.HasVolume, tc.text)
		assert.Equal(t, tc.volume, res.Volume, tc.text)
	}
}

type fakeVoice struct {
	said   []string
	volume int
	err    error
}

func (v *fakeVoice) Say(_ context.Context, text string) error {
	v.said = append(v.said, text)
	return v.err
}

func (v *fakeVoice) Volume() int     { return v.volume }
func (v *fakeVoice) SetVolume(n int) { v.volume = n }

type fakeShell struct {
	ran []string
	out string
	err error
}

func (s *fakeShell) Run(_ context.Context, command string) error {
	s.ran = append(s.ran, command)
	return s.err
}

func (s *fakeShell) Output(_ context.Context, command string) (string, error) {
	s.ran = append(s.ran, command)
	return s.out, s.err
}

func actions(v *fakeVoice, s *fakeShell, raises bool) Actions {
	return Actions{
		Voice:            v,
		Shell:            s,
		PowerOffCommand:  "sudo shutdown now",
		RebootCommand:    "sudo reboot",
		IPAddressCommand: "hostname -I | cut -d' ' -f1",
		VolumeStep:       2,
		VolumeUpRaises:   raises,
	}
}

func TestDispatchVolumeDown(t *testing.T) {
	tests := []struct{ from, want int }{
		{10, 8},
		{2, 0},
		{1, 0},
		{0, 0},
	}

	for _, tc := range tests {
		v := &fakeVoice{volume: tc.from}
		require.NoError(t, Dispatch(context.Background(), Classify("secondary volume down"), actions(v, &fakeShell{}, false)))
		assert.Equal(t, tc.want, v.volume, "from %d", tc.from)
		assert.Equal(t, []string{"Ok, done"}, v.said)
	}
}

func TestDispatchVolumeUp(t *testing.T) {
	// Default behaviour lowers the volume.
	v := &fakeVoice{volume: 50}
	require.NoError(t, Dispatch(context.Background(), Classify("secondary volume up"), actions(v, &fakeShell{}, false)))
	assert.Equal(t, 48, v.volume)

	v = &fakeVoice{volume: 50}
	require.NoError(t, Dispatch(context.Background(), Classify("secondary volume up"), actions(v, &fakeShell{}, true)))
	assert.Equal(t, 52, v.volume)

	v = &fakeVoice{volume: 99}
	require.NoError(t, Dispatch(context.Background(), Classify("secondary volume up"), actions(v, &fakeShell{}, true)))
	assert.Equal(t, 100, v.volume)
	assert.Equal(t, []string{"Ok, done"}, v.said)
}

func TestDispatchSetVolume(t *testing.T) {
	v := &fakeVoice{volume: 2}
	require.NoError(t, Dispatch(context.Background(), Classify("set secondary volume to 42%"), actions(v, &fakeShell{}, false)))
	assert.Equal(t, 42, v.volume)
	assert.Equal(t, []string{"Ok, I've set the secondary volume to 42%"}, v.said)
}

func TestDispatchReportIP(t *testing.T) {
	v := &fakeVoice{}
	s := &fakeShell{out: "10.0.0.7\n"}
	require.NoError(t, Dispatch(context.Background(), Classify("ip address"), actions(v, s, false)))
	assert.Equal(t, []string{"hostname -I | cut -d' ' -f1"}, s.ran)
	assert.Equal(t, []string{"My IP address is 10.0.0.7"}, v.said)
}

func TestDispatchPowerOffSaysBeforeShutdown(t *testing.T) {
	v := &fakeVoice{}
	s := &fakeShell{}
	require.NoError(t, Dispatch(context.Background(), Classify("power off"), actions(v, s, false)))
	assert.Equal(t, []string{"Good bye!"}, v.said)
	assert.Equal(t, []string{"sudo shutdown now"}, s.ran)
}

func TestDispatchErrors(t *testing.T) {
	sayErr := errors.New("espeak down")
	v := &fakeVoice{err: sayErr}
	s := &fakeShell{}
	err := Dispatch(context.Background(), Classify("power off"), actions(v, s, false))
	require.ErrorIs(t, err, sayErr)
	assert.Empty(t, s.ran, "shutdown must not run when saying goodbye fails")

	shErr := errors.New("no shell")
	err = Dispatch(context.Background(), Classify("ip address"), actions(&fakeVoice{}, &fakeShell{err: shErr}, false))
	require.ErrorIs(t, err, shErr)

	err = Dispatch(context.Background(), Classify("hello"), actions(&fakeVoice{}, &fakeShell{}, false))
	require.Error(t, err)
}
