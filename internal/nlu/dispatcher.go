package nlu

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
)

// Speaker is the text-to-speech output.
type Speaker interface {
	Say(ctx context.Context, text string) error
	Volume() int
	SetVolume(v int)
}

// Shell runs host commands.
type Shell interface {
	Run(ctx context.Context, command string) error
	Output(ctx context.Context, command string) (string, error)
}

// Actions binds intents to the device.
type Actions struct {
	Voice Speaker
	Shell Shell

	PowerOffCommand  string
	RebootCommand    string
	IPAddressCommand string

	// VolumeStep is the change applied by volume up/down.
	VolumeStep int
	// VolumeUpRaises makes "secondary volume up" raise the volume. When false
	// it lowers it, which is the long-standing device behaviour.
	VolumeUpRaises bool
}

// Dispatch performs the action bound to cmd. Collaborator errors are
// returned unchanged in meaning, wrapped with the failing step.
func Dispatch(ctx context.Context, cmd Result, act Actions) error {
	switch cmd.Intent {
	case IntentPowerOff:
		return act.powerOff(ctx)
	case IntentReboot:
		return act.reboot(ctx)
	case IntentReportIP:
		return act.sayIP(ctx)
	case IntentRepeat:
		return act.say(ctx, cmd.Say)
	case IntentSetVolume:
		return act.setVolume(ctx, cmd)
	case IntentVolumeDown:
		return act.volumeDown(ctx)
	case IntentVolumeUp:
		if act.VolumeUpRaises {
			return act.volumeUp(ctx)
		}
		return act.volumeDown(ctx)
	default:
		return fmt.Errorf("unknown intent %q", cmd.Intent)
	}
}

func (a Actions) say(ctx context.Context, text string) error {
	if err := a.Voice.Say(ctx, text); err != nil {
		return fmt.Errorf("say: %w", err)
	}
	return nil
}

func (a Actions) run(ctx context.Context, command string) error {
	if err := a.Shell.Run(ctx, command); err != nil {
		return fmt.Errorf("run %q: %w", command, err)
	}
	return nil
}

func (a Actions) powerOff(ctx context.Context) error {
	if err := a.say(ctx, "Good bye!"); err != nil {
		return err
	}
	log.Info("Powering off")
	return a.run(ctx, a.PowerOffCommand)
}

func (a Actions) reboot(ctx context.Context) error {
	if err := a.say(ctx, "See you in a bit!"); err != nil {
		return err
	}
	log.Info("Rebooting")
	return a.run(ctx, a.RebootCommand)
}

func (a Actions) sayIP(ctx context.Context) error {
	out, err := a.Shell.Output(ctx, a.IPAddressCommand)
	if err != nil {
		return fmt.Errorf("ip lookup: %w", err)
	}
	ip := strings.TrimSpace(out)
	return a.say(ctx, "My IP address is "+ip)
}

func (a Actions) setVolume(ctx context.Context, cmd Result) error {
	if !cmd.HasVolume {
		log.Warn("No volume in request", "query", cmd.Query)
		return a.say(ctx, "Sorry, I didn't catch the volume")
	}

	a.Voice.SetVolume(cmd.Volume)
	log.Info("Volume set", "volume", cmd.Volume)
	return a.say(ctx, fmt.Sprintf("Ok, I've set the secondary volume to %d%%", cmd.Volume))
}

func (a Actions) volumeDown(ctx context.Context) error {
	v := max(a.Voice.Volume()-a.VolumeStep, 0)
	a.Voice.SetVolume(v)
	log.Info("Volume lowered", "volume", v)
	return a.say(ctx, "Ok, done")
}

func (a Actions) volumeUp(ctx context.Context) error {
	v := min(a.Voice.Volume()+a.VolumeStep, 100)
	a.Voice.SetVolume(v)
	log.Info("Volume raised", "volume", v)
	return a.say(ctx, "Ok, done")
}
