// Package config holds the daemon settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config is the complete daemon configuration. Zero values in a YAML file
// keep the defaults.
type Config struct {
	// LanguageCode is the recognition and speech locale.
	LanguageCode string `yaml:"language_code"`
	// TTSPitch is the voice pitch as a percentage of normal.
	TTSPitch int `yaml:"tts_pitch"`
	// TTSVolume is the initial speech volume, 0..100.
	TTSVolume int `yaml:"tts_volume"`

	EngineURL       string `yaml:"engine_url"`
	Proxy           string `yaml:"proxy"`
	CredentialsFile string `yaml:"credentials_file"`
	CredentialsEnv  string `yaml:"credentials_env"`

	Socket string `yaml:"socket"`
	LED    string `yaml:"led"`
	Cue    string `yaml:"cue"`

	PowerOffCommand  string `yaml:"power_off_command"`
	RebootCommand    string `yaml:"reboot_command"`
	IPAddressCommand string `yaml:"ip_command"`

	VolumeStep     int  `yaml:"volume_step"`
	VolumeUpRaises bool `yaml:"volume_up_raises"`

	LogLevel string `yaml:"log_level"`
}

var LogLevels = []string{"debug", "info", "warn", "error"}

func Default() Config {
	creds := "assistant.json"
	if home, err := os.UserHomeDir(); err == nil {
		creds = filepath.Join(home, creds)
	}

	return Config{
		LanguageCode:     "en-GB",
		TTSPitch:         95,
		TTSVolume:        2,
		EngineURL:        "ws://localhost:8093/assistant",
		CredentialsFile:  creds,
		CredentialsEnv:   "VOXPI_TOKEN",
		Socket:           "/tmp/voxpi.sock",
		PowerOffCommand:  "sudo shutdown now",
		RebootCommand:    "sudo reboot",
		IPAddressCommand: "hostname -I | cut -d' ' -f1",
		VolumeStep:       2,
		LogLevel:         "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.TTSPitch < 0 || c.TTSPitch > 200 {
		errs = append(errs, fmt.Errorf("tts_pitch %d out of range 0..200", c.TTSPitch))
	}
	if c.TTSVolume < 0 || c.TTSVolume > 100 {
		errs = append(errs, fmt.Errorf("tts_volume %d out of range 0..100", c.TTSVolume))
	}
	if c.VolumeStep < 1 || c.VolumeStep > 100 {
		errs = append(errs, fmt.Errorf("volume_step %d out of range 1..100", c.VolumeStep))
	}
	if c.EngineURL == "" {
		errs = append(errs, errors.New("engine_url is empty"))
	}
	if c.Socket == "" {
		errs = append(errs, errors.New("socket is empty"))
	}
	if !isLogLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q not one of %s", c.LogLevel, strings.Join(LogLevels, ", ")))
	}

	return errors.Join(errs...)
}

func isLogLevel(s string) bool {
	for _, l := range LogLevels {
		if l == s {
			return true
		}
	}
	return false
}
