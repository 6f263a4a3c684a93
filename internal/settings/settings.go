// Package settings holds interpreter configuration, loadable from a TOML
// file and then overridden by command line flags.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Standard selects which language revision the interpreter follows.
type Standard int

// Supported standards.
const (
	Befunge93  Standard = 93
	Befunge98  Standard = 98
	Befunge108 Standard = 108
)

// ErrStandard is returned for an unsupported language standard.
var ErrStandard = errors.New("unsupported standard, want one of 93, 98 or 108")

func (std Standard) String() string { return strconv.Itoa(int(std)) }

// Set implements flag.Value.
func (std *Standard) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return ErrStandard
	}
	switch val := Standard(n); val {
	case Befunge93, Befunge98, Befunge108:
		*std = val
		return nil
	}
	return ErrStandard
}

// Settings configures a VM.
type Settings struct {
	Standard Standard `toml:"standard"`

	// Sandbox disables instructions and fingerprints that reach outside
	// of the interpreter.
	Sandbox bool `toml:"sandbox"`

	Fingerprints bool `toml:"fingerprints"`

	// Disable lists fingerprint names never to load.
	Disable []string `toml:"disable"`

	// Trace sets the instruction trace level, 0 through 3.
	Trace int `toml:"trace"`

	Warnings bool `toml:"warnings"`

	Limits Limits `toml:"limits"`
}

// Limits caps host resources; zero means unlimited.
type Limits struct {
	IPs    int `toml:"ips"`
	Stack  int `toml:"stack"`
	Frames int `toml:"frames"`
	Pages  int `toml:"pages"`
}

// Default returns the settings used absent any configuration.
func Default() Settings {
	return Settings{
		Standard:     Befunge98,
		Fingerprints: true,
	}
}

// Load reads a TOML file over Default, so that keys absent from the file
// keep their defaults. Unknown keys are an error.
func Load(path string) (Settings, error) {
	set := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("cannot read %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &set)
	if err != nil {
		return set, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return set, fmt.Errorf("unknown key %q in %s", undec[0].String(), path)
	}
	return set, set.Validate()
}

// Validate checks that every setting is in range.
func (set Settings) Validate() error {
	switch set.Standard {
	case Befunge93, Befunge98, Befunge108:
	default:
		return fmt.Errorf("standard %v: %w", set.Standard, ErrStandard)
	}
	if set.Trace < 0 || set.Trace > 3 {
		return fmt.Errorf("trace level %v out of range 0-3", set.Trace)
	}
	for _, lim := range []struct {
		name string
		val  int
	}{
		{"ips", set.Limits.IPs},
		{"stack", set.Limits.Stack},
		{"frames", set.Limits.Frames},
		{"pages", set.Limits.Pages},
	} {
		if lim.val < 0 {
			return fmt.Errorf("negative %s limit %v", lim.name, lim.val)
		}
	}
	return nil
}

// Disabled reports whether the named fingerprint is disabled.
func (set Settings) Disabled(name string) bool {
	if !set.Fingerprints {
		return true
	}
	for _, dis := range set.Disable {
		if dis == name {
			return true
		}
	}
	return false
}
