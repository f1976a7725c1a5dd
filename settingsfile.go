package neuroflow

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DecodeSettings reads TOML from r on top of base, so that keys not present keep their values in
// base. Unknown keys are an error. The fields that cannot be written as TOML (Schedule,
// Regularization and Logger) are kept from base.
//
// An example file:
//
//	learning-rate = 0.5
//	precision = 1e-4
//	max-iterations = 500
//	verbose = 10
//
//	[approximation]
//	delta = 1e-6
//
//	[specifics]
//	m = 5
func DecodeSettings(r io.Reader, base Settings) (Settings, error) {
	s := base.clone()

	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return base, errors.Wrapf(err, "Failed to decode settings\n")
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return base, errors.Errorf("Unknown settings: %s", strings.Join(keys, ", "))
	}

	return s, nil
}

// LoadSettings reads the TOML file at path on top of DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "Can't load settings\n")
	}

	defer f.Close()

	s, err := DecodeSettings(f, DefaultSettings())
	if err != nil {
		return Settings{}, errors.Wrapf(err, "Can't load settings from %q\n", path)
	}

	return s, nil
}
