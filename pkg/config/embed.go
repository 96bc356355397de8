package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultsTOML []byte

// embeddedDefaults hands the built-in defaults to koanf, which parses
// them with the TOML parser passed to Load.
type embeddedDefaults []byte

func (d embeddedDefaults) ReadBytes() ([]byte, error) { return d, nil }

// Read is never called: koanf only uses it when no parser is given.
func (embeddedDefaults) Read() (map[string]interface{}, error) {
	return nil, errors.New("embedded defaults must be loaded with a parser")
}
