// Package config loads connection profiles from YAML files: an
// ambient convenience for host applications that want to keep
// host/user/TLS policy out of code, in the spirit of the teacher's
// env/file-driven configuration loader. It is never consulted by the
// core handshake or call-engine logic, which only ever sees an
// ibmi.Config value built in code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the YAML-serializable superset of ibmi.Config, minus the
// cleartext password (profiles are meant to be checked in or shared;
// the password is supplied separately by the caller at connect time).
type Profile struct {
	Host                 string `yaml:"host"`
	UserName             string `yaml:"user_name"`
	TempLibrary          string `yaml:"temp_library,omitempty"`
	UseTLS               bool   `yaml:"use_tls"`
	AcceptAnyCertificate bool   `yaml:"accept_any_certificate"`
	SignonPort           int    `yaml:"signon_port,omitempty"`
	RemoteCommandPort    int    `yaml:"remote_command_port,omitempty"`
}

// LoadProfile reads and parses a single connection profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read profile %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse profile %s: %w", path, err)
	}
	if p.Host == "" {
		return nil, fmt.Errorf("config: profile %s: host is required", path)
	}
	if p.UserName == "" {
		return nil, fmt.Errorf("config: profile %s: user_name is required", path)
	}
	return &p, nil
}

// LoadProfiles reads a YAML document containing a top-level mapping of
// profile name to Profile, for host applications that keep several
// named connection targets in one file.
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read profiles %s: %w", path, err)
	}

	var profiles map[string]Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("config: parse profiles %s: %w", path, err)
	}
	return profiles, nil
}
