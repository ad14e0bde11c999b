package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RC is the optional ~/.abiscope/config.yaml file. It only carries defaults;
// command line flags always win.
type RC struct {
	Network         string `yaml:"network"`
	AddressBookPath string `yaml:"address_book"`
}

func RCPath() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".abiscope", "config.yaml")
}

// LoadRC reads the rc file. A missing file yields a zero RC and no error;
// a malformed file is reported so a typo doesn't silently fall back to
// defaults.
func LoadRC() (RC, error) {
	rc := RC{}
	path := RCPath()
	if path == "" {
		return rc, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rc, nil
		}
		return rc, fmt.Errorf("couldn't read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(content, &rc); err != nil {
		return rc, fmt.Errorf("couldn't parse %s: %w", path, err)
	}
	return rc, nil
}
