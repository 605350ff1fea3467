// Package paths resolves where rolodex keeps its configuration and data.
//
// Both directories follow the same shape: an explicit flag wins, then an
// environment variable, then a project-local directory in the working
// directory, then the per-user platform directory. The data directory also
// honours data_dir from config.yaml, which sits between the flag and the
// environment.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user platform directories.
const AppName = "rolodex"

// Project-local directory names, relative to the working directory.
const (
	LocalConfigDirName = ".rolodex"
	LocalDataDirName   = ".rolodex-db"
)

// Environment overrides.
const (
	EnvConfigDir = "ROLODEX_CONFIG_DIR"
	EnvDataDir   = "ROLODEX_DATA_DIR"
)

// platform holds OS lookups that tests replace.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// UserConfigDir returns the per-user configuration directory.
//
//	Linux:   $XDG_CONFIG_HOME/rolodex, else ~/.config/rolodex
//	others:  os.UserConfigDir()/rolodex
func UserConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// UserDataDir returns the per-user data directory.
//
//	Linux:   $XDG_DATA_HOME/rolodex, else ~/.local/share/rolodex
//	others:  os.UserConfigDir()/rolodex
func UserDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, homeRel string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

// ResolveConfigDir returns flag, else $ROLODEX_CONFIG_DIR, else ./.rolodex
// when it exists, else UserConfigDir. The result is absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstSet(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	if local, ok, err := localDir(LocalConfigDirName); err != nil || ok {
		return local, err
	}
	return UserConfigDir()
}

// ResolveDataDir returns flag, else configValue (data_dir from config.yaml),
// else $ROLODEX_DATA_DIR, else ./.rolodex-db when it exists, else
// UserDataDir. The result is absolute.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir := firstSet(flag, configValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	if local, ok, err := localDir(LocalDataDirName); err != nil || ok {
		return local, err
	}
	return UserDataDir()
}

// LocalDataDir returns ./.rolodex-db as an absolute path, the directory
// init creates for a project-local setup.
func LocalDataDir() (string, error) {
	cwd, err := platform.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, LocalDataDirName), nil
}

// localDir reports whether name exists as a directory under the working
// directory.
func localDir(name string) (string, bool, error) {
	cwd, err := platform.getwd()
	if err != nil {
		return "", false, err
	}
	dir := filepath.Join(cwd, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false, nil
	}
	return dir, true, nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
