package base

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	datadir       string
	datadir_mutex sync.Mutex
)

// Sets the directory from which all defs are loaded. Setting it twice to
// different directories is an error.
func SetDatadir(_datadir string) error {
	datadir_mutex.Lock()
	defer datadir_mutex.Unlock()
	abs, err := filepath.Abs(_datadir)
	if err != nil {
		return fmt.Errorf("couldn't resolve datadir %q: %w", _datadir, err)
	}
	if datadir != "" && datadir != abs {
		return fmt.Errorf("double-setting datadir! was %q, new %q", datadir, abs)
	}
	datadir = abs
	return nil
}

func GetDataDir() string {
	datadir_mutex.Lock()
	defer datadir_mutex.Unlock()
	return datadir
}

// Opens the file named by path, reads it all, decodes it as json into target,
// then closes the file.  Returns the first error found while doing this or nil.
func LoadJson(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("couldn't decode %q: %w", path, err)
	}
	return nil
}

func SaveJson(path string, source interface{}) error {
	data, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
