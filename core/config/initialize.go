package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into the directory, keeping
// any file that already exists, and returns the resulting configuration.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	return initializeFs(afero.NewOsFs(), dir, logger)
}

func initializeFs(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	path := filepath.Join(dir, ConfigurationName)

	exists, err := afero.Exists(fsys, path)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, keeping it", path)
	default:
		if err := afero.WriteFile(fsys, path, defaultConfigData, 0600); err != nil {
			return nil, err
		}
		logger.Printf("Wrote %s", path)
	}

	return loadFs(fsys, dir)
}
