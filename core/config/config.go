package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name the shell configuration is stored
// under.
const ConfigurationName = "config.yaml"

// Configuration holds the operator-tunable settings of the shell. The core
// pipeline engine is deliberately configuration-free; everything here is
// about the interactive surface.
type Configuration struct {
	// Prompt is the prompt template. It supports the escapes \u (user),
	// \h (hostname), \w (working directory) and \$ (# for root, $ otherwise).
	Prompt string `json:"prompt" validate:"required"`

	// HistoryFile is where readline history is persisted. Relative paths are
	// resolved against the user's home directory; empty disables history.
	HistoryFile string `json:"history_file"`

	// Color controls colorized output.
	Color string `json:"color" validate:"oneof=always auto never"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// HistoryPath resolves the history file location, or "" if history is
// disabled or no home directory is available to anchor a relative path.
func (c *Configuration) HistoryPath() string {
	switch {
	case c.HistoryFile == "":
		return ""
	case filepath.IsAbs(c.HistoryFile):
		return c.HistoryFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, c.HistoryFile)
}
