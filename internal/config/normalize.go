package config

import (
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatasets(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DestinationDir, err = expandPath(c.Paths.DestinationDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		// Same filesystem as the destination so artifact moves stay renames.
		c.Paths.ScratchDir = filepath.Join(c.Paths.DestinationDir, ".scratch")
		return nil
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeDatasets() error {
	for name, ds := range c.Datasets {
		if ds.Root != "" {
			expanded, err := expandPath(ds.Root)
			if err != nil {
				return err
			}
			ds.Root = expanded
		}
		ds.Layout = strings.ToLower(strings.TrimSpace(ds.Layout))
		if ds.Layout == "" {
			ds.Layout = LayoutFlat
		}
		ds.Authenticity = strings.ToLower(strings.TrimSpace(ds.Authenticity))
		if ds.Layout == LayoutHub && strings.TrimSpace(ds.HubSplit) == "" {
			ds.HubSplit = defaultHubSplit
		}
		c.Datasets[name] = ds
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
