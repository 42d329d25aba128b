package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDatasets(); err != nil {
		return err
	}
	if err := c.validateSampling(); err != nil {
		return err
	}
	if err := c.validateCuration(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DestinationDir == "" {
		return errors.New("paths.destination_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateDatasets() error {
	for name, ds := range c.Datasets {
		switch ds.Layout {
		case LayoutFlat, LayoutGrouped:
			if ds.Root == "" {
				return fmt.Errorf("datasets.%s.root must be set for layout %q", name, ds.Layout)
			}
		case LayoutHub:
			if ds.HubName == "" {
				return fmt.Errorf("datasets.%s.hub_name must be set for layout %q", name, LayoutHub)
			}
		default:
			return fmt.Errorf("datasets.%s.layout must be one of flat, grouped, hub (got %q)", name, ds.Layout)
		}
		switch ds.Authenticity {
		case "authentic", "synthetic":
		case "":
			return fmt.Errorf("datasets.%s.authenticity must be set", name)
		default:
			return fmt.Errorf("datasets.%s.authenticity must be authentic or synthetic (got %q)", name, ds.Authenticity)
		}
	}
	return nil
}

func (c *Config) validateSampling() error {
	if c.Sampling.TargetPerGroup <= 0 {
		return errors.New("sampling.target_per_group must be positive")
	}
	return nil
}

func (c *Config) validateCuration() error {
	if c.Curation.Workers <= 0 {
		return errors.New("curation.workers must be positive")
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.TimeoutSeconds <= 0 {
		return errors.New("ffmpeg.timeout_seconds must be positive")
	}
	return nil
}
