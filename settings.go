package schemaid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the on-disk representation of identity hash settings.
// Fields left out of the file keep their defaults; pointer fields
// distinguish "absent" from zero values.
//
// Example:
//
//	track_descriptions: true
//	track_field_order: false
//	hash_limit_length: 12
//	tracked_filepath_parts: 2
//	track_validation_mode: true
//	tracked_extra_data:
//	  environment: production
type SettingsFile struct {
	TrackDescriptions    *bool `yaml:"track_descriptions,omitempty"`
	TrackFieldOrder      *bool `yaml:"track_field_order,omitempty"`
	TrackTypeOrder       *bool `yaml:"track_type_order,omitempty"`
	TrackedExtraData     any   `yaml:"tracked_extra_data,omitempty"`
	HashLimitLength      *int  `yaml:"hash_limit_length,omitempty"` // negative = unbounded
	TrackedFilepathParts *int  `yaml:"tracked_filepath_parts,omitempty"`
	TrackValidationMode  *bool `yaml:"track_validation_mode,omitempty"`
}

// Options converts the file contents into options for Register or
// WithDefaultSettings. The hash function is not file-configurable; set it
// with WithHashFunction.
func (f *SettingsFile) Options() []Option {
	var opts []Option
	if f.TrackDescriptions != nil {
		opts = append(opts, WithTrackDescriptions(*f.TrackDescriptions))
	}
	if f.TrackFieldOrder != nil {
		opts = append(opts, WithTrackFieldOrder(*f.TrackFieldOrder))
	}
	if f.TrackTypeOrder != nil {
		opts = append(opts, WithTrackTypeOrder(*f.TrackTypeOrder))
	}
	if f.TrackedExtraData != nil {
		opts = append(opts, WithExtraData(f.TrackedExtraData))
	}
	if f.HashLimitLength != nil {
		opts = append(opts, WithHashLimit(*f.HashLimitLength))
	}
	if f.TrackedFilepathParts != nil {
		opts = append(opts, WithFilepathParts(*f.TrackedFilepathParts))
	}
	if f.TrackValidationMode != nil {
		opts = append(opts, WithTrackValidationMode(*f.TrackValidationMode))
	}
	return opts
}

// LoadSettingsFile reads a YAML settings file and returns the options it
// declares.
func LoadSettingsFile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaid: read settings file: %w", err)
	}
	var f SettingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("schemaid: parse settings file %s: %w", path, err)
	}
	return f.Options(), nil
}
