package schemaid

import "time"

// processStart is captured once so every report produced by this process
// carries the same creation instant.
var processStart = time.Now().UTC()

// HashSettings is a snapshot of the tracking flags that were active when a
// type's hash was created.
type HashSettings struct {
	TrackDescriptions    bool `json:"track_descriptions" yaml:"track_descriptions"`
	TrackFieldOrder      bool `json:"track_field_order" yaml:"track_field_order"`
	TrackTypeOrder       bool `json:"track_type_order" yaml:"track_type_order"`
	TrackedFilepathParts int  `json:"tracked_filepath_parts" yaml:"tracked_filepath_parts"`
	TrackValidationMode  bool `json:"track_validation_mode" yaml:"track_validation_mode"`
}

// Report identifies a type's schema at a point in time: its qualified name,
// the process start instant, the hash, and the settings the hash was
// created under. Reports are cached alongside hashes and evicted together
// by Rebuild.
type Report struct {
	Fullname     string       `json:"fullname" yaml:"fullname"`
	Date         time.Time    `json:"date" yaml:"date"`
	Hash         string       `json:"hash" yaml:"hash"`
	HashSettings HashSettings `json:"hash_settings" yaml:"hash_settings"`
}
