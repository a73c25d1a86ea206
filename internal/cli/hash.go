package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	schemaid "github.com/zero-day-ai/schemaid"
	"github.com/zero-day-ai/schemaid/canonical"
	"github.com/zero-day-ai/schemaid/document"
)

type hashFlags struct {
	name         string
	settingsPath string
	extraData    string
	hashFn       string

	trackDescriptions bool
	trackFieldOrder   bool
	trackTypeOrder    bool
	limit             int
}

var hashOpts hashFlags

var hashCmd = &cobra.Command{
	Use:   "hash FILE",
	Short: "Fingerprint a schema document",
	Long: `Reads a schema document from a JSON or YAML file, canonicalizes it
under the tracking settings, and prints its identity hash.

The document name defaults to the file name without extension; set --name to
pin it, since the name is part of the hash input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := effectiveSettings(cmd)
		if err != nil {
			return err
		}
		data, err := buildEnvelope(args[0], settings)
		if err != nil {
			return err
		}
		hash := schemaid.ComputeHash(data, hashFunc(), settings.HashLimitLength)
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the canonical hash input for a schema document",
	Long: `Builds the same envelope the hash command hashes and prints it as
JSON, for debugging why two documents fingerprint differently.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := effectiveSettings(cmd)
		if err != nil {
			return err
		}
		data, err := buildEnvelope(args[0], settings)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// buildEnvelope loads the document and produces the serialized hash input
// under the effective settings, mirroring the library pipeline.
func buildEnvelope(path string, settings schemaid.Settings) ([]byte, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}

	name := hashOpts.name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	canonical.Normalize(doc, settings.Policy())
	slog.Debug("canonicalized document", "file", path, "name", name)

	var extra *document.Value
	switch {
	case hashOpts.extraData != "":
		extra, err = document.Parse([]byte(hashOpts.extraData))
		if err != nil {
			return nil, fmt.Errorf("parse --extra-data: %w", err)
		}
	case settings.TrackedExtraData != nil:
		extra, err = document.FromAny(settings.TrackedExtraData)
		if err != nil {
			return nil, fmt.Errorf("serialize tracked extra data: %w", err)
		}
	default:
		extra = document.Null()
	}

	env := document.Object().
		Set("name", document.String(name)).
		Set("schemas", document.Object().Set("document", doc)).
		Set("extra_data", extra)
	return document.Marshal(env, !settings.TrackFieldOrder), nil
}

// effectiveSettings layers explicitly set flags over the settings file,
// which layers over the library defaults.
func effectiveSettings(cmd *cobra.Command) (schemaid.Settings, error) {
	s := schemaid.DefaultSettings()

	if hashOpts.settingsPath != "" {
		opts, err := schemaid.LoadSettingsFile(hashOpts.settingsPath)
		if err != nil {
			return s, err
		}
		for _, opt := range opts {
			opt(&s)
		}
	}

	f := cmd.Flags()
	if f.Changed("track-descriptions") {
		s.TrackDescriptions = hashOpts.trackDescriptions
	}
	if f.Changed("track-field-order") {
		s.TrackFieldOrder = hashOpts.trackFieldOrder
	}
	if f.Changed("track-type-order") {
		s.TrackTypeOrder = hashOpts.trackTypeOrder
	}
	if f.Changed("limit") {
		s.HashLimitLength = hashOpts.limit
	}
	return s, nil
}

func hashFunc() schemaid.HashFunc {
	switch hashOpts.hashFn {
	case "xxhash":
		return schemaid.XXHash64Hex
	default:
		return schemaid.MD5Hex
	}
}

func loadDocument(path string) (*document.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return document.ParseYAML(data)
	default:
		return document.Parse(data)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{hashCmd, inspectCmd} {
		cmd.Flags().StringVar(&hashOpts.name, "name", "", "Document name folded into the hash (default: file name)")
		cmd.Flags().StringVar(&hashOpts.settingsPath, "settings", "", "YAML settings file")
		cmd.Flags().StringVar(&hashOpts.extraData, "extra-data", "", "Extra JSON data folded into the hash")
		cmd.Flags().StringVar(&hashOpts.hashFn, "hash-fn", "md5", "Hash function: md5 or xxhash")
		cmd.Flags().BoolVar(&hashOpts.trackDescriptions, "track-descriptions", false, "Include description strings in the hash")
		cmd.Flags().BoolVar(&hashOpts.trackFieldOrder, "track-field-order", false, "Make key order affect the hash")
		cmd.Flags().BoolVar(&hashOpts.trackTypeOrder, "track-type-order", false, "Make list order in type annotations affect the hash")
		cmd.Flags().IntVar(&hashOpts.limit, "limit", 12, "Digest truncation length (negative keeps the full digest)")
	}
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(inspectCmd)
}
