package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with fresh flag state and returns the
// trimmed stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	hashOpts = hashFlags{}
	for _, c := range []*cobra.Command{hashCmd, inspectCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleSchema = `{"type":"object","properties":{"b":{"type":"integer"},"a":{"type":"string"}},"required":["b","a"]}`

func TestHashCommand(t *testing.T) {
	path := writeFile(t, "doc.json", sampleSchema)

	first, err := runCLI(t, "hash", path)
	require.NoError(t, err)
	assert.Len(t, first, 12)

	second, err := runCLI(t, "hash", path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHashIgnoresKeyOrderByDefault(t *testing.T) {
	reordered := `{"required":["a","b"],"type":"object","properties":{"a":{"type":"string"},"b":{"type":"integer"}}}`
	a := writeFile(t, "doc.json", sampleSchema)
	b := writeFile(t, "doc.json", reordered)

	ha, err := runCLI(t, "hash", a)
	require.NoError(t, err)
	hb, err := runCLI(t, "hash", b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	// With field order tracked, the same two files diverge.
	ha, err = runCLI(t, "hash", a, "--track-field-order")
	require.NoError(t, err)
	hb, err = runCLI(t, "hash", b, "--track-field-order")
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestHashNameIsPartOfTheInput(t *testing.T) {
	// Identical content under different file names hashes differently
	// unless --name pins the document name.
	a := writeFile(t, "first.json", sampleSchema)
	b := writeFile(t, "second.json", sampleSchema)

	ha, err := runCLI(t, "hash", a)
	require.NoError(t, err)
	hb, err := runCLI(t, "hash", b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)

	ha, err = runCLI(t, "hash", a, "--name", "pinned")
	require.NoError(t, err)
	hb, err = runCLI(t, "hash", b, "--name", "pinned")
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestHashFlags(t *testing.T) {
	path := writeFile(t, "doc.json", sampleSchema)

	full, err := runCLI(t, "hash", path, "--limit", "-1")
	require.NoError(t, err)
	assert.Len(t, full, 32)

	short, err := runCLI(t, "hash", path, "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, full[:5], short)

	xx, err := runCLI(t, "hash", path, "--hash-fn", "xxhash", "--limit", "-1")
	require.NoError(t, err)
	assert.Len(t, xx, 16)
}

func TestHashExtraData(t *testing.T) {
	path := writeFile(t, "doc.json", sampleSchema)

	plain, err := runCLI(t, "hash", path)
	require.NoError(t, err)
	tagged, err := runCLI(t, "hash", path, "--extra-data", `{"env":"prod"}`)
	require.NoError(t, err)
	assert.NotEqual(t, plain, tagged)

	_, err = runCLI(t, "hash", path, "--extra-data", "{not json")
	assert.Error(t, err)
}

func TestHashYAMLDocument(t *testing.T) {
	jsonPath := writeFile(t, "doc.json", sampleSchema)
	yamlPath := writeFile(t, "doc.yaml", `type: object
properties:
  b:
    type: integer
  a:
    type: string
required:
  - b
  - a
`)

	hj, err := runCLI(t, "hash", jsonPath, "--name", "pinned")
	require.NoError(t, err)
	hy, err := runCLI(t, "hash", yamlPath, "--name", "pinned")
	require.NoError(t, err)
	assert.Equal(t, hj, hy, "equivalent JSON and YAML documents must hash alike")
}

func TestHashSettingsFileLayering(t *testing.T) {
	doc := writeFile(t, "doc.json", sampleSchema)
	settings := writeFile(t, "settings.yaml", "hash_limit_length: 5\n")

	h, err := runCLI(t, "hash", doc, "--settings", settings)
	require.NoError(t, err)
	assert.Len(t, h, 5)

	// An explicit flag wins over the file.
	h, err = runCLI(t, "hash", doc, "--settings", settings, "--limit", "7")
	require.NoError(t, err)
	assert.Len(t, h, 7)
}

func TestHashMissingFile(t *testing.T) {
	_, err := runCLI(t, "hash", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	path := writeFile(t, "doc.json", sampleSchema)

	out, err := runCLI(t, "inspect", path)
	require.NoError(t, err)

	var env struct {
		Name    string                     `json:"name"`
		Schemas map[string]json.RawMessage `json:"schemas"`
		Extra   any                        `json:"extra_data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "doc", env.Name)
	assert.Contains(t, env.Schemas, "document")
	assert.Nil(t, env.Extra)

	// Default settings sort keys and the required list.
	assert.Contains(t, out, `"required":["a","b"]`)
}
