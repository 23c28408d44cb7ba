package schemafile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formbind/schemafile"
)

func TestParseShorthandAndDefaults(t *testing.T) {
	f, err := schemafile.Parse([]byte(`
schemas:
  - name: song
    properties:
      - title
      - name: length
`))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Schemas, 1)

	sd := f.Schemas[0]
	require.Len(t, sd.Properties, 2)

	// Bare string shorthand gets the scalar/normal defaults.
	assert.Equal(t, "title", sd.Properties[0].Name)
	assert.Equal(t, schemafile.KindScalar, sd.Properties[0].Kind)
	assert.Equal(t, schemafile.VisibilityNormal, sd.Properties[0].Visibility)

	assert.Equal(t, "length", sd.Properties[1].Name)
	assert.Equal(t, schemafile.KindScalar, sd.Properties[1].Kind)
}

func TestParseFullPropertyMapping(t *testing.T) {
	f, err := schemafile.Parse([]byte(`
version: "2"
schemas:
  - name: album
    checker: require_title
    properties:
      - name: band
        as: name
        owner: artist
      - name: rating
        visibility: virtual
      - name: songs
        kind: collection
        schema: song
        populator: new_song
        persist: false
  - name: song
    properties: [title]
`))
	require.NoError(t, err)

	assert.Equal(t, "2", f.Version)

	album := f.Schemas[0]
	assert.Equal(t, "require_title", album.Checker)

	band := album.Properties[0]
	assert.Equal(t, "name", band.As)
	assert.Equal(t, "artist", band.Owner)

	rating := album.Properties[1]
	assert.Equal(t, schemafile.VisibilityVirtual, rating.Visibility)

	songs := album.Properties[2]
	assert.Equal(t, schemafile.KindCollection, songs.Kind)
	assert.Equal(t, "song", songs.Schema)
	assert.Equal(t, "new_song", songs.Populator)
	require.NotNil(t, songs.Persist)
	assert.False(t, *songs.Persist)
}

func TestParseIncludeAcceptsScalarOrList(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "single string",
			yaml: "schemas:\n  - name: a\n    include: base\n    properties: [x]\n",
			want: []string{"base"},
		},
		{
			name: "list",
			yaml: "schemas:\n  - name: a\n    include: [base, extra]\n    properties: [x]\n",
			want: []string{"base", "extra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := schemafile.Parse([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, []string(f.Schemas[0].Include))
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := schemafile.Parse([]byte("schemas: [}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema YAML")
}

func TestParseRejectsNonMappingProperty(t *testing.T) {
	_, err := schemafile.Parse([]byte(`
schemas:
  - name: song
    properties:
      - [not, a, property]
`))
	require.Error(t, err)
}

func TestLoadFileRoundTrip(t *testing.T) {
	f, err := schemafile.Parse([]byte(`
schemas:
  - name: song
    properties: [title]
`))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schemas.yaml")
	require.NoError(t, schemafile.WriteFile(f, path))

	loaded, err := schemafile.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := schemafile.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
