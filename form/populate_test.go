package form_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formbind/form"
	"formbind/schema"
)

func TestPopulateScalars(t *testing.T) {
	var journal []string

	a := &albumModel{Title: "Rio", Rating: 5, journal: &journal}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{"title": "Planet Earth"}))

	title, _ := f.Value("title")
	assert.Equal(t, "Planet Earth", title)

	// Omitted keys keep their prior value.
	rating, _ := f.Value("rating")
	assert.Equal(t, 5, rating)
}

func TestPopulateNeverTouchesModels(t *testing.T) {
	var journal []string

	existing := &songModel{Title: "Old", journal: &journal}
	a := &albumModel{Title: "Rio", Songs: []*songModel{existing}, journal: &journal}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{
		"title": "Planet Earth",
		"songs": []any{map[string]any{"title": "New"}},
	}))

	assert.Equal(t, "Rio", a.Title)
	assert.Equal(t, "Old", existing.Title)
}

func TestPopulateVirtualNeverOverwritten(t *testing.T) {
	var journal []string

	a := &albumModel{Rating: 5, journal: &journal}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{"rating": 1}))

	rating, _ := f.Value("rating")
	assert.Equal(t, 5, rating)
}

func TestPopulateWriteOnlyAlwaysWritable(t *testing.T) {
	def, err := schema.New("signup").
		Scalar("password", schema.WriteOnly()).
		Build()
	require.NoError(t, err)

	f, err := form.New(def, newRecorder(nil))
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{"password": "hunter2"}))

	password, _ := f.Value("password")
	assert.Equal(t, "hunter2", password)
}

func TestPopulateRecursesIntoExistingChild(t *testing.T) {
	var journal []string

	a := &albumModel{
		Artist:  &artistModel{Name: "Duran Duran", journal: &journal},
		journal: &journal,
	}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{
		"artist": map[string]any{"name": "Arcadia"},
	}))

	artist, ok := f.Child("artist")
	require.True(t, ok)

	name, _ := artist.Value("name")
	assert.Equal(t, "Arcadia", name)

	// Same model, same child instance: population reuses, never swaps.
	model, _ := artist.Model(schema.DefaultOwner)
	assert.Same(t, a.Artist, model)
}

func TestPopulateMaterializesMissingNested(t *testing.T) {
	var journal []string

	a := &albumModel{journal: &journal}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{
		"artist": map[string]any{"name": "Arcadia"},
	}))

	artist, ok := f.Child("artist")
	require.True(t, ok)

	name, _ := artist.Value("name")
	assert.Equal(t, "Arcadia", name)

	// Exactly one fresh model with no prior state, not yet attached.
	model, _ := artist.Model(schema.DefaultOwner)
	created, ok := model.(*artistModel)
	require.True(t, ok)
	assert.Empty(t, created.Name)
	assert.Nil(t, a.Artist)
}

func TestPopulateMissingNestedWithoutPolicy(t *testing.T) {
	child, err := schema.New("artist").Scalar("name").Build()
	require.NoError(t, err)

	def, err := schema.New("album").
		Nested("artist", child).
		Build()
	require.NoError(t, err)

	f, err := form.New(def, newRecorder(nil))
	require.NoError(t, err)

	err = f.Populate(map[string]any{
		"artist": map[string]any{"name": "Arcadia"},
	})

	var missing *form.MissingNestedModelError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "artist", missing.Path)
}

func TestPopulateCollectionAlignment(t *testing.T) {
	var journal []string

	first := &songModel{Title: "One", journal: &journal}
	second := &songModel{Title: "Two", journal: &journal}
	a := &albumModel{Songs: []*songModel{first, second}, journal: &journal}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{
		"songs": []any{
			map[string]any{"title": "A"},
			map[string]any{"title": "B"},
			map[string]any{"title": "C"},
		},
	}))

	songs, _ := f.Children("songs")
	require.Len(t, songs, 3)

	// The first two carry the original instances, recursively populated.
	m0, _ := songs[0].Model(schema.DefaultOwner)
	assert.Same(t, first, m0)

	m1, _ := songs[1].Model(schema.DefaultOwner)
	assert.Same(t, second, m1)

	// The third wraps a freshly constructed model.
	m2, _ := songs[2].Model(schema.DefaultOwner)
	fresh, ok := m2.(*songModel)
	require.True(t, ok)
	assert.Empty(t, fresh.Title)

	for i, want := range []string{"A", "B", "C"} {
		title, _ := songs[i].Value("title")
		assert.Equal(t, want, title)
	}
}

func TestPopulateCollectionBeyondLengthWithoutPolicy(t *testing.T) {
	def, err := schema.New("album").
		Collection("songs", songDef(t)).
		Build()
	require.NoError(t, err)

	f, err := form.New(def, newRecorder(map[string]any{"songs": nil}))
	require.NoError(t, err)

	err = f.Populate(map[string]any{
		"songs": []any{map[string]any{"title": "A"}},
	})

	var missing *form.MissingNestedModelError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "songs[0]", missing.Path)
}

func TestPopulateShortInputKeepsSurplusChildren(t *testing.T) {
	var journal []string

	a := &albumModel{
		Songs:   []*songModel{{Title: "One", journal: &journal}, {Title: "Two", journal: &journal}},
		journal: &journal,
	}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{
		"songs": []any{map[string]any{"title": "A"}},
	}))

	songs, _ := f.Children("songs")
	require.Len(t, songs, 2)

	title, _ := songs[1].Value("title")
	assert.Equal(t, "Two", title)
}

func TestPopulatePruneDropsSurplusChildren(t *testing.T) {
	var journal []string

	a := &albumModel{
		Songs:   []*songModel{{Title: "One", journal: &journal}, {Title: "Two", journal: &journal}},
		journal: &journal,
	}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{
		"songs": []any{map[string]any{"title": "A"}},
	}, form.Prune()))

	songs, _ := f.Children("songs")
	require.Len(t, songs, 1)

	// The models still hold both songs until the next sync.
	assert.Len(t, a.Songs, 2)
}

func TestPopulateShapeErrors(t *testing.T) {
	var journal []string

	tests := []struct {
		name  string
		input map[string]any
		path  string
	}{
		{
			name:  "scalar against nested",
			input: map[string]any{"artist": "Arcadia"},
			path:  "artist",
		},
		{
			name:  "scalar against collection",
			input: map[string]any{"songs": "A"},
			path:  "songs",
		},
		{
			name:  "scalar element in collection",
			input: map[string]any{"songs": []any{"A"}},
			path:  "songs[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &albumModel{Title: "Rio", journal: &journal}

			f, err := form.New(albumDef(t, &journal), a)
			require.NoError(t, err)

			err = f.Populate(tt.input)

			var popErr *form.PopulateError
			require.ErrorAs(t, err, &popErr)
			assert.Equal(t, tt.path, popErr.Path)
		})
	}
}

func TestPopulateShapeErrorAppliesNothing(t *testing.T) {
	var journal []string

	a := &albumModel{Title: "Rio", journal: &journal}

	f, err := form.New(albumDef(t, &journal), a)
	require.NoError(t, err)

	err = f.Populate(map[string]any{
		"title": "Planet Earth",
		"songs": "not a sequence",
	})
	require.Error(t, err)

	// Shapes are rejected before any value is applied.
	title, _ := f.Value("title")
	assert.Equal(t, "Rio", title)
}

func TestPopulateCreationPolicyFailure(t *testing.T) {
	boom := errors.New("lookup failed")

	child, err := schema.New("artist").Scalar("name").Build()
	require.NoError(t, err)

	def, err := schema.New("album").
		Nested("artist", child, schema.WithPopulator(
			schema.PopulatorFunc(func(map[string]any, schema.PopulateContext) (any, error) {
				return nil, boom
			}))).
		Build()
	require.NoError(t, err)

	f, err := form.New(def, newRecorder(nil))
	require.NoError(t, err)

	err = f.Populate(map[string]any{"artist": map[string]any{"name": "x"}})
	assert.ErrorIs(t, err, boom)
}

func TestPopulateContextCarriesParentAndIndex(t *testing.T) {
	var contexts []schema.PopulateContext

	child, err := schema.New("song").Scalar("title").Build()
	require.NoError(t, err)

	def, err := schema.New("album").
		Collection("songs", child, schema.WithPopulator(
			schema.PopulatorFunc(func(_ map[string]any, pctx schema.PopulateContext) (any, error) {
				contexts = append(contexts, pctx)
				return newRecorder(nil), nil
			}))).
		Build()
	require.NoError(t, err)

	f, err := form.New(def, newRecorder(map[string]any{"songs": nil}))
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{
		"songs": []any{
			map[string]any{"title": "A"},
			map[string]any{"title": "B"},
		},
	}))

	require.Len(t, contexts, 2)
	assert.Same(t, f, contexts[0].Parent)
	assert.Same(t, child, contexts[0].Child)
	assert.Equal(t, 0, contexts[0].Index)
	assert.Equal(t, 1, contexts[1].Index)
}
