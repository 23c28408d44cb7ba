package binding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journalModel struct {
	Title  string
	saved  int
	failOn error
}

func (m *journalModel) Persist() error {
	if m.failOn != nil {
		return m.failOn
	}

	m.saved++

	return nil
}

// customAccessor implements Accessor itself and must be used as-is.
type customAccessor struct {
	got map[string]any
}

func (c *customAccessor) Get(name string) (any, error) {
	return c.got[name], nil
}

func (c *customAccessor) Set(name string, value any) error {
	c.got[name] = value
	return nil
}

func TestNewNilModel(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilModel)
}

func TestNewUnsupportedModel(t *testing.T) {
	_, err := New(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model type")
}

func TestModelImplementingAccessor(t *testing.T) {
	m := &customAccessor{got: map[string]any{"title": "Rio"}}

	b, err := New(m)
	require.NoError(t, err)

	v, err := b.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "Rio", v)

	require.NoError(t, b.Set("title", "Planet Earth"))
	assert.Equal(t, "Planet Earth", m.got["title"])
}

func TestMapAccessor(t *testing.T) {
	m := map[string]any{"title": "Rio"}

	b, err := New(m)
	require.NoError(t, err)

	v, err := b.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "Rio", v)

	require.NoError(t, b.Set("year", 1982))
	assert.Equal(t, 1982, m["year"])

	_, err = b.Get("missing")

	var missing *MissingAccessorError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "missing", missing.Accessor)
	assert.False(t, missing.Write)
}

func TestPersistDispatch(t *testing.T) {
	m := &journalModel{}

	b, err := New(m)
	require.NoError(t, err)

	require.NoError(t, b.Persist())
	assert.Equal(t, 1, m.saved)
}

func TestPersistFailureIsVerbatim(t *testing.T) {
	boom := errors.New("disk full")
	m := &journalModel{failOn: boom}

	b, err := New(m)
	require.NoError(t, err)

	assert.ErrorIs(t, b.Persist(), boom)
}

func TestPersistWithoutPersister(t *testing.T) {
	b, err := New(map[string]any{})
	require.NoError(t, err)

	assert.ErrorIs(t, b.Persist(), ErrNotPersistable)
}
