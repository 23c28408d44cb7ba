package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryIgnoresFragment(t *testing.T) {
	type song struct{ Title string }

	pop := Factory(func() any { return &song{} })

	model, err := pop.Materialize(map[string]any{"title": "A"}, PopulateContext{Index: 2})
	require.NoError(t, err)

	// The factory constructs fresh models with no prior state; the
	// fragment is applied later by population.
	assert.Equal(t, &song{}, model)
}

func TestPopulatorFuncReceivesContext(t *testing.T) {
	var got PopulateContext

	pop := PopulatorFunc(func(_ map[string]any, pctx PopulateContext) (any, error) {
		got = pctx
		return &struct{}{}, nil
	})

	child, err := New("song").Scalar("title").Build()
	require.NoError(t, err)

	_, err = pop.Materialize(nil, PopulateContext{Child: child, Index: 1})
	require.NoError(t, err)

	assert.Same(t, child, got.Child)
	assert.Equal(t, 1, got.Index)
}
