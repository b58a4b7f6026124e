package family

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

func TestBuilderResolvesTargets(t *testing.T) {
	b := NewBuilder(nil)
	require.NoError(t, b.Add(Record{
		ID:   "anna",
		Name: "Anna Berg",
		Relations: []RecordRelation{
			{Label: "Husband", Target: "karl"},
			{Label: "Daughter", Target: "lena berg"},
			{Label: "Mother", Target: "Greta"},
		},
	}))
	require.NoError(t, b.Add(Record{ID: "karl", Name: "Karl Berg"}))
	require.NoError(t, b.Add(Record{ID: "lena", Name: "Lena Berg", Birth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}))
	assert.Equal(t, 3, b.Len())

	people := b.Build()
	require.Len(t, people, 4)

	anna := people[0]
	require.Len(t, anna.Relations, 3)
	assert.Equal(t, Spouse, anna.Relations[0].Type)
	assert.Same(t, people[1], anna.Relations[0].Target)
	assert.Equal(t, Child, anna.Relations[1].Type)
	assert.Same(t, people[2], anna.Relations[1].Target)

	greta := people[3]
	assert.True(t, greta.Virtual)
	assert.Equal(t, "Greta", greta.Name)
	assert.Equal(t, VirtualID("greta"), greta.ID)
	assert.Same(t, greta, anna.Relations[2].Target)
}

func TestBuilderVirtualPersonsAreShared(t *testing.T) {
	b := NewBuilder(nil)
	require.NoError(t, b.Add(Record{ID: "a", Relations: []RecordRelation{{Label: "father", Target: "Otto"}}}))
	require.NoError(t, b.Add(Record{ID: "b", Relations: []RecordRelation{{Label: "father", Target: " otto "}}}))

	people := b.Build()
	require.Len(t, people, 3)
	assert.Same(t, people[0].Relations[0].Target, people[1].Relations[0].Target)
}

func TestBuilderAmbiguousNameBecomesVirtual(t *testing.T) {
	b := NewBuilder(nil)
	require.NoError(t, b.Add(Record{ID: "x1", Name: "Max"}))
	require.NoError(t, b.Add(Record{ID: "x2", Name: "Max"}))
	require.NoError(t, b.Add(Record{ID: "y", Relations: []RecordRelation{{Label: "brother", Target: "Max"}}}))

	people := b.Build()
	require.Len(t, people, 4)
	assert.True(t, people[2].Relations[0].Target.Virtual)
}

func TestBuilderSkipsSelfAndBlankTargets(t *testing.T) {
	b := NewBuilder(nil)
	require.NoError(t, b.Add(Record{ID: "a", Relations: []RecordRelation{
		{Label: "spouse", Target: "a"},
		{Label: "spouse", Target: "  "},
	}}))

	people := b.Build()
	require.Len(t, people, 1)
	assert.Empty(t, people[0].Relations)
}

func TestBuilderRejectsDuplicates(t *testing.T) {
	b := NewBuilder(nil)
	require.NoError(t, b.Add(Record{ID: "a"}))

	err := b.Add(Record{ID: "a"})
	assert.True(t, kerrors.Is(err, kerrors.ErrCodeInvalidInput))

	err = b.Add(Record{ID: " a"})
	assert.True(t, kerrors.Is(err, kerrors.ErrCodeInvalidInput))
}

func TestVirtualIDDeterministic(t *testing.T) {
	assert.Equal(t, VirtualID("Otto"), VirtualID("otto"))
	assert.NotEqual(t, VirtualID("Otto"), VirtualID("Anna"))
	assert.Len(t, VirtualID("Otto"), 36)
}
