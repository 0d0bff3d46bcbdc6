package triple

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreInsertDeduplicates(t *testing.T) {
	s := NewStore()
	require.True(t, s.Insert(T("sys-a", "hasPurpose", EntityID("PurposeCreditScoring"))))
	require.False(t, s.Insert(T("sys-a", "hasPurpose", EntityID("PurposeCreditScoring"))))
	require.Equal(t, 1, s.Len())
}

func TestStoreDistinguishesObjectKinds(t *testing.T) {
	s := NewStore()
	// Same rendered text, different kinds.
	require.True(t, s.Insert(T("sys-a", "p", EntityID("true"))))
	require.True(t, s.Insert(T("sys-a", "p", Str("true"))))
	require.True(t, s.Insert(T("sys-a", "p", Bool(true))))
	require.Equal(t, 3, s.Len())
}

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Insert(T("a", "p", EntityID("x")))
	s.Insert(T("b", "p", EntityID("y")))
	s.Insert(T("a", "q", Int(3)))

	ts := s.Triples()
	require.Len(t, ts, 3)
	require.Equal(t, EntityID("a"), ts[0].Subject)
	require.Equal(t, EntityID("b"), ts[1].Subject)
	require.Equal(t, PredicateID("q"), ts[2].Predicate)
}

func TestStoreRetract(t *testing.T) {
	s := NewStore()
	s.Insert(T("a", "p", EntityID("x")))
	s.Insert(T("a", "p", EntityID("y")))

	require.True(t, s.Retract(T("a", "p", EntityID("x"))))
	require.False(t, s.Retract(T("a", "p", EntityID("x"))))
	require.Equal(t, 1, s.Len())
	require.False(t, s.Contains(T("a", "p", EntityID("x"))))
	require.True(t, s.Contains(T("a", "p", EntityID("y"))))

	ts := s.Triples()
	require.Len(t, ts, 1)
	require.Equal(t, EntityID("y"), ts[0].Object)
}

func TestStoreReinsertAfterRetract(t *testing.T) {
	s := NewStore()
	s.Insert(T("a", "p", EntityID("x")))
	s.Retract(T("a", "p", EntityID("x")))
	require.True(t, s.Insert(T("a", "p", EntityID("x"))))
	require.True(t, s.Contains(T("a", "p", EntityID("x"))))

	// The reinserted triple appears exactly once; a retract must not
	// leave a stale slot behind.
	require.Equal(t, 1, s.Len())
	require.Len(t, s.Triples(), 1)
}

func TestStoreRetractPreservesOrder(t *testing.T) {
	s := NewStore()
	s.Insert(T("a", "p", EntityID("x")))
	s.Insert(T("b", "p", EntityID("y")))
	s.Insert(T("c", "p", EntityID("z")))

	s.Retract(T("b", "p", EntityID("y")))
	s.Insert(T("b", "p", EntityID("y")))

	ts := s.Triples()
	require.Len(t, ts, 3)
	require.Equal(t, EntityID("a"), ts[0].Subject)
	require.Equal(t, EntityID("c"), ts[1].Subject)
	require.Equal(t, EntityID("b"), ts[2].Subject)
}

func TestStoreMergeAndSnapshot(t *testing.T) {
	a := NewStore()
	a.Insert(T("a", "p", EntityID("x")))

	b := NewStore()
	b.Insert(T("a", "p", EntityID("x")))
	b.Insert(T("b", "p", EntityID("y")))

	require.Equal(t, 1, a.Merge(b))
	require.Equal(t, 2, a.Len())

	snap := a.Snapshot()
	snap.Insert(T("c", "p", EntityID("z")))
	require.Equal(t, 2, a.Len())
	require.Equal(t, 3, snap.Len())
}

func TestStoreObjects(t *testing.T) {
	s := NewStore()
	s.Insert(T("a", "p", EntityID("x")))
	s.Insert(T("a", "p", EntityID("y")))
	s.Insert(T("a", "q", Int(1)))
	s.Insert(T("b", "p", EntityID("z")))

	objs := s.Objects("a", "p")
	require.Len(t, objs, 2)
	require.Equal(t, EntityID("x"), objs[0])
	require.Equal(t, EntityID("y"), objs[1])
}

func TestStoreEntities(t *testing.T) {
	s := NewStore()
	s.Insert(T("a", "p", EntityID("x")))
	s.Insert(T("b", "q", Int(3)))

	ents := s.Entities()
	require.True(t, ents["a"])
	require.True(t, ents["x"])
	require.True(t, ents["b"])
	require.False(t, ents["3"])
}
