package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adinfinit/meshlab/gpu"
	"github.com/adinfinit/meshlab/gpu/gputest"
)

func TestSetGetRemove(t *testing.T) {
	r := New()

	_, ok := r.Get("missing")
	assert.False(t, ok)

	r.Set("answer", 42)
	v, ok := r.Get("answer")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	r.Set("answer", "forty-two")
	v, _ = r.Get("answer")
	assert.Equal(t, "forty-two", v)
	assert.Equal(t, 1, r.Len())

	r.Remove("answer")
	r.Remove("answer")
	_, ok = r.Get("answer")
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestLookup(t *testing.T) {
	r := New()
	ctx := gputest.New()
	r.Set(ContextKey, ctx)

	got, ok := Lookup[gpu.Context](r, ContextKey)
	assert.True(t, ok)
	assert.Same(t, ctx, got)

	_, ok = Lookup[gpu.Surface](r, ContextKey)
	assert.False(t, ok, "wrong type")

	_, ok = Lookup[gpu.Context](r, SurfaceKey)
	assert.False(t, ok, "missing key")
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.Set(ContextKey, gputest.New())
	_, ok := b.Get(ContextKey)
	assert.False(t, ok)
}
