package hemesh

import (
	"testing"

	"github.com/bloodmagesoftware/hemesh/geom"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysAreUniqueAndIncreasing(t *testing.T) {
	seen := mapset.NewThreadUnsafeSet[Key]()
	last := NilKey
	for i := 0; i < 1000; i++ {
		var k Key
		switch i % 3 {
		case 0:
			k = NewVertex(geom.Vec3{}).Key()
		case 1:
			k = NewHalfedge().Key()
		default:
			k = NewFace().Key()
		}
		require.Greater(t, k, last)
		require.True(t, seen.Add(k), "key %d issued twice", k)
		last = k
	}
}

func TestLabels(t *testing.T) {
	t.Run("Defaults are unset", func(t *testing.T) {
		f := NewFace()
		assert.Equal(t, NoLabel, f.InternalLabel())
		assert.Equal(t, NoLabel, f.Label())
	})

	t.Run("Slots are independent", func(t *testing.T) {
		v := NewVertex(geom.Vec3{})
		v.SetInternalLabel(2)
		assert.Equal(t, int32(2), v.InternalLabel())
		assert.Equal(t, NoLabel, v.Label())

		v.SetLabel(-7)
		assert.Equal(t, int32(2), v.InternalLabel())
		assert.Equal(t, int32(-7), v.Label())
	})

	t.Run("CopyProperties copies labels, not the key", func(t *testing.T) {
		src := NewFace()
		src.SetInternalLabel(5)
		src.SetLabel(42)

		dst := NewFace()
		key := dst.Key()
		dst.CopyProperties(src)

		assert.Equal(t, int32(5), dst.InternalLabel())
		assert.Equal(t, int32(42), dst.Label())
		assert.Equal(t, key, dst.Key())
		assert.NotEqual(t, src.Key(), dst.Key())
	})

	t.Run("CopyProperties across element kinds", func(t *testing.T) {
		src := NewHalfedge()
		src.SetLabel(9)
		dst := NewVertex(geom.Vec3{})
		dst.SetInternalLabel(1)
		dst.CopyProperties(src)
		assert.Equal(t, NoLabel, dst.InternalLabel())
		assert.Equal(t, int32(9), dst.Label())
	})
}
