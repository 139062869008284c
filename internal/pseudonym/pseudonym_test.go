// SPDX-License-Identifier: Apache-2.0

package pseudonym

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/catalog"
)

func TestDigest(t *testing.T) {
	// sha256("model") = 9372c470...
	assert.Equal(t, "9372c470", Digest("model"))
	assert.Len(t, Digest("manufacturer"), DigestLength)
	assert.Equal(t, Digest("features"), Digest("features"))
	assert.NotEqual(t, Digest("manufacturer"), Digest("model"))
}

func TestPseudonymize_DistinctEntries(t *testing.T) {
	reg := NewRegistry()
	out := Pseudonymize(catalog.Record(
		catalog.Field{Name: "manufacturer", Value: catalog.Scalar("Acme")},
		catalog.Field{Name: "model", Value: catalog.Scalar("X1")},
	), reg)

	require.Len(t, out.Fields, 2)
	assert.Equal(t, 2, reg.Len())

	name, ok := reg.Lookup(out.Fields[0].Name)
	require.True(t, ok)
	assert.Equal(t, "manufacturer", name)
	assert.Equal(t, catalog.Scalar("Acme"), out.Fields[0].Value)

	name, ok = reg.Lookup(out.Fields[1].Name)
	require.True(t, ok)
	assert.Equal(t, "model", name)
}

func TestPseudonymize_Nested(t *testing.T) {
	reg := NewRegistry()
	in := catalog.Record(
		catalog.Field{Name: "technicalSpecs", Value: catalog.Record(
			catalog.Field{Name: "voltage", Value: catalog.Scalar("24V")},
			catalog.Field{Name: "sensor", Value: catalog.Record(
				catalog.Field{Name: "type", Value: catalog.Scalar("optical")},
			)},
		)},
		catalog.Field{Name: "features", Value: catalog.List(
			catalog.Record(catalog.Field{Name: "inList", Value: catalog.Scalar(1)}),
		)},
		catalog.Field{Name: "application", Value: catalog.Scalar(nil)},
	)

	out := Pseudonymize(in, reg)

	assert.Equal(t, Digest("technicalSpecs"), out.Fields[0].Name)
	specs := out.Fields[0].Value
	assert.Equal(t, Digest("voltage"), specs.Fields[0].Name)
	assert.Equal(t, Digest("sensor"), specs.Fields[1].Name)
	assert.Equal(t, Digest("type"), specs.Fields[1].Value.Fields[0].Name)

	// Lists are not walked.
	assert.Equal(t, in.Fields[1].Value, out.Fields[1].Value)
	_, walked := reg.Lookup(Digest("inList"))
	assert.False(t, walked)

	assert.True(t, out.Fields[2].Value.IsNull())

	// The input is not modified.
	assert.Equal(t, "technicalSpecs", in.Fields[0].Name)
}

func TestPseudonymize_RoundTrip(t *testing.T) {
	reg := NewRegistry()
	in := catalog.Record(
		catalog.Field{Name: "manufacturer", Value: catalog.Scalar("Acme")},
		catalog.Field{Name: "specs", Value: catalog.Record(
			catalog.Field{Name: "flow", Value: catalog.Scalar(12.5)},
			catalog.Field{Name: "unit", Value: catalog.Scalar("gpm")},
		)},
	)
	out := Pseudonymize(in, reg)

	var walk func(orig, hashed catalog.Value)
	walk = func(orig, hashed catalog.Value) {
		require.Len(t, hashed.Fields, len(orig.Fields))
		for i := range orig.Fields {
			name, ok := reg.Lookup(hashed.Fields[i].Name)
			require.True(t, ok)
			assert.Equal(t, orig.Fields[i].Name, name)
			if orig.Fields[i].Value.Kind == catalog.KindRecord {
				walk(orig.Fields[i].Value, hashed.Fields[i].Value)
			}
		}
	}
	walk(in, out)
}

func TestPseudonymize_NonRecordUnchanged(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, catalog.Scalar("x"), Pseudonymize(catalog.Scalar("x"), reg))
	assert.Equal(t, catalog.List(catalog.Scalar(1)), Pseudonymize(catalog.List(catalog.Scalar(1)), reg))
	assert.Zero(t, reg.Len())
}

func TestRegistry_LastWriterWins(t *testing.T) {
	reg := NewRegistry()
	reg.Record("abcd1234", "first")
	reg.Record("abcd1234", "second")

	name, ok := reg.Lookup("abcd1234")
	require.True(t, ok)
	assert.Equal(t, "second", name)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Nil(t *testing.T) {
	var reg *Registry
	details := catalog.Record(catalog.Field{Name: "model", Value: catalog.Scalar("SD-100")})

	out := Pseudonymize(details, reg)
	v, ok := out.Get("9372c470")
	require.True(t, ok)
	assert.Equal(t, "SD-100", v.Scalar)

	_, found := reg.Lookup("9372c470")
	assert.False(t, found)
	assert.Zero(t, reg.Len())
	assert.Nil(t, reg.Snapshot())
}

func TestRegistry_Snapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Record("a", "alpha")
	snap := reg.Snapshot()
	snap["b"] = "beta"

	_, ok := reg.Lookup("b")
	assert.False(t, ok, "snapshot must be a copy")
	assert.Equal(t, map[string]string{"a": "alpha"}, reg.Snapshot())
}

func TestRegistry_ConcurrentPseudonymize(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Pseudonymize(catalog.Record(
				catalog.Field{Name: fmt.Sprintf("field-%d", i), Value: catalog.Scalar(i)},
				catalog.Field{Name: "model", Value: catalog.Scalar("shared")},
			), reg)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 17, reg.Len())
	name, ok := reg.Lookup(Digest("model"))
	require.True(t, ok)
	assert.Equal(t, "model", name)
}
