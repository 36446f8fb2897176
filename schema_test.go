package citybuf

import (
	"fmt"
	"testing"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaBuilder_Inference(t *testing.T) {
	schema := mustSchema(t, nil,
		`{"name":"A","storeys":3,"height":9.5,"flat":true,"roof":{"kind":"gable"},"tags":["x"],"note":null,"big":12345678901234567890}`,
	)

	assert.Equal(t, []Column{
		{Name: "name", Type: flattypes.ColumnTypeString},
		{Name: "storeys", Type: flattypes.ColumnTypeLong},
		{Name: "height", Type: flattypes.ColumnTypeDouble},
		{Name: "flat", Type: flattypes.ColumnTypeBool},
		{Name: "roof", Type: flattypes.ColumnTypeJson},
		{Name: "tags", Type: flattypes.ColumnTypeJson},
		{Name: "big", Type: flattypes.ColumnTypeDouble},
		{Name: "note", Type: flattypes.ColumnTypeString, Nullable: true},
	}, schema.Columns())

	typ, ok := schema.ColumnType("height")
	require.True(t, ok)
	assert.Equal(t, flattypes.ColumnTypeDouble, typ)
	_, ok = schema.ColumnType("missing")
	assert.False(t, ok)
}

func TestSchemaBuilder_FirstSeenOrder(t *testing.T) {
	schema := mustSchema(t, nil,
		`{"b":1}`,
		`{"a":"x","b":2}`,
		`{"c":null}`,
		`{"c":true,"d":null}`,
	)

	var names []string
	for _, c := range schema.Columns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, names)

	i, ok := schema.ColumnIndex("c")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	c := schema.Columns()[i]
	assert.Equal(t, flattypes.ColumnTypeBool, c.Type)
	assert.True(t, c.Nullable)
}

func TestSchemaBuilder_Deterministic(t *testing.T) {
	records := []string{
		`{"z":1,"y":"a"}`,
		`{"x":true,"z":2.5}`,
		`{"w":[1],"y":null}`,
	}
	first := mustSchema(t, nil, records...)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Columns(), mustSchema(t, nil, records...).Columns())
	}
}

func TestSchemaBuilder_OverridesWin(t *testing.T) {
	overrides := []Column{
		{Name: "height", Type: flattypes.ColumnTypeFloat},
		{Name: "unused", Type: flattypes.ColumnTypeLong},
	}
	records := []string{`{"height":"9"}`, `{"height":12}`, `{"height":null}`}

	for _, order := range [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}} {
		t.Run(fmt.Sprint(order), func(t *testing.T) {
			sb := NewSchemaBuilder(overrides)
			for _, i := range order {
				sb.Observe(mustAttrs(t, records[i]))
			}
			assert.Empty(t, sb.Conflicts())
			schema, err := sb.Freeze()
			require.NoError(t, err)
			assert.Equal(t, []Column{{Name: "height", Type: flattypes.ColumnTypeFloat, Nullable: true}}, schema.Columns())
		})
	}
}

func TestSchemaBuilder_Widening(t *testing.T) {
	tests := []struct {
		first, second string
		want          flattypes.ColumnType
	}{
		{`1`, `2.5`, flattypes.ColumnTypeDouble},
		{`2.5`, `1`, flattypes.ColumnTypeDouble},
		{`1`, `"x"`, flattypes.ColumnTypeString},
		{`{"a":1}`, `"x"`, flattypes.ColumnTypeJson},
		{`true`, `1`, flattypes.ColumnTypeJson},
		{`"x"`, `false`, flattypes.ColumnTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.first+" then "+tt.second, func(t *testing.T) {
			sb := NewSchemaBuilder(nil)
			sb.Observe(mustAttrs(t, `{"v":`+tt.first+`}`))
			sb.Observe(mustAttrs(t, `{"v":`+tt.second+`}`))

			conflicts := sb.Conflicts()
			require.Len(t, conflicts, 1)
			assert.Equal(t, "v", conflicts[0].Name)
			assert.Equal(t, tt.want, conflicts[0].To)

			schema, err := sb.Freeze()
			require.NoError(t, err)
			typ, _ := schema.ColumnType("v")
			assert.Equal(t, tt.want, typ)

			_, err = schema.Encode(mustAttrs(t, `{"v":`+tt.first+`}`), true)
			require.NoError(t, err)
			_, err = schema.Encode(mustAttrs(t, `{"v":`+tt.second+`}`), true)
			require.NoError(t, err)
		})
	}
}

func TestSchemaBuilder_Exclude(t *testing.T) {
	sb := NewSchemaBuilder(nil)
	sb.Observe(mustAttrs(t, `{"type":"RoofSurface","parent":0,"children":[1],"slope":30}`), semanticKeys...)
	schema, err := sb.Freeze()
	require.NoError(t, err)
	assert.Equal(t, []Column{{Name: "slope", Type: flattypes.ColumnTypeLong}}, schema.Columns())
}

func TestSchemaBuilder_Frozen(t *testing.T) {
	sb := NewSchemaBuilder(nil)
	_, err := sb.Freeze()
	require.NoError(t, err)

	assert.Panics(t, func() { sb.Observe(mustAttrs(t, `{"a":1}`)) })
	assert.Panics(t, func() { _, _ = sb.Freeze() })
}

func TestSchemaBuilder_TooManyColumns(t *testing.T) {
	attrs := NewAttributes()
	for i := 0; i < maxColumns+1; i++ {
		attrs.Set(fmt.Sprintf("c%d", i), []byte("1"))
	}
	sb := NewSchemaBuilder(nil)
	sb.Observe(attrs)
	_, err := sb.Freeze()
	require.ErrorIs(t, err, ErrTooManyColumns)
}
