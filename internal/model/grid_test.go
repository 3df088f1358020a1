package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		raw  string
		kind CellKind
		str  string
	}{
		{"", CellEmpty, ""},
		{"   ", CellEmpty, ""},
		{"131111", CellNumber, "131111"},
		{"1000000.50", CellNumber, "1000000.50"},
		{"0", CellNumber, "0"},
		{"0.25", CellNumber, "0.25"},
		{"005", CellText, "005"},
		{"UAPB", CellText, "UAPB"},
		{"1.000.000", CellText, "1.000.000"},
	}
	for _, tt := range tests {
		c := ParseCell(tt.raw)
		assert.Equal(t, tt.kind, c.Kind(), "ParseCell(%q).Kind()", tt.raw)
		assert.Equal(t, tt.str, c.String(), "ParseCell(%q).String()", tt.raw)
	}
}

func TestCell_NumberString(t *testing.T) {
	assert.Equal(t, "5", Float(5.0).String())
	assert.Equal(t, "1000000", Int(1000000).String())

	d, ok := Float(2.5).Decimal()
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("2.5")))

	_, ok = Text("2.5").Decimal()
	assert.False(t, ok)
}

func TestText_BlankIsEmpty(t *testing.T) {
	assert.True(t, Text("").IsEmpty())
	assert.True(t, Text(" \t").IsEmpty())
	assert.False(t, Text("x").IsEmpty())
}

func TestGrid_OutOfRange(t *testing.T) {
	g := NewGrid([]Row{{Text("a"), Int(1)}})

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, "a", g.Cell(0, 0).String())
	assert.True(t, g.Cell(0, 9).IsEmpty())
	assert.True(t, g.Cell(5, 0).IsEmpty())
	assert.True(t, g.Cell(-1, -1).IsEmpty())
	assert.Nil(t, g.Row(3))
}

func TestRow_Values(t *testing.T) {
	r := Row{Text(" UAPB "), Empty(), Text(":"), Text("005"), Empty()}
	assert.Equal(t, []string{"UAPB", ":", "005"}, r.Values())
}

func TestGridFromStrings(t *testing.T) {
	g := GridFromStrings([][]string{{"", "131111", "Tanah"}})
	assert.True(t, g.Cell(0, 0).IsEmpty())
	assert.Equal(t, CellNumber, g.Cell(0, 1).Kind())
	assert.Equal(t, CellText, g.Cell(0, 2).Kind())
}

func TestCategory_SourceName(t *testing.T) {
	assert.Equal(t, "Neraca", CategoryAssetPosition.SourceName())
	assert.Equal(t, "Saldo Awal", CategoryOpeningBalance.SourceName())
	assert.Equal(t, "Penyusutan", CategoryDepreciation.SourceName())
	assert.Len(t, Categories(), 3)
}
