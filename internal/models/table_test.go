package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Accessors(t *testing.T) {
	table := NewTable(SheetMatrix, []string{ColumnDepartment, "HIPER", ColumnTotal})
	table.AddRow("ALMACEN", int64(10), int64(10))

	assert.Equal(t, 1, table.ColumnIndex("HIPER"))
	assert.Equal(t, -1, table.ColumnIndex("nope"))
	assert.Equal(t, "ALMACEN", table.Text(0, ColumnDepartment))
	assert.Equal(t, int64(10), table.Int(0, ColumnTotal))
	assert.Nil(t, table.Value(3, ColumnTotal))
	assert.Equal(t, int64(0), table.Int(0, ColumnDepartment))
}

func TestTable_Records(t *testing.T) {
	table := NewTable(SheetRanking, []string{ColumnProductID, ColumnTotalSold})
	table.AddRow("1001", int64(-3))

	assert.Equal(t, [][]string{{ColumnProductID, ColumnTotalSold}, {"1001", "-3"}}, table.Records())
}

func TestBundle_Get(t *testing.T) {
	b := &Bundle{Tables: []*Table{NewTable(SheetConsolidated, nil), NewTable(SheetRanking, nil)}}

	got, ok := b.Get(SheetRanking)
	require.True(t, ok)
	assert.Equal(t, SheetRanking, got.Name)

	_, ok = b.Get(SheetSpecial)
	assert.False(t, ok)
	assert.Equal(t, []string{SheetConsolidated, SheetRanking}, b.Names())
}
