package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-pipeline/internal/domain/table"
)

func TestWriteReadRoundTrip(t *testing.T) {
	src := table.New("FAQ", "count", "note")
	src.Append(table.Row{"FAQ": table.Str("a|b|c"), "count": table.Num(3), "note": table.Str("x")})
	src.Append(table.Row{"FAQ": table.Str("d|e"), "count": table.Num(1.5)})

	var buf bytes.Buffer
	err := Write(&buf, []table.Named{{Name: "sheet_a", Table: src}})
	require.NoError(t, err)

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, []string{"FAQ", "count", "note"}, got.Columns)
	require.Equal(t, 2, got.Len())

	require.Equal(t, "a|b|c", got.Rows[0].Get("FAQ").Text())
	count, ok := got.Rows[0].Get("count").Float()
	require.True(t, ok)
	require.Equal(t, 3.0, count)

	// blank cell comes back absent, not empty string
	require.True(t, got.Rows[1].Get("note").IsAbsent())
}

func TestReadAssignsUnnamedPlaceholders(t *testing.T) {
	src := table.New("service", "Unnamed: 1")
	src.Append(table.Row{"service": table.Str("a"), "Unnamed: 1": table.Num(2)})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []table.Named{{Name: "s", Table: src}}))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, []string{"service", "Unnamed: 1"}, got.Columns)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
}

func TestWriteMultipleSheets(t *testing.T) {
	a := table.New("x")
	a.Append(table.Row{"x": table.Num(1)})
	b := table.New("y")
	b.Append(table.Row{"y": table.Str("z")})

	var buf bytes.Buffer
	err := Write(&buf, []table.Named{
		{Name: "first", Table: a},
		{Name: "second", Table: b},
	})
	require.NoError(t, err)

	// Read only surfaces the first sheet.
	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, got.Columns)
}

func TestWriteRequiresTables(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Write(&buf, nil))
}
