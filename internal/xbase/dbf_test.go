package xbase

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rodeovalidate/pkg/domainerr"
)

// buildDBF assembles a minimal, valid dBase III Plus file in memory for
// tests: fields declared as (name, type, length), followed by rows of
// pre-padded field text in the same order.
func buildDBF(t *testing.T, fields []FieldDescriptor, rows [][]string) []byte {
	t.Helper()

	recordLen := 0
	for _, f := range fields {
		recordLen += f.Length
	}
	headerLen := headerSize + len(fields)*fieldDescriptorSize + 1

	buf := &bytes.Buffer{}

	header := make([]byte, headerSize)
	header[0] = versionIII
	putLE32(header[4:8], uint32(len(rows)))
	putLE16(header[8:10], uint16(headerLen))
	putLE16(header[10:12], uint16(1+recordLen))
	buf.Write(header)

	for _, f := range fields {
		fd := make([]byte, fieldDescriptorSize)
		copy(fd[0:11], f.Name)
		fd[11] = byte(f.Type)
		fd[16] = byte(f.Length)
		fd[17] = f.DecimalCount
		buf.Write(fd)
	}
	buf.WriteByte(headerTerminator)

	for _, row := range rows {
		buf.WriteByte(liveFlag)
		for i, val := range row {
			field := make([]byte, fields[i].Length)
			copy(field, val)
			for j := len(val); j < len(field); j++ {
				field[j] = ' '
			}
			buf.Write(field)
		}
	}
	buf.WriteByte(eofMarker)

	return buf.Bytes()
}

func putLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func readerAt(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}

func TestOpen_ParsesFieldsAndRecordCount(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "IGRA_NUM", Type: Character, Length: 4},
		{Name: "LAST_NAME", Type: Character, Length: 10},
	}
	data := buildDBF(t, fields, [][]string{{"1946", "Smith"}})

	tbl, err := Open(readerAt(data))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRecords())
	require.Len(t, tbl.Fields(), 2)
	assert.Equal(t, "IGRA_NUM", tbl.Fields()[0].Name)
	assert.Equal(t, 4, tbl.Fields()[0].Length)
}

func TestRows_TrimsPaddingAndSkipsDeleted(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "IGRA_NUM", Type: Character, Length: 4},
		{Name: "LAST_NAME", Type: Character, Length: 10},
	}
	data := buildDBF(t, fields, [][]string{
		{"1946", "Smith"},
		{"2001", "Jones"},
	})
	// Mark the second record deleted.
	recSize := 1 + 14
	dataOffset := headerSize + len(fields)*fieldDescriptorSize + 1
	data[dataOffset+recSize] = deletedFlag

	tbl, err := Open(readerAt(data))
	require.NoError(t, err)

	it := tbl.Rows()
	row, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1946", row[0].Str)
	assert.Equal(t, "Smith", row[1].Str)

	_, ok, err = it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRows_IsRestartable(t *testing.T) {
	fields := []FieldDescriptor{{Name: "IGRA_NUM", Type: Character, Length: 4}}
	data := buildDBF(t, fields, [][]string{{"1946"}, {"2001"}})

	tbl, err := Open(readerAt(data))
	require.NoError(t, err)

	first := collect(t, tbl.Rows())
	second := collect(t, tbl.Rows())
	assert.Equal(t, first, second)
}

func collect(t *testing.T, it *RowIterator) []string {
	t.Helper()
	var out []string
	for {
		row, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, row[0].Str)
	}
	return out
}

func TestOpen_RejectsBadVersion(t *testing.T) {
	fields := []FieldDescriptor{{Name: "IGRA_NUM", Type: Character, Length: 4}}
	data := buildDBF(t, fields, [][]string{{"1946"}})
	data[0] = 0x05

	_, err := Open(readerAt(data))
	require.Error(t, err)
	assert.True(t, domainerr.HasCode(err, domainerr.CodeMalformedDBF))
}

func TestOpen_RejectsBadTerminator(t *testing.T) {
	fields := []FieldDescriptor{{Name: "IGRA_NUM", Type: Character, Length: 4}}
	data := buildDBF(t, fields, [][]string{{"1946"}})
	terminatorOffset := headerSize + len(fields)*fieldDescriptorSize
	data[terminatorOffset] = 0xFF

	_, err := Open(readerAt(data))
	require.Error(t, err)
	assert.True(t, domainerr.HasCode(err, domainerr.CodeMalformedDBF))
}

func TestRows_TruncatedRecordErrors(t *testing.T) {
	fields := []FieldDescriptor{{Name: "IGRA_NUM", Type: Character, Length: 4}}
	data := buildDBF(t, fields, [][]string{{"1946"}, {"2001"}})
	// Chop off the last record's final byte.
	data = data[:len(data)-2]

	tbl, err := Open(readerAt(data))
	require.NoError(t, err)

	it := tbl.Rows()
	_, _, err = it.Next()
	require.NoError(t, err)

	_, _, err = it.Next()
	require.Error(t, err)
	assert.True(t, domainerr.HasCode(err, domainerr.CodeMalformedDBF))
}

func TestWhitespaceOnlyFieldNormalizesToEmpty(t *testing.T) {
	fields := []FieldDescriptor{{Name: "CITY", Type: Character, Length: 10}}
	data := buildDBF(t, fields, [][]string{{""}})

	tbl, err := Open(readerAt(data))
	require.NoError(t, err)
	row, ok, err := tbl.Rows().Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", row[0].Str)
}

func TestDecimal_RoundTripsThroughString(t *testing.T) {
	fields := []FieldDescriptor{{Name: "AMT", Type: Numeric, Length: 8, DecimalCount: 2}}
	data := buildDBF(t, fields, [][]string{{"123.45"}})

	tbl, err := Open(readerAt(data))
	require.NoError(t, err)
	row, ok, err := tbl.Rows().Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, row[0].Num)
	assert.Equal(t, "123.45", row[0].Num.String())
	assert.InDelta(t, 123.45, row[0].Num.Float64(), 0.001)
}

func TestLogical_DecodesKnownValues(t *testing.T) {
	fields := []FieldDescriptor{{Name: "FLAG", Type: Logical, Length: 1}}
	data := buildDBF(t, fields, [][]string{{"Y"}, {"n"}, {"?"}})

	tbl, err := Open(readerAt(data))
	require.NoError(t, err)
	it := tbl.Rows()

	row, _, _ := it.Next()
	require.NotNil(t, row[0].Bool)
	assert.True(t, *row[0].Bool)

	row, _, _ = it.Next()
	require.NotNil(t, row[0].Bool)
	assert.False(t, *row[0].Bool)

	row, _, _ = it.Next()
	assert.Nil(t, row[0].Bool)
}
