package personnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rodeovalidate/internal/xbase"
	"rodeovalidate/pkg/domainerr"
)

func fullSchema() []xbase.FieldDescriptor {
	fields := make([]xbase.FieldDescriptor, len(expectedSchema))
	for i, f := range expectedSchema {
		fields[i] = xbase.FieldDescriptor{Name: f.name, Type: f.typ, Length: 20}
	}
	return fields
}

func TestCheckSchema_Accepts_ReorderedColumns(t *testing.T) {
	fields := fullSchema()
	fields[0], fields[1] = fields[1], fields[0]

	idx, err := CheckSchema(fields)
	require.NoError(t, err)
	assert.Equal(t, 1, idx["IGRA_NUM"])
	assert.Equal(t, 0, idx["BIRTH_DATE"])
}

func TestCheckSchema_RejectsMissingField(t *testing.T) {
	fields := fullSchema()[:len(expectedSchema)-1]

	_, err := CheckSchema(fields)
	require.Error(t, err)
	assert.True(t, domainerr.HasCode(err, domainerr.CodeSchemaMismatch))
}

func TestCheckSchema_RejectsTypeMismatch(t *testing.T) {
	fields := fullSchema()
	fields[0].Type = xbase.Numeric

	_, err := CheckSchema(fields)
	require.Error(t, err)
	assert.True(t, domainerr.HasCode(err, domainerr.CodeSchemaMismatch))
}

func rowFor(idx fieldIndex, values map[string]string) xbase.Row {
	row := make(xbase.Row, len(idx))
	for name, pos := range idx {
		row[pos] = xbase.Value{Type: xbase.Character, Str: values[name]}
	}
	return row
}

func TestProject_NormalizesFields(t *testing.T) {
	idx, err := CheckSchema(fullSchema())
	require.NoError(t, err)

	row := rowFor(idx, map[string]string{
		"IGRA_NUM":    " 1946 ",
		"FIRST_NAME":  "  Pat  ",
		"LAST_NAME":   "Garrett",
		"LEGAL_FIRST": "Patricia",
		"LEGAL_LAST":  "Garrett",
		"SEX":         "m",
		"STATE":       "tx",
		"ASSOCIATION": "IGRA",
	})

	rec, err := Project(idx, row)
	require.NoError(t, err)
	assert.Equal(t, "1946", rec.IGRANumber.String())
	assert.Equal(t, "Pat", rec.FirstName)
	assert.Equal(t, "M", rec.Sex)
	assert.Equal(t, "TX", rec.State)
	assert.Equal(t, "Pat Garrett", rec.PerformanceName())
	assert.Equal(t, "Patricia Garrett", rec.LegalName())

	region, ok := rec.Region()
	require.True(t, ok)
	assert.Equal(t, "Texas", region)
}

func TestProject_ClampsUnknownSexToEmpty(t *testing.T) {
	idx, err := CheckSchema(fullSchema())
	require.NoError(t, err)

	row := rowFor(idx, map[string]string{"IGRA_NUM": "1", "SEX": "X"})
	rec, err := Project(idx, row)
	require.NoError(t, err)
	assert.Equal(t, "", rec.Sex)
}

func TestProject_RejectsEmptyIGRANumber(t *testing.T) {
	idx, err := CheckSchema(fullSchema())
	require.NoError(t, err)

	row := rowFor(idx, map[string]string{"IGRA_NUM": "  "})
	_, err = Project(idx, row)
	require.Error(t, err)
	assert.True(t, domainerr.HasCode(err, domainerr.CodeInvalidInput))
}
