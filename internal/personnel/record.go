// Package personnel projects xbase.Row values from the personnel DBF into
// Record values, the in-memory representation of a member used throughout
// the rest of this module.
package personnel

import (
	"strings"

	"rodeovalidate/internal/xbase"
	"rodeovalidate/pkg/domain"
	"rodeovalidate/pkg/domainerr"
)

// Record is a single member of the personnel database, normalized from a
// raw DBF row.
type Record struct {
	IGRANumber  domain.IGRANumber
	Association string
	BirthDate   string // YYYYMMDD, "" if blank
	Division    string
	LastName    string
	FirstName   string
	LegalLast   string
	LegalFirst  string
	Sex         string // "M", "F", or "" if unrecognized
	Address     string
	City        string
	State       string
	Zip         string
	HomePhone   string
	CellPhone   string
	Email       string
	Status      string
	SSN         string
}

// PerformanceName is the stage name a member competes under.
func (r Record) PerformanceName() string {
	return joinName(r.FirstName, r.LastName)
}

// LegalName is the member's name of record.
func (r Record) LegalName() string {
	return joinName(r.LegalFirst, r.LegalLast)
}

func joinName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}

// Region resolves the DBF's two-letter state/province code to the full
// region name used by the registration system, per Regions. Ported from
// the historical state-code table this domain has accumulated; entries
// that never appear in modern data (e.g. "CS") are kept for completeness.
func (r Record) Region() (string, bool) {
	region, ok := Regions[strings.ToUpper(strings.TrimSpace(r.State))]
	return region, ok
}

// schemaField declares one column this package expects to find in the
// personnel DBF, by name and type. Order does not matter here: the
// projection maps by name, not position, so column reordering in a real
// file is tolerated.
type schemaField struct {
	name string
	typ  xbase.FieldType
}

var expectedSchema = []schemaField{
	{"IGRA_NUM", xbase.Character},
	{"BIRTH_DATE", xbase.Date},
	{"LEGAL_LAST", xbase.Character},
	{"FIRST_NAME", xbase.Character},
	{"LAST_NAME", xbase.Character},
	{"LEGAL_FIRST", xbase.Character},
	{"SEX", xbase.Character},
	{"ADDRESS", xbase.Character},
	{"CITY", xbase.Character},
	{"STATE", xbase.Character},
	{"ZIP", xbase.Character},
	{"EMAIL", xbase.Character},
	{"HOME_PHONE", xbase.Character},
	{"CELL_PHONE", xbase.Character},
	{"ASSOCIATION", xbase.Character},
	{"STATUS", xbase.Character},
	{"DIVISION", xbase.Character},
	{"SSN", xbase.Character},
}

// fieldIndex maps schema field name to its position in a table's declared
// field order, built once per table via CheckSchema.
type fieldIndex map[string]int

// CheckSchema verifies the table declares every expected field name with a
// compatible type, returning the name->position map used by Project. A
// missing field or type mismatch is a fatal load error: this package
// cannot guess at a personnel record's shape.
func CheckSchema(fields []xbase.FieldDescriptor) (fieldIndex, error) {
	byName := make(map[string]xbase.FieldDescriptor, len(fields))
	positions := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.ToUpper(strings.TrimSpace(f.Name))
		byName[name] = f
		positions[name] = i
	}

	idx := make(fieldIndex, len(expectedSchema))
	for _, want := range expectedSchema {
		got, ok := byName[want.name]
		if !ok {
			return nil, domainerr.Newf(domainerr.CodeSchemaMismatch, "personnel dbf missing expected field %s", want.name)
		}
		if got.Type != want.typ {
			return nil, domainerr.Newf(domainerr.CodeSchemaMismatch, "personnel dbf field %s has type %s, expected %s", want.name, got.Type, want.typ)
		}
		idx[want.name] = positions[want.name]
	}
	return idx, nil
}

// Project normalizes a raw DBF row into a Record using the field positions
// resolved by CheckSchema.
func Project(idx fieldIndex, row xbase.Row) (Record, error) {
	str := func(field string) string {
		return row[idx[field]].Str
	}

	igra, err := domain.ParseIGRANumber(str("IGRA_NUM"))
	if err != nil {
		return Record{}, err
	}

	return Record{
		IGRANumber:  igra,
		Association: strings.TrimSpace(str("ASSOCIATION")),
		BirthDate:   strings.TrimSpace(str("BIRTH_DATE")),
		Division:    strings.TrimSpace(str("DIVISION")),
		LastName:    strings.TrimSpace(str("LAST_NAME")),
		FirstName:   strings.TrimSpace(str("FIRST_NAME")),
		LegalLast:   strings.TrimSpace(str("LEGAL_LAST")),
		LegalFirst:  strings.TrimSpace(str("LEGAL_FIRST")),
		Sex:         clampSex(str("SEX")),
		Address:     strings.TrimSpace(str("ADDRESS")),
		City:        strings.TrimSpace(str("CITY")),
		State:       strings.ToUpper(strings.TrimSpace(str("STATE"))),
		Zip:         strings.TrimSpace(str("ZIP")),
		HomePhone:   strings.TrimSpace(str("HOME_PHONE")),
		CellPhone:   strings.TrimSpace(str("CELL_PHONE")),
		Email:       strings.TrimSpace(str("EMAIL")),
		Status:      strings.TrimSpace(str("STATUS")),
		SSN:         strings.TrimSpace(str("SSN")),
	}, nil
}

func clampSex(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return "M"
	case "F":
		return "F"
	default:
		return ""
	}
}

// ProjectAll reads every live row from tbl, projecting each into a Record.
// It returns a fatal error on the first schema mismatch or malformed row;
// there is no partial result.
func ProjectAll(tbl *xbase.Table) ([]Record, error) {
	idx, err := CheckSchema(tbl.Fields())
	if err != nil {
		return nil, err
	}

	var records []Record
	it := tbl.Rows()
	for {
		row, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		rec, err := Project(idx, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
