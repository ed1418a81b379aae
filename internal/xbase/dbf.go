// Package xbase reads dBase III Plus (DBF) tables: fixed 32-byte header,
// field descriptors, and fixed-width records encoded in the legacy CP-437
// code page. It knows nothing about the personnel schema layered on top of
// it in internal/personnel — this package only understands the byte layout.
package xbase

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"

	"rodeovalidate/pkg/domainerr"
)

const (
	headerSize          = 32
	fieldDescriptorSize = 32
	headerTerminator    = 0x0D
	deletedFlag         = 0x2A
	liveFlag            = 0x20
	eofMarker           = 0x1A
	versionIII          = 0x03
)

// FieldType is one of the dBase III Plus field type codes this reader
// understands. Memo and Float fields never appear in the personnel schema
// and are rejected as an unsupported type.
type FieldType byte

const (
	Character FieldType = 'C'
	Numeric   FieldType = 'N'
	Date      FieldType = 'D'
	Logical   FieldType = 'L'
)

func (t FieldType) String() string {
	return string(byte(t))
}

// FieldDescriptor describes one column of the table, in declared order.
type FieldDescriptor struct {
	Name         string
	Type         FieldType
	Length       int
	DecimalCount byte
}

// Value is a single decoded cell, tagged by the FieldDescriptor's Type it
// came from.
type Value struct {
	Type FieldType
	Str  string   // Character, Date (raw YYYYMMDD or "" if blank)
	Num  *Decimal // Numeric, nil if the field was blank
	Bool *bool    // Logical, nil if the field held "?" or was blank
}

// Decimal is a lossless fixed-point value, mirroring how dBase stores
// numeric fields as right-aligned ASCII digits with an implied decimal
// point rather than a binary float.
type Decimal struct {
	Mantissa int64
	Exponent uint32
}

// Float64 converts to a float64, possibly losing precision for very large
// mantissas.
func (d Decimal) Float64() float64 {
	if d.Exponent == 0 {
		return float64(d.Mantissa)
	}
	scale := pow10(d.Exponent)
	return float64(d.Mantissa) / float64(scale)
}

func (d Decimal) String() string {
	if d.Exponent == 0 {
		return fmt.Sprintf("%d", d.Mantissa)
	}
	scale := pow10(d.Exponent)
	integral := d.Mantissa / scale
	fractional := d.Mantissa % scale
	if fractional < 0 {
		fractional = -fractional
	}
	return fmt.Sprintf("%d.%0*d", integral, d.Exponent, fractional)
}

func pow10(n uint32) int64 {
	v := int64(1)
	for i := uint32(0); i < n; i++ {
		v *= 10
	}
	return v
}

// Row is one record's cells, in schema order.
type Row []Value

// Table holds a parsed header and field schema, and can produce fresh,
// independent row iterators over the same underlying data.
type Table struct {
	fields       []FieldDescriptor
	numRecords   int
	recordLength int
	dataOffset   int64
	src          io.ReaderAt
}

// Open parses the DBF header and field descriptors from src. src must
// support random access so that Rows can be called more than once to
// produce a fresh, restartable iterator.
func Open(src io.ReaderAt) (*Table, error) {
	header := make([]byte, headerSize)
	if _, err := src.ReadAt(header, 0); err != nil {
		return nil, domainerr.Wrap(err, domainerr.CodeMalformedDBF, "reading dbf header")
	}

	version := header[0] & 0x07
	if version != versionIII {
		return nil, domainerr.Newf(domainerr.CodeMalformedDBF, "unsupported dbase version %d, expected dBase III Plus", version)
	}

	numRecords := int(le32(header[4:8]))
	headerLen := int(le16(header[8:10]))
	recordLen := int(le16(header[10:12]))

	if headerLen < headerSize+1 {
		return nil, domainerr.Newf(domainerr.CodeMalformedDBF, "invalid header length %d", headerLen)
	}
	numFields := (headerLen - headerSize - 1) / fieldDescriptorSize

	fields := make([]FieldDescriptor, 0, numFields)
	descBuf := make([]byte, fieldDescriptorSize)
	offset := int64(headerSize)
	for i := 0; i < numFields; i++ {
		if _, err := src.ReadAt(descBuf, offset); err != nil {
			return nil, domainerr.Wrap(err, domainerr.CodeMalformedDBF, "reading field descriptor")
		}
		fd, err := parseFieldDescriptor(descBuf)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
		offset += fieldDescriptorSize
	}

	terminator := make([]byte, 1)
	if _, err := src.ReadAt(terminator, offset); err != nil {
		return nil, domainerr.Wrap(err, domainerr.CodeMalformedDBF, "reading header terminator")
	}
	if terminator[0] != headerTerminator {
		return nil, domainerr.Newf(domainerr.CodeMalformedDBF, "expected header terminator 0x0d, found 0x%02x", terminator[0])
	}

	return &Table{
		fields:       fields,
		numRecords:   numRecords,
		recordLength: recordLen,
		dataOffset:   int64(headerLen),
		src:          src,
	}, nil
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func parseFieldDescriptor(data []byte) (FieldDescriptor, error) {
	name := decodeCP437(bytes.TrimRight(data[0:11], "\x00"))
	ft := FieldType(data[11])
	switch ft {
	case Character, Numeric, Date, Logical:
	default:
		return FieldDescriptor{}, domainerr.Newf(domainerr.CodeMalformedDBF, "unsupported field type %q for field %s", ft, name)
	}
	return FieldDescriptor{
		Name:         name,
		Type:         ft,
		Length:       int(data[16]),
		DecimalCount: data[17],
	}, nil
}

// Fields returns the table's schema in declared order.
func (t *Table) Fields() []FieldDescriptor {
	return t.fields
}

// NumRecords returns the record count declared in the header. Deleted
// records are included in this count.
func (t *Table) NumRecords() int {
	return t.numRecords
}

// Rows returns a fresh iterator positioned at the first record. Multiple
// calls produce independent iterators over the same table.
func (t *Table) Rows() *RowIterator {
	return &RowIterator{table: t, pos: t.dataOffset}
}

// RowIterator walks live (non-deleted) records in order.
type RowIterator struct {
	table *Table
	pos   int64
	idx   int
}

var cp437Decoder = charmap.CodePage437.NewDecoder()

func decodeCP437(b []byte) string {
	out, err := cp437Decoder.Bytes(b)
	if err != nil {
		// The CP-437 decoder never actually fails on arbitrary bytes; this
		// is a defensive fallback in case that assumption ever breaks.
		return string(b)
	}
	return string(out)
}

// Next advances to the next live record, skipping deleted ones. It returns
// ok=false once records are exhausted (including on hitting the EOF
// marker before the declared record count is reached).
func (it *RowIterator) Next() (row Row, ok bool, err error) {
	// The header's record length already counts the leading deletion flag.
	recSize := it.table.recordLength
	if recSize < 1 {
		return nil, false, domainerr.Newf(domainerr.CodeMalformedDBF, "invalid record length %d", recSize)
	}
	buf := make([]byte, recSize)

	for it.idx < it.table.numRecords {
		n, readErr := it.table.src.ReadAt(buf, it.pos)
		if readErr == io.EOF && n == 0 {
			return nil, false, nil
		}
		if n > 0 && buf[0] == eofMarker {
			return nil, false, nil
		}
		if readErr != nil || n < recSize {
			return nil, false, domainerr.Newf(domainerr.CodeMalformedDBF, "truncated record at index %d", it.idx)
		}

		it.pos += int64(recSize)
		it.idx++

		flag := buf[0]
		if flag == deletedFlag {
			continue
		}
		if flag != liveFlag {
			return nil, false, domainerr.Newf(domainerr.CodeMalformedDBF, "invalid deletion flag 0x%02x at record %d", flag, it.idx-1)
		}

		row, err := decodeRow(it.table.fields, buf[1:])
		if err != nil {
			return nil, false, err
		}
		return row, true, nil
	}
	return nil, false, nil
}

func decodeRow(fields []FieldDescriptor, data []byte) (Row, error) {
	row := make(Row, len(fields))
	off := 0
	for i, fd := range fields {
		if off+fd.Length > len(data) {
			return nil, domainerr.Newf(domainerr.CodeMalformedDBF, "field %s runs past record length", fd.Name)
		}
		raw := data[off : off+fd.Length]
		off += fd.Length

		v, err := decodeField(fd, raw)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func decodeField(fd FieldDescriptor, raw []byte) (Value, error) {
	text := trimField(decodeCP437(raw))

	switch fd.Type {
	case Character, Date:
		return Value{Type: fd.Type, Str: text}, nil
	case Logical:
		return decodeLogical(fd.Type, text)
	case Numeric:
		return decodeNumeric(fd.Type, text)
	default:
		return Value{}, domainerr.Newf(domainerr.CodeMalformedDBF, "unsupported field type %s", fd.Type)
	}
}

// Character/date/numeric fields are NUL- or space-padded; whitespace-only
// fields normalize to empty.
func trimField(s string) string {
	return trimSpaceAndNul(s)
}

func trimSpaceAndNul(s string) string {
	start, end := 0, len(s)
	for start < end && isPad(s[start]) {
		start++
	}
	for end > start && isPad(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isPad(b byte) bool {
	return b == ' ' || b == '\x00' || b == '\t' || b == '\r' || b == '\n'
}

func decodeLogical(ft FieldType, text string) (Value, error) {
	if text == "" {
		return Value{Type: ft}, nil
	}
	switch text {
	case "T", "t", "Y", "y":
		v := true
		return Value{Type: ft, Bool: &v}, nil
	case "F", "f", "N", "n":
		v := false
		return Value{Type: ft, Bool: &v}, nil
	case "?":
		return Value{Type: ft}, nil
	default:
		return Value{}, domainerr.Newf(domainerr.CodeMalformedDBF, "unknown logical value %q", text)
	}
}

func decodeNumeric(ft FieldType, text string) (Value, error) {
	if text == "" {
		return Value{Type: ft}, nil
	}
	d, err := parseDecimal(text)
	if err != nil {
		return Value{}, domainerr.Wrap(err, domainerr.CodeMalformedDBF, fmt.Sprintf("invalid numeric value %q", text))
	}
	return Value{Type: ft, Num: &d}, nil
}

func parseDecimal(text string) (Decimal, error) {
	neg := false
	if len(text) > 0 && (text[0] == '-' || text[0] == '+') {
		neg = text[0] == '-'
		text = text[1:]
	}

	intPart, fracPart, hasDot := cutRune(text, '.')
	exponent := uint32(len(fracPart))

	mantissa, err := atoiDefaultZero(intPart)
	if err != nil {
		return Decimal{}, err
	}
	frac, err := atoiDefaultZero(fracPart)
	if err != nil {
		return Decimal{}, err
	}
	m := mantissa*pow10(exponent) + frac
	if neg {
		m = -m
	}
	if !hasDot {
		exponent = 0
	}
	return Decimal{Mantissa: m, Exponent: exponent}, nil
}

func cutRune(s string, r byte) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == r {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func atoiDefaultZero(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	var v int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid digit %q", c)
		}
		v = v*10 + int64(c-'0')
	}
	return v, nil
}
