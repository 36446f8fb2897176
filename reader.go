package citybuf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tingold/orb-citybuf/flat"
)

// maxFrameSize bounds a single header or feature frame.
const maxFrameSize = 1 << 30

// Reader provides sequential read access to a CityBuf file.
type Reader struct {
	r            *bufio.Reader
	major, minor uint8
	header       *flat.Header
	read         uint64
}

// NewReader checks the magic number and reads the header frame from r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var magic [8]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMagic, err)
	}
	if string(magic[0:3]) != "FCB" || string(magic[4:7]) != "FCB" {
		return nil, fmt.Errorf("%w: % x", ErrInvalidMagic, magic)
	}
	rd := &Reader{r: br, major: magic[3], minor: magic[7]}
	buf, err := rd.frame()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("citybuf: reading header: %w", err)
	}
	rd.header = flat.GetSizePrefixedRootAsHeader(buf, 0)
	return rd, nil
}

// Version returns the format version from the magic number.
func (r *Reader) Version() (major, minor uint8) {
	return r.major, r.minor
}

// FlatHeader returns the raw header table.
func (r *Reader) FlatHeader() *flat.Header {
	return r.header
}

// Next returns the next feature table, or io.EOF after the last one.
func (r *Reader) Next() (*flat.CityFeature, error) {
	buf, err := r.frame()
	if err != nil {
		return nil, err
	}
	r.read++
	return flat.GetSizePrefixedRootAsCityFeature(buf, 0), nil
}

// frame reads one size-prefixed frame including its prefix.
func (r *Reader) frame() ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r.r, prefix[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated frame length", ErrInvalidData)
		}
		return nil, err
	}
	n := binary.LittleEndian.Uint32(prefix[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("%w: frame of %d bytes", ErrInvalidData, n)
	}
	buf := make([]byte, 4+int(n))
	copy(buf, prefix[:])
	if _, err := io.ReadFull(r.r, buf[4:]); err != nil {
		return nil, fmt.Errorf("%w: truncated frame: %v", ErrInvalidData, err)
	}
	return buf, nil
}

// Header returns a summary of the file header.
func (r *Reader) Header() *Header {
	h := r.header
	header := &Header{
		Major:         r.major,
		Minor:         r.minor,
		FeaturesCount: h.FeaturesCount(),
	}

	if t := h.Transform(nil); t != nil {
		s, tr := t.Scale(nil), t.Translate(nil)
		header.Scale = [3]float64{s.X(), s.Y(), s.Z()}
		header.Translate = [3]float64{tr.X(), tr.Y(), tr.Z()}
	}

	if e := h.GeographicalExtent(nil); e != nil {
		lo, hi := e.Min(nil), e.Max(nil)
		ext, _ := NewExtent([]float64{lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z()})
		header.Extent = &ext
	}

	var rs flat.ReferenceSystem
	if h.ReferenceSystem(&rs) != nil {
		header.ReferenceSystem = &ReferenceSystem{
			Authority:  string(rs.Authority()),
			Version:    rs.Version(),
			Code:       rs.Code(),
			CodeString: string(rs.CodeString()),
		}
	}

	header.Columns = make([]ColumnInfo, 0, h.ColumnsLength())
	for _, c := range r.Columns() {
		header.Columns = append(header.Columns, ColumnInfo{
			Name:     c.Name,
			Type:     c.Type.String(),
			Nullable: c.Nullable,
		})
	}
	return header
}

// Columns returns the attribute schema stored in the header.
func (r *Reader) Columns() []Column {
	n := r.header.ColumnsLength()
	cols := make([]Column, 0, n)
	for i := 0; i < n; i++ {
		var c flat.Column
		if r.header.Columns(&c, i) {
			cols = append(cols, Column{Name: string(c.Name()), Type: c.Type(), Nullable: c.Nullable()})
		}
	}
	return cols
}
