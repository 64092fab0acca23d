package cborhandler

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/philipp01105/catlog/core"
)

// Record is one emitted event as stored in the stream. Integer keys
// keep records compact.
type Record struct {
	Session   string     `cbor:"1,keyasint"`
	Time      time.Time  `cbor:"2,keyasint"`
	Subsystem string     `cbor:"3,keyasint"`
	Category  string     `cbor:"4,keyasint"`
	Level     core.Level `cbor:"5,keyasint"`
	Payload   string     `cbor:"6,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cborhandler: encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cborhandler: decoder mode: %v", err))
	}
}

// Decoder reads records back from a stream written by a CBORSink.
type Decoder struct {
	dec *cbor.Decoder
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: decMode.NewDecoder(r)}
}

// Next decodes the next record. It returns io.EOF at the end of the stream.
func (d *Decoder) Next() (Record, error) {
	var rec Record
	if err := d.dec.Decode(&rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader) ([]Record, error) {
	d := NewDecoder(r)
	var recs []Record
	for {
		rec, err := d.Next()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}
