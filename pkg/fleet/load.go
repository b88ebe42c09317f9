package fleet

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/gsmcwhirter/go-util/v7/deferutil"
	"github.com/pkg/errors"
)

const (
	xsdNamespace = "http://www.w3.org/2001/XMLSchema"
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Parse decodes a fleet save file.
func Parse(r io.Reader) (*Fleet, error) {
	f := &Fleet{}
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(f); err != nil {
		return nil, errors.Wrap(err, "could not xml decode fleet")
	}

	return f, nil
}

// Load reads and decodes the fleet file at path.
func Load(path string) (*Fleet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open fleet file")
	}
	defer deferutil.CheckDefer(f.Close)

	flt, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse fleet file %s", path)
	}

	return flt, nil
}

// Write serializes the fleet with the header and namespace declarations the
// game's own loader expects.
func (f *Fleet) Write(w io.Writer) error {
	f.XmlnsXSD = xsdNamespace
	f.XmlnsXSI = xsiNamespace

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "could not write xml header")
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(f); err != nil {
		return errors.Wrap(err, "could not xml encode fleet")
	}

	return errors.Wrap(encoder.Flush(), "could not flush fleet encoder")
}

// Save writes the fleet to path.
func (f *Fleet) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create fleet file")
	}
	defer deferutil.CheckDefer(out.Close)

	return f.Write(out)
}
