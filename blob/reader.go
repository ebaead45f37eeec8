package blob

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/tiny64/fontconv/csource"
)

// Decode reads the byte array called name from a file written by Encode
func Decode(r io.Reader, name string) ([]byte, error) {
	if name == "" {
		name = DefaultArray
	}

	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f, err := csource.Parse(src)
	if err != nil {
		return nil, err
	}

	d, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("blob: %s not found", name)
	}
	if len(d.Refs) > 0 || len(d.Scalar) > 0 {
		return nil, fmt.Errorf("blob: %s on line %d is not a byte array", name, d.Line)
	}

	data := make([]byte, 0, len(d.Values))
	for i, v := range d.Values {
		if v > 0xff {
			return nil, fmt.Errorf("blob: %s element %d value %#x does not fit in a byte", name, i, v)
		}
		data = append(data, byte(v))
	}
	return data, nil
}
