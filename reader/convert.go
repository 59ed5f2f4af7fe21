package reader

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/textscan/core"
)

// maxDepth bounds object conversion. Font dictionaries are shallow; a
// deeper structure is a reference cycle or a hostile file.
const maxDepth = 16

var errTooDeep = errors.New("object nesting too deep")

// supportedFilters are the stream filters the PDF library decodes.
var supportedFilters = map[string]bool{
	"FlateDecode":   true,
	"ASCII85Decode": true,
}

// convert copies a value, following indirect references, into the core
// object model. Streams are decoded.
func convert(v pdf.Value, depth int) (core.Object, error) {
	if depth > maxDepth {
		return nil, errTooDeep
	}

	switch v.Kind() {
	case pdf.Null:
		return core.Null{}, nil
	case pdf.Bool:
		return core.Bool(v.Bool()), nil
	case pdf.Integer:
		return core.Int(v.Int64()), nil
	case pdf.Real:
		return core.Real(v.Float64()), nil
	case pdf.String:
		return core.String(v.RawString()), nil
	case pdf.Name:
		return core.Name(v.Name()), nil
	case pdf.Array:
		arr := make(core.Array, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			obj, err := convert(v.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, obj)
		}
		return arr, nil
	case pdf.Dict:
		return convertDict(v, depth)
	case pdf.Stream:
		dict, err := convertDict(v, depth)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := readStream(&buf, v); err != nil {
			return nil, err
		}
		return &core.Stream{Dict: dict, Data: buf.Bytes()}, nil
	}
	return nil, fmt.Errorf("unsupported object kind %d", v.Kind())
}

func convertDict(v pdf.Value, depth int) (core.Dict, error) {
	dict := make(core.Dict)
	for _, key := range v.Keys() {
		// /Parent links lead back up the page tree
		if key == "Parent" {
			continue
		}
		obj, err := convert(v.Key(key), depth+1)
		if err != nil {
			return nil, fmt.Errorf("/%s: %w", key, err)
		}
		dict[key] = obj
	}
	return dict, nil
}

// checkFilters rejects filters the library would panic on.
func checkFilters(filter pdf.Value) error {
	switch filter.Kind() {
	case pdf.Null:
		return nil
	case pdf.Name:
		if !supportedFilters[filter.Name()] {
			return fmt.Errorf("unsupported filter %s", filter.Name())
		}
	case pdf.Array:
		for i := 0; i < filter.Len(); i++ {
			if err := checkFilters(filter.Index(i)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("malformed /Filter")
	}
	return nil
}
