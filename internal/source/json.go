package source

import (
	"context"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/artisanexperiences/fieldcheck/internal/fs"
)

// JSONFile reads records from a JSON document. A top-level object is one
// record; an array of objects yields one record per item.
type JSONFile struct {
	FS   fs.FS
	Path string
}

func (j *JSONFile) Records(_ context.Context) ([]Record, error) {
	fsys := j.FS
	if fsys == nil {
		fsys = fs.Default
	}
	data, err := fsys.ReadFile(j.Path)
	if err != nil {
		return nil, fmt.Errorf("reading json file: %w", err)
	}

	var p fastjson.Parser
	root, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", j.Path, err)
	}

	switch root.Type() {
	case fastjson.TypeObject:
		values, err := objectValues(root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", j.Path, err)
		}
		return []Record{{Label: j.Path, Values: values}}, nil
	case fastjson.TypeArray:
		items := root.GetArray()
		records := make([]Record, 0, len(items))
		for i, item := range items {
			values, err := objectValues(item)
			if err != nil {
				return nil, fmt.Errorf("%s item %d: %w", j.Path, i+1, err)
			}
			records = append(records, Record{
				Label:  fmt.Sprintf("%s#%d", j.Path, i+1),
				Values: values,
			})
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%s: expected an object or an array of objects, got %s", j.Path, root.Type())
	}
}

// objectValues flattens an object of scalars. Numbers keep their literal
// text and null becomes the empty string.
func objectValues(v *fastjson.Value) (map[string]string, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("expected an object, got %s", v.Type())
	}

	values := make(map[string]string, obj.Len())
	var visitErr error
	obj.Visit(func(key []byte, val *fastjson.Value) {
		if visitErr != nil {
			return
		}
		name := string(key)
		switch val.Type() {
		case fastjson.TypeString:
			values[name] = string(val.GetStringBytes())
		case fastjson.TypeNull:
			values[name] = ""
		case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
			values[name] = val.String()
		default:
			visitErr = fmt.Errorf("field %q must be a scalar", name)
		}
	})
	if visitErr != nil {
		return nil, visitErr
	}
	return values, nil
}
