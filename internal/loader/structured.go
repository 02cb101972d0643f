package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-invoicegen/pkg/records"
)

// parseJSON decodes a structured-object payload preserving object key
// order. The stock unmarshaller decodes objects into unordered maps, so
// this walks the token stream instead.
func parseJSON(location string, data []byte) ([]*records.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("loader: parse json %q: %w", location, err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		return nil, records.NewSchemaError(location, fmt.Sprintf("trailing content after document root: %v", tok))
	}
	return recordsFromRoot(location, root)
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			rec := records.NewRecord()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				rec.Set(key, value)
			}
			// closing brace
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return rec, nil
		case '[':
			seq := []any{}
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// string, json.Number, bool, or nil
		return tok, nil
	}
}

// parseYAML decodes a YAML payload through the node API so mapping key
// order survives, then applies the same root normalization as JSON.
func parseYAML(location string, data []byte) ([]*records.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loader: parse yaml %q: %w", location, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, records.NewSchemaError(location, "document is empty")
	}

	root, err := yamlNodeValue(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("loader: parse yaml %q: %w", location, err)
	}
	return recordsFromRoot(location, root)
}

func yamlNodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		rec := records.NewRecord()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := yamlNodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec.Set(node.Content[i].Value, value)
		}
		return rec, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := yamlNodeValue(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, value)
		}
		return seq, nil
	case yaml.AliasNode:
		return yamlNodeValue(node.Alias)
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", node.Kind)
	}
}

// recordsFromRoot applies the structured-object root rules: a sequence of
// objects is the record set; an object root is searched in field order for
// the first non-empty sequence of objects, falling back to treating the
// whole root as a single record; anything else is a schema error.
func recordsFromRoot(location string, root any) ([]*records.Record, error) {
	switch v := root.(type) {
	case []any:
		return recordSequence(location, v)
	case *records.Record:
		for _, key := range v.Keys() {
			value, _ := v.Get(key)
			seq, ok := value.([]any)
			if !ok || len(seq) == 0 {
				continue
			}
			if _, ok := seq[0].(*records.Record); !ok {
				continue
			}
			return recordSequence(location, seq)
		}
		return []*records.Record{v}, nil
	default:
		return nil, records.NewSchemaError(location, "unsupported document root: expected a sequence or an object")
	}
}

func recordSequence(location string, seq []any) ([]*records.Record, error) {
	recs := make([]*records.Record, 0, len(seq))
	for i, item := range seq {
		rec, ok := item.(*records.Record)
		if !ok {
			return nil, records.NewSchemaError(location, fmt.Sprintf("element %d is not an object", i))
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
