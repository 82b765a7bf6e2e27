package sourcefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Azhovan/treeconf"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures file source behavior.
type Options struct {
	// Format: "native", "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (returns an empty tree).
	Required bool
}

type fileSource struct {
	path string
	opts Options
}

// New creates a file-based configuration source.
func New(path string, opts Options) treeconf.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Load reads and parses the file into a section tree.
func (f *fileSource) Load(ctx context.Context) (*treeconf.RawNode, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, fmt.Errorf("required config file not found: %s: %w", f.path, err)
			}
			return treeconf.NewRawNode(""), nil
		}
		return nil, fmt.Errorf("read config file %s: %w", f.path, err)
	}

	format := f.opts.Format
	if format == "" {
		format = inferFormat(f.path)
	}

	var root *treeconf.RawNode
	switch format {
	case "native":
		root, err = treeconf.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", f.path, err)
		}
	case "yaml", "yml":
		root, err = decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", f.path, err)
		}
	case "json":
		root, err = decodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse JSON file %s: %w", f.path, err)
		}
	case "toml":
		root, err = decodeTOML(data)
		if err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", f.path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: native, yaml, json, toml)", format)
	}

	root.StampSource(f.Name())
	return root, nil
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".config", ".ini", ".cfg", ".conf":
		return "native"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

func outsideSection(key string) error {
	return fmt.Errorf("option %s appears outside any section", key)
}

// decodeYAML walks the node tree so section and option order survive.
func decodeYAML(data []byte) (*treeconf.RawNode, error) {
	root := treeconf.NewRawNode("")
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return root, nil
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, errors.New("top level must be a mapping of sections")
	}
	if err := fillYAML(root, top, true); err != nil {
		return nil, err
	}
	return root, nil
}

func fillYAML(node *treeconf.RawNode, m *yaml.Node, top bool) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		val := m.Content[i+1]
		if val.Kind == yaml.AliasNode {
			val = val.Alias
		}
		switch val.Kind {
		case yaml.MappingNode:
			if err := fillYAML(node.Child(key), val, false); err != nil {
				return err
			}
		case yaml.SequenceNode:
			if top {
				return outsideSection(key)
			}
			items := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return fmt.Errorf("list %s may only contain scalars", key)
				}
				items = append(items, item.Value)
			}
			node.SetAt(key, strings.Join(items, " "), val.Line)
		default:
			if top {
				return outsideSection(key)
			}
			value := val.Value
			if val.Tag == "!!null" {
				value = ""
			}
			node.SetAt(key, value, val.Line)
		}
	}
	return nil
}

// decodeJSON reads the token stream so section and option order survive.
func decodeJSON(data []byte) (*treeconf.RawNode, error) {
	root := treeconf.NewRawNode("")
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return root, nil
	}
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("top level must be an object of sections")
	}
	if err := fillJSON(dec, root, true); err != nil {
		return nil, err
	}
	return root, nil
}

func fillJSON(dec *json.Decoder, node *treeconf.RawNode, top bool) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case json.Delim:
			if v == '{' {
				if err := fillJSON(dec, node.Child(key), false); err != nil {
					return err
				}
				continue
			}
			if top {
				return outsideSection(key)
			}
			items, err := jsonArray(dec, key)
			if err != nil {
				return err
			}
			node.Set(key, strings.Join(items, " "))
		default:
			if top {
				return outsideSection(key)
			}
			node.Set(key, jsonScalar(v))
		}
	}
	_, err := dec.Token()
	return err
}

func jsonArray(dec *json.Decoder, key string) ([]string, error) {
	var items []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if _, nested := tok.(json.Delim); nested {
			return nil, fmt.Errorf("list %s may only contain scalars", key)
		}
		items = append(items, jsonScalar(tok))
	}
	_, err := dec.Token()
	return items, err
}

func jsonScalar(tok json.Token) string {
	switch v := tok.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// decodeTOML builds the tree from a decoded map. TOML tables carry no
// order through map decoding, so keys are sorted.
func decodeTOML(data []byte) (*treeconf.RawNode, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	root := treeconf.NewRawNode("")
	if err := fillMap(root, raw, true); err != nil {
		return nil, err
	}
	return root, nil
}

func fillMap(node *treeconf.RawNode, m map[string]any, top bool) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := m[key].(type) {
		case map[string]any:
			if err := fillMap(node.Child(key), v, false); err != nil {
				return err
			}
		case []any:
			if top {
				return outsideSection(key)
			}
			items := make([]string, 0, len(v))
			for _, item := range v {
				if _, nested := item.(map[string]any); nested {
					return fmt.Errorf("list %s may only contain scalars", key)
				}
				items = append(items, fmt.Sprint(item))
			}
			node.Set(key, strings.Join(items, " "))
		default:
			if top {
				return outsideSection(key)
			}
			node.Set(key, fmt.Sprint(v))
		}
	}
	return nil
}
