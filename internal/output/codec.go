package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatBSON    Format = "bson"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatMsgpack, FormatBSON}

// ParseFormat resolves a format name, case-insensitively. "yml" and "mpk"
// are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	case "bson":
		return FormatBSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %v)", name, Formats)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}

	f, err := ParseFormat(ext)

	return f, err == nil
}

// Codec encodes values in one format.
type Codec interface {
	Marshal(v any) ([]byte, error)
}

// CodecFor returns the codec of a format.
func CodecFor(f Format) (Codec, error) {
	switch f {
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatYAML:
		return yamlCodec{}, nil
	case FormatMsgpack:
		return msgpackCodec{}, nil
	case FormatBSON:
		return bsonCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

type jsonCodec struct{}

// Marshal pretty-prints with a two-space indent and a trailing newline.
func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

type yamlCodec struct{}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

type bsonCodec struct{}

func (bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}
