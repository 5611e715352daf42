package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type decodeFunc func([]byte, any) error

// decoders maps the asset file extensions a FileStore reads.
var decoders = map[string]decodeFunc{
	".json": json.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
}

func decoderFor(path string) (decodeFunc, bool) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return dec, ok
}

func decodeAsset[T ValidatingSpec](path string, data []byte) (*Asset[T], error) {
	dec, ok := decoderFor(path)
	if !ok {
		return nil, fmt.Errorf("unsupported asset format %q", filepath.Ext(path))
	}

	asset := &Asset[T]{}
	if err := dec(data, asset); err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}
	return asset, nil
}
