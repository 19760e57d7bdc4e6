package output

import (
	"fmt"
	"os"
	"path/filepath"

	"pii-metamodel/internal/metamodel"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Encode serializes list in the given format.
func Encode(list metamodel.DataProtectionConfigList, f Format) ([]byte, error) {
	codec, err := CodecFor(f)
	if err != nil {
		return nil, err
	}

	// A nil list must still encode as an empty array.
	if list.Config == nil {
		list.Config = []metamodel.DataProtectionConfig{}
	}

	data, err := codec.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", f, err)
	}

	return data, nil
}

// WriteFile encodes list and writes it to path, creating parent
// directories as needed.
func WriteFile(list metamodel.DataProtectionConfigList, path string, f Format) error {
	data, err := Encode(list, f)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		// Create output directory if it doesn't exist
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}
