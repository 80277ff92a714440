package modeljson

import (
	"fmt"
	"os"
	"strings"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
)

// CodecForPath picks a codec from the file extension: .json.lz4, .gob, and
// .json (the default for anything else).
func CodecForPath(path string) Codec {
	switch {
	case strings.HasSuffix(path, lz4Extension):
		return NewLZ4Codec()
	case strings.HasSuffix(path, gobExtension):
		return NewGobCodec()
	default:
		return NewJSONCodec()
	}
}

// Save writes a model to path with the given codec.
func Save(path string, codec Codec, m *model.Model) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer file.Close()

	err = codec.Encode(file, m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	return nil
}

// Load reads a model from path with the given codec and rebuilds the ID
// index, which is not part of the interchange document.
func Load(path string, codec Codec) (*model.Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer file.Close()

	var m model.Model

	err = codec.Decode(file, &m)
	if err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}

	m.Reindex()

	return &m, nil
}

// LoadAuto loads a model, picking the codec from the file extension.
func LoadAuto(path string) (*model.Model, error) {
	return Load(path, CodecForPath(path))
}
