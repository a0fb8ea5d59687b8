package analytics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource reads a YAML dataset from disk on every Load so edits show up without a restart.
type FileSource struct {
	Path string
}

var _ Source = FileSource{}

func (f FileSource) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return Dataset{}, fmt.Errorf("analytics: open dataset: %w", err)
	}
	defer file.Close()
	return DecodeDataset(file)
}

// DecodeDataset parses a YAML dataset, rejecting unknown keys. Empty input is an empty dataset.
func DecodeDataset(r io.Reader) (Dataset, error) {
	var doc Dataset
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, nil
		}
		return Dataset{}, fmt.Errorf("analytics: decode dataset: %w", err)
	}
	return doc, nil
}
