package importer

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/matzehuels/railsheet/pkg/network"
)

// IDAlphabet is the character set of generated ids.
const IDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultIDLength is the number of random characters in a generated id.
const DefaultIDLength = 10

// Prefixes of generated ids.
const (
	StationIDPrefix = network.StationPrefix
	LineIDPrefix    = "line_"
)

// IDFunc returns a fresh id starting with prefix.
type IDFunc func(prefix string) (string, error)

// NanoID returns an IDFunc producing prefix followed by length random
// characters from IDAlphabet. A non-positive length selects DefaultIDLength.
func NanoID(length int) IDFunc {
	if length <= 0 {
		length = DefaultIDLength
	}
	return func(prefix string) (string, error) {
		id, err := nanoid.Generate(IDAlphabet, length)
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		return prefix + id, nil
	}
}
