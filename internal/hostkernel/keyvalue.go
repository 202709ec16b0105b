package hostkernel

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// readKeyValueFile parses an os-release style file: KEY=value lines, single
// or double quoted values, # comments.
func readKeyValueFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	kv, err := godotenv.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return kv, nil
}
