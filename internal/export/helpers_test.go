package export_test

import (
	"os"
	"path/filepath"
)

func readTestdata(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join("..", "parser", "xml", "testdata", name))
}
