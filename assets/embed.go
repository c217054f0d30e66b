package assets

import (
	"embed"
	"io/fs"
)

//go:embed puzzles.txt
var FS embed.FS

// PuzzleFile is the name of the built-in collection inside FS.
const PuzzleFile = "puzzles.txt"

// Puzzles returns the raw built-in collection.
func Puzzles() ([]byte, error) {
	return fs.ReadFile(FS, PuzzleFile)
}
