// internal/library/library.go
//
// Puzzle collection management.
//
// Responsibilities:
//   - Load named puzzles from an environment-provided file or fall back to
//     the embedded collection.
//   - Parse every entry up front so a broken collection fails at startup.
//   - Lookups by id for the HTTP layer, the CLI and the daily puzzle.
//
// File format:
//   # name          starts an entry; the id is the name lowercased with
//                   spaces turned into dashes
//   ## comment      ignored
//   <grid lines>    the puzzle text, up to the next header
//
// Environment variables:
//   PUZZLES_FILE=/path/to/puzzles.txt
//
// Initialization is run once (sync.Once).

package library

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/pullblock/assets"
	"github.com/robalobadob/pullblock/internal/puzzle"
)

// Puzzle is one named entry of the collection.
type Puzzle struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Text  string        `json:"text"`
	Model *puzzle.Model `json:"-"`
}

// Library is an ordered, immutable puzzle collection.
type Library struct {
	puzzles []Puzzle
	byID    map[string]int
}

// ErrEmpty is returned when a collection holds no puzzles.
var ErrEmpty = errors.New("library: no puzzles")

// Load reads a collection. Every entry must parse and ids must be unique.
func Load(r io.Reader) (*Library, error) {
	lib := &Library{byID: make(map[string]int)}

	var name string
	var body []string
	flush := func() error {
		if name == "" {
			return nil
		}
		text := strings.Trim(strings.Join(body, "\n"), "\n")
		m, err := puzzle.Parse(text)
		if err != nil {
			return fmt.Errorf("library: puzzle %q: %w", name, err)
		}
		id := slug(name)
		if _, dup := lib.byID[id]; dup {
			return fmt.Errorf("library: duplicate puzzle id %q", id)
		}
		lib.byID[id] = len(lib.puzzles)
		lib.puzzles = append(lib.puzzles, Puzzle{ID: id, Name: name, Text: text, Model: m})
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		switch {
		case strings.HasPrefix(line, "##"):
			continue
		case strings.HasPrefix(line, "#"):
			if err := flush(); err != nil {
				return nil, err
			}
			name, body = strings.TrimSpace(line[1:]), nil
		case name != "":
			body = append(body, line)
		case line != "":
			return nil, fmt.Errorf("library: grid line %q before first header", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(lib.puzzles) == 0 {
		return nil, ErrEmpty
	}
	return lib, nil
}

// List returns the puzzles in file order.
func (l *Library) List() []Puzzle { return l.puzzles }

// ByID looks up a puzzle.
func (l *Library) ByID(id string) (Puzzle, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Puzzle{}, false
	}
	return l.puzzles[i], true
}

// At returns the i-th puzzle, wrapping around.
func (l *Library) At(i int) Puzzle {
	n := len(l.puzzles)
	return l.puzzles[((i%n)+n)%n]
}

// Len is the number of puzzles.
func (l *Library) Len() int { return len(l.puzzles) }

func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// --- process-wide collection ---

var (
	initOnce   sync.Once
	defaultLib *Library
	initialErr error
)

// Init loads the process-wide collection exactly once, from PUZZLES_FILE when
// set and from the embedded collection otherwise.
func Init() error {
	initOnce.Do(func() {
		var data []byte
		if path := os.Getenv("PUZZLES_FILE"); path != "" {
			data, initialErr = os.ReadFile(path)
		} else {
			data, initialErr = assets.Puzzles()
		}
		if initialErr != nil {
			return
		}
		defaultLib, initialErr = Load(bytes.NewReader(data))
	})
	return initialErr
}

// Default returns the collection loaded by Init, or nil before a successful
// Init.
func Default() *Library { return defaultLib }

// Stats returns the number of loaded puzzles.
func Stats() int {
	if defaultLib == nil {
		return 0
	}
	return defaultLib.Len()
}
