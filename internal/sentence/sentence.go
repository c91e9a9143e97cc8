// Package sentence supplies the practice sentences a session draws its
// targets from.
package sentence

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmpty  = errors.New("sentence: empty list")
	ErrNoRand = errors.New("sentence: no random source")
)

type Source interface {
	Sentences() []string
}

// List is a fixed in-memory Source.
type List []string

func (l List) Sentences() []string { return l }

var builtin = List{
	"The quick brown fox jumps over the lazy dog.",
	"Snow falls quietly on the sleeping city.",
	"A lightning bolt never strikes the same place twice, or so they say.",
	"Practice makes progress, not perfection.",
	"Every keystroke is a small step toward fluency.",
	"The winter wind carried the scent of pine across the valley.",
	"Slow is smooth, and smooth is fast.",
	"Small habits compound into remarkable results.",
	"She packed her bags and left before the storm arrived.",
	"Good code is written for people to read.",
	"첫눈이 내리는 밤에 조용히 창밖을 바라보았다.",
	"천천히 그리고 정확하게 입력하는 연습을 하세요.",
	"번개가 치고 나면 곧 천둥소리가 들려온다.",
}

// Builtin returns the bundled practice list.
func Builtin() Source {
	out := make(List, len(builtin))
	copy(out, builtin)
	return out
}

type file struct {
	Sentences []string `yaml:"sentences"`
}

// Load reads a YAML document of the form {sentences: [...]}. Blank entries
// are dropped; a file with nothing left is ErrEmpty.
func Load(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sentence: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Source, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sentence: parse: %w", err)
	}
	out := make(List, 0, len(f.Sentences))
	for _, s := range f.Sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Save writes src as a YAML sentence file that Load can read back.
func Save(path string, src Source) error {
	data, err := yaml.Marshal(file{Sentences: src.Sentences()})
	if err != nil {
		return fmt.Errorf("sentence: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("sentence: write %s: %w", path, err)
	}
	return nil
}

// Pick returns one sentence chosen uniformly at random.
func Pick(src Source, r *rand.Rand) (string, error) {
	if r == nil {
		return "", ErrNoRand
	}
	if src == nil {
		return "", ErrEmpty
	}
	list := src.Sentences()
	if len(list) == 0 {
		return "", ErrEmpty
	}
	return list[r.Intn(len(list))], nil
}
