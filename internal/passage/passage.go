// Package passage loads the bank of reading test passages.
package passage

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/readpace/internal/pacer"
)

//go:embed default.yaml
var defaultBank []byte

// ErrNotFound is returned when a passage id is not in the bank.
var ErrNotFound = errors.New("passage not found")

// Question is a multiple-choice comprehension question. Answer indexes Options.
type Question struct {
	Prompt  string   `yaml:"question" validate:"required"`
	Options []string `yaml:"options" validate:"min=2,dive,required"`
	Answer  int      `yaml:"answer" validate:"gte=0"`
}

// Passage is a text with its comprehension questions.
type Passage struct {
	ID        string     `yaml:"id" validate:"required"`
	Title     string     `yaml:"title" validate:"required"`
	Text      string     `yaml:"text" validate:"required"`
	Questions []Question `yaml:"questions" validate:"min=1,dive"`
}

// Words returns the number of words in the passage text.
func (p Passage) Words() int {
	return len(pacer.Tokenize(p.Text))
}

// Bank is an ordered set of passages.
type Bank struct {
	Passages []Passage `yaml:"passages" validate:"min=1,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		q := sl.Current().Interface().(Question)
		if q.Answer >= len(q.Options) {
			sl.ReportError(q.Answer, "Answer", "answer", "answer_in_options", "")
		}
	}, Question{})
	return v
}

// Default returns the embedded passage bank.
func Default() Bank {
	bank, err := Parse(defaultBank)
	if err != nil {
		panic(fmt.Sprintf("embedded passage bank is invalid: %v", err))
	}
	return bank
}

// Load reads a bank from path. A missing file yields the default bank.
func Load(path string) (Bank, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Bank{}, fmt.Errorf("failed to read passages: %w", err)
	}
	bank, err := Parse(data)
	if err != nil {
		return Bank{}, fmt.Errorf("%s: %w", path, err)
	}
	return bank, nil
}

// Parse decodes and validates a YAML passage bank.
func Parse(data []byte) (Bank, error) {
	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return Bank{}, fmt.Errorf("failed to decode passages: %w", err)
	}
	if err := validate.Struct(bank); err != nil {
		return Bank{}, fmt.Errorf("invalid passages: %w", err)
	}
	seen := make(map[string]struct{}, len(bank.Passages))
	for _, p := range bank.Passages {
		if _, ok := seen[p.ID]; ok {
			return Bank{}, fmt.Errorf("invalid passages: duplicate id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return bank, nil
}

// Get returns the passage with id, or the first passage when id is empty.
func (b Bank) Get(id string) (Passage, error) {
	if id == "" && len(b.Passages) > 0 {
		return b.Passages[0], nil
	}
	for _, p := range b.Passages {
		if p.ID == id {
			return p, nil
		}
	}
	return Passage{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// IDs returns the passage ids in bank order.
func (b Bank) IDs() []string {
	ids := make([]string, len(b.Passages))
	for i, p := range b.Passages {
		ids[i] = p.ID
	}
	return ids
}
