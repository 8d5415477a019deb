package passage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	bank := Default()
	require.Equal(t, []string{"comprehension", "subvocalization"}, bank.IDs())

	p, err := bank.Get("")
	require.NoError(t, err)
	assert.Equal(t, "comprehension", p.ID)
	assert.Len(t, p.Questions, 3)
	assert.Equal(t, 1, p.Questions[0].Answer)
	assert.Greater(t, p.Words(), 100)
}

func TestGetUnknown(t *testing.T) {
	_, err := Default().Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestParseRejectsInvalidBanks(t *testing.T) {
	cases := map[string]string{
		"empty":          "passages: []\n",
		"missing text":   "passages:\n  - id: a\n    title: A\n    questions:\n      - question: q\n        options: [x, y]\n        answer: 0\n",
		"one option":     "passages:\n  - id: a\n    title: A\n    text: t\n    questions:\n      - question: q\n        options: [x]\n        answer: 0\n",
		"answer too big": "passages:\n  - id: a\n    title: A\n    text: t\n    questions:\n      - question: q\n        options: [x, y]\n        answer: 2\n",
		"no questions":   "passages:\n  - id: a\n    title: A\n    text: t\n",
		"duplicate ids":  "passages:\n  - id: a\n    title: A\n    text: t\n    questions:\n      - question: q\n        options: [x, y]\n        answer: 0\n  - id: a\n    title: B\n    text: u\n    questions:\n      - question: q\n        options: [x, y]\n        answer: 1\n",
		"not yaml":       "passages: [",
	}
	for name, data := range cases {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	bank, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().IDs(), bank.IDs())

	path := filepath.Join(dir, "passages.yaml")
	data := "passages:\n  - id: short\n    title: Short\n    text: one two three\n    questions:\n      - question: How many?\n        options: [two, three]\n        answer: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	bank, err = Load(path)
	require.NoError(t, err)
	p, err := bank.Get("short")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Words())
}
