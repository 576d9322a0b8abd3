package document

import (
	"io"
	"strings"
)

// TextLoader reads plain UTF-8 text.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
