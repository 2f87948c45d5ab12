package block

import (
	"io"
	"strings"
)

// Lines renders the block as one string per row, top to bottom.
func (b Block) Lines() []string {
	lines := make([]string, len(b.rows))
	for i, row := range b.rows {
		lines[i] = strings.Join(row, "") + b.tail(i)
	}
	return lines
}

// String renders the block with rows separated by "\n". There is no
// trailing line break.
func (b Block) String() string {
	return strings.Join(b.Lines(), "\n")
}

// WriteTo writes every row followed by "\n" to w.
func (b Block) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, row := range b.rows {
		n, err := io.WriteString(w, strings.Join(row, "")+b.tail(i)+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
