package report

import "strings"

const (
	// DefaultLimit is Telegram's maximum message length.
	DefaultLimit = 4096

	// Margin is headroom kept below the limit when packing lines, so the
	// transport's own encoding overhead never pushes a message over.
	Margin = 256
)

// Chunk is one transport-sized piece of a report body. Ordinals are 1-based
// and follow body order.
type Chunk struct {
	Text    string
	Ordinal int
}

// Split packs the body's lines into chunks of at most limit characters
// (DefaultLimit when limit is not positive), greedily and in order. Lines
// are never split: a chunk boundary always falls on a line break, so joining
// the chunk texts with a line break restores the body byte for byte.
//
// A body that already fits within the limit comes back as one chunk,
// untouched. A single line longer than the limit becomes its own oversized
// chunk; the transport may reject it, but truncating here would corrupt the
// report.
func Split(body string, limit int) []Chunk {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(body) <= limit {
		return []Chunk{{Text: body, Ordinal: 1}}
	}

	capacity := limit - Margin

	var chunks []Chunk
	var cur []string
	size := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		chunks = append(chunks, Chunk{Text: strings.Join(cur, "\n"), Ordinal: len(chunks) + 1})
		cur = nil
		size = 0
	}

	for _, line := range strings.Split(body, "\n") {
		if len(cur) == 0 {
			cur = append(cur, line)
			size = len(line)
			continue
		}
		if size+1+len(line) > capacity {
			flush()
			cur = append(cur, line)
			size = len(line)
			continue
		}
		cur = append(cur, line)
		size += 1 + len(line)
	}
	flush()

	return chunks
}

// Reassemble restores a body from its chunks.
func Reassemble(chunks []Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n")
}
