package alignment

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

// MMSLabels is the label set of the MMS forced-alignment model without the
// star token. Index 0 is the CTC blank.
var MMSLabels = []string{
	"-", "a", "i", "e", "n", "o", "u", "t", "s", "r", "m", "k", "l", "d",
	"g", "h", "y", "b", "p", "w", "c", "v", "j", "z", "f", "'", "q", "x",
}

// DefaultDictionary returns the shared dictionary over MMSLabels.
var DefaultDictionary = sync.OnceValue(func() *Dictionary {
	d, err := NewDictionary(MMSLabels, 0)
	if err != nil {
		panic(err)
	}
	return d
})

// Dictionary maps transcript characters to model label indices.
// It is immutable after construction.
type Dictionary struct {
	labels []string
	index  map[rune]int
	blank  int
}

// NewDictionary builds a dictionary from single-character labels.
func NewDictionary(labels []string, blank int) (*Dictionary, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("empty label set")
	}
	if blank < 0 || blank >= len(labels) {
		return nil, fmt.Errorf("blank index %d out of range [0,%d)", blank, len(labels))
	}
	d := &Dictionary{
		labels: append([]string(nil), labels...),
		index:  make(map[rune]int, len(labels)),
		blank:  blank,
	}
	for i, l := range labels {
		if utf8.RuneCountInString(l) != 1 {
			return nil, fmt.Errorf("label %d (%q) must be a single character", i, l)
		}
		r, _ := utf8.DecodeRuneInString(l)
		if _, dup := d.index[r]; dup {
			return nil, fmt.Errorf("duplicate label %q", l)
		}
		d.index[r] = i
	}
	return d, nil
}

// Len returns the number of labels.
func (d *Dictionary) Len() int { return len(d.labels) }

// Blank returns the CTC blank index.
func (d *Dictionary) Blank() int { return d.blank }

// Label returns the label for index i.
func (d *Dictionary) Label(i int) string {
	if i < 0 || i >= len(d.labels) {
		return ""
	}
	return d.labels[i]
}

// Tokenize lowercases the transcript, splits it on whitespace and maps every
// character to its label index. Characters outside the dictionary, and the
// blank label itself, are dropped and returned separately so callers can
// report them.
func (d *Dictionary) Tokenize(transcript string) (tokens []int, dropped []rune) {
	for _, word := range strings.Fields(strings.ToLower(transcript)) {
		for _, r := range word {
			idx, ok := d.index[r]
			if !ok || idx == d.blank {
				dropped = append(dropped, r)
				continue
			}
			tokens = append(tokens, idx)
		}
	}
	return tokens, dropped
}
