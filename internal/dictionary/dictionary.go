// Package dictionary parses the embedded word/definition corpus into a
// searchable pool of (word, clue) pairs grouped by length (SPEC_FULL.md
// §4.1). The cleaning pipeline is a simplified, idiomatic-Go rendition of
// the original implementation's multi-stage clue extractor, not a
// translation of it.
package dictionary

import (
	"bufio"
	"fmt"
	"strings"
	"unicode"

	"github.com/sean-reid/crossword-generator/internal/xwerr"
)

// Word is an accepted dictionary entry: an uppercase ASCII headword and its
// cleaned one-sentence clue.
type Word struct {
	Text string // uppercase A-Z, length 3..25
	Clue string
}

// Stats summarizes a successful Dictionary.Initialize call.
type Stats struct {
	WordCount     int
	MaxLength     int
	MeanLength    float64
	AvgWordLength float64 // alias of MeanLength, grounded on original_source's DictionaryStats field name
}

// Dictionary is a process-singleton, read-only-after-init table of Words
// bucketed by length. The zero value is usable; call Initialize before use.
type Dictionary struct {
	buckets   map[int][]Word
	byText    map[string]bool
	maxLength int
	stats     Stats
	init      bool
}

// New returns an uninitialized Dictionary.
func New() *Dictionary {
	return &Dictionary{
		buckets: make(map[int][]Word),
		byText:  make(map[string]bool),
	}
}

// Initialize is idempotent: the first call parses the embedded corpus and
// indexes it; later calls are no-ops returning the cached Stats. minEntries
// is the acceptance threshold from config.Config.MinDictionaryEntries.
func (d *Dictionary) Initialize(minEntries int) (Stats, error) {
	if d.init {
		return d.stats, nil
	}
	if d.buckets == nil {
		d.buckets = make(map[int][]Word)
	}
	if d.byText == nil {
		d.byText = make(map[string]bool)
	}
	stats, err := d.load(embeddedCorpus, minEntries)
	if err != nil {
		return Stats{}, err
	}
	d.stats = stats
	d.init = true
	return stats, nil
}

// Initialized reports whether Initialize has completed successfully.
func (d *Dictionary) Initialized() bool {
	return d.init
}

// Bucket returns the Words of the given length, or nil if Initialize has not
// run or no word of that length was accepted.
func (d *Dictionary) Bucket(length int) []Word {
	if !d.init {
		return nil
	}
	return d.buckets[length]
}

// Clue returns the clue text for an exact (case-sensitive, uppercase)
// headword match, or "" if the word is not in the dictionary.
func (d *Dictionary) Clue(word string) string {
	for _, w := range d.buckets[len(word)] {
		if w.Text == word {
			return w.Clue
		}
	}
	return ""
}

func (d *Dictionary) load(corpus string, minEntries int) (Stats, error) {
	scanner := bufio.NewScanner(strings.NewReader(corpus))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var totalLen int
	maxLen := 0
	count := 0

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		word, clue, ok := parseEntry(line)
		if !ok {
			continue
		}
		if d.byText[word] {
			continue // multiple definitions of the same headword: keep the first
		}
		d.byText[word] = true
		d.buckets[len(word)] = append(d.buckets[len(word)], Word{Text: word, Clue: clue})
		count++
		totalLen += len(word)
		if len(word) > maxLen {
			maxLen = len(word)
		}
	}
	if err := scanner.Err(); err != nil {
		return Stats{}, xwerr.Wrap(xwerr.InternalError, "dictionary: failed to read corpus", err)
	}

	if count < minEntries {
		return Stats{}, xwerr.New(xwerr.PoolTooSmall,
			fmt.Sprintf("dictionary: corpus yielded %d acceptable entries, need at least %d", count, minEntries))
	}

	d.maxLength = maxLen
	mean := 0.0
	if count > 0 {
		mean = float64(totalLen) / float64(count)
	}
	return Stats{
		WordCount:     count,
		MaxLength:     maxLen,
		MeanLength:    mean,
		AvgWordLength: mean,
	}, nil
}

// parseEntry applies the ingestion rules in order, returning ok == false on
// the first rejection.
func parseEntry(line string) (word, clue string, ok bool) {
	headword, rest := splitHeadword(line)
	if headword == "" {
		return "", "", false
	}
	word = strings.ToUpper(headword)
	if len(word) < 3 || len(word) > 25 {
		return "", "", false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return "", "", false
		}
	}

	clue = cleanDefinition(rest)
	if !acceptableClue(clue, word) {
		return "", "", false
	}
	return word, clue, true
}

// splitHeadword extracts the leading alphabetic token and returns it along
// with the remainder of the line.
func splitHeadword(line string) (headword, rest string) {
	line = strings.TrimLeft(line, " \t")
	i := 0
	for i < len(line) && unicode.IsLetter(rune(line[i])) {
		i++
	}
	if i == 0 {
		return "", ""
	}
	return line[:i], line[i:]
}

// posTags are part-of-speech markers stripped from the front of a
// definition, grounded on original_source/dictionary.rs's POS-marker list.
var posTags = []string{
	"adj.", "adv.", "conj.", "prep.", "n.", "v.", "vt.", "vi.",
	"n.pl.", "v.tr.", "v.intr.", "attrib.",
}

// cleanDefinition strips leading part-of-speech tags and parenthesized
// qualifiers, takes the first sentence, and collapses whitespace.
func cleanDefinition(def string) string {
	s := strings.TrimSpace(def)

	// Strip leading parenthesized qualifiers, e.g. "(n.) A small mammal."
	for strings.HasPrefix(s, "(") {
		if end := strings.IndexByte(s, ')'); end >= 0 {
			s = strings.TrimSpace(s[end+1:])
		} else {
			break
		}
	}

	// Strip a leading bare POS tag, e.g. "n. A small mammal."
	for {
		stripped := false
		for _, tag := range posTags {
			if strings.HasPrefix(s, tag+" ") {
				s = strings.TrimSpace(s[len(tag):])
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	// Take the first sentence: terminator '.', ';', or newline.
	if idx := strings.IndexAny(s, ".;\n"); idx >= 0 {
		s = s[:idx]
	}

	// Collapse whitespace.
	fields := strings.Fields(s)
	s = strings.Join(fields, " ")
	if s != "" {
		s += "."
	}
	return s
}

// acceptableClue applies the clue-rejection rules: self-reference, too
// short, pure abbreviation gloss, unprintable characters.
func acceptableClue(clue, word string) bool {
	if clue == "" {
		return false
	}
	if len(clue) < 8 {
		return false
	}
	for _, r := range clue {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	upperClue := strings.ToUpper(clue)
	for _, token := range strings.FieldsFunc(upperClue, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if token == word {
			return false // self-reference
		}
	}
	if isAbbreviationGloss(clue) {
		return false
	}
	return true
}

// isAbbreviationGloss reports whether a clue opens with "abbr." or
// "abbreviation" (case-insensitive), e.g. "Abbreviation for et cetera".
// Only that prefix is checked; all-caps acronyms elsewhere in a clue are not
// detected.
func isAbbreviationGloss(clue string) bool {
	lower := strings.ToLower(clue)
	return strings.HasPrefix(lower, "abbr.") || strings.HasPrefix(lower, "abbreviation")
}
