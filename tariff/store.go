package tariff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"sysafari.com/customs/mguard/textnorm"
)

// Store is the read-only tariff schedule. It is safe for concurrent use.
type Store struct {
	entries  []Entry
	byCode   map[string]int
	keywords []normalizedKeywords
}

type normalizedKeywords struct {
	code  string
	terms []string
}

// NewStore indexes entries. Duplicate codes are rejected.
func NewStore(entries []Entry) (*Store, error) {
	s := &Store{
		entries: make([]Entry, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	copy(s.entries, entries)

	for i, e := range s.entries {
		if e.Code == "" {
			return nil, fmt.Errorf("tariff entry %d has an empty code", i)
		}
		if _, ok := s.byCode[e.Code]; ok {
			return nil, fmt.Errorf("duplicate tariff code %s", e.Code)
		}
		s.byCode[e.Code] = i

		terms := make([]string, 0, len(e.Keywords))
		for _, k := range e.Keywords {
			if n := textnorm.Normalize(k); n != "" {
				terms = append(terms, n)
			}
		}
		s.keywords = append(s.keywords, normalizedKeywords{code: e.Code, terms: terms})
	}
	return s, nil
}

// Default returns the built-in schedule.
func Default() *Store {
	s, err := NewStore(DefaultEntries)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadFile reads a YAML/JSON schedule with a top level "tariffs" list.
func LoadFile(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read tariff file %s: %w", path, err)
	}

	var entries []Entry
	if err := v.UnmarshalKey("tariffs", &entries); err != nil {
		return nil, fmt.Errorf("decode tariff file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, errors.New("tariff file " + path + " has no entries")
	}
	return NewStore(entries)
}

// Entries returns the schedule in table order.
func (s *Store) Entries() []Entry {
	return s.entries
}

func (s *Store) Len() int {
	return len(s.entries)
}

// FindByCode looks up an exact tariff code.
func (s *Store) FindByCode(code string) (Entry, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Keywords returns the normalized keywords of code.
func (s *Store) Keywords(code string) []string {
	i, ok := s.byCode[code]
	if !ok {
		return nil
	}
	return s.keywords[i].terms
}

// ExpandTerms returns every keyword of every code that has at least one keyword
// starting a word of the description, in table order without duplicates.
func (s *Store) ExpandTerms(description string) []string {
	desc := " " + textnorm.Normalize(description)
	if strings.TrimSpace(desc) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var expanded []string
	for _, kw := range s.keywords {
		if !containsWordPrefix(desc, kw.terms) {
			continue
		}
		for _, term := range kw.terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			expanded = append(expanded, term)
		}
	}
	return expanded
}

// CodesForKeyword returns the codes whose keywords contain the normalized query.
func (s *Store) CodesForKeyword(query string) []string {
	q := textnorm.Normalize(query)
	if q == "" {
		return nil
	}
	var codes []string
	for _, kw := range s.keywords {
		for _, term := range kw.terms {
			if strings.Contains(term, q) {
				codes = append(codes, kw.code)
				break
			}
		}
	}
	return codes
}

func containsWordPrefix(paddedDesc string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(paddedDesc, " "+term) {
			return true
		}
	}
	return false
}
