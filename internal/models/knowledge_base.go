package models

import "strings"

// Topic is one phrase -> canned answer pair inside a category.
type Topic struct {
	Phrase string
	Answer string
}

// Category groups topics; topic order is the document order.
type Category struct {
	Name   string
	Topics []Topic
}

// Entry is a flattened, match-ready topic.
type Entry struct {
	Category string
	Phrase   string
	Pattern  string // lower-cased Phrase
	Answer   string
}

// KnowledgeBase is an immutable category -> topic -> answer table.
// Matching walks entries in document order and the first hit wins, so
// callers must never reorder categories or topics.
type KnowledgeBase struct {
	categories []Category
	entries    []Entry
}

// NewKnowledgeBase copies the categories and builds the match index.
// A topic repeated within a category keeps its first position and its
// last answer.
func NewKnowledgeBase(categories []Category) *KnowledgeBase {
	kb := &KnowledgeBase{}
	for _, c := range categories {
		kb.put(c)
	}
	kb.index()
	return kb
}

func (kb *KnowledgeBase) put(c Category) {
	pos := -1
	for i := range kb.categories {
		if kb.categories[i].Name == c.Name {
			pos = i
			break
		}
	}
	if pos < 0 {
		kb.categories = append(kb.categories, Category{Name: c.Name})
		pos = len(kb.categories) - 1
	}

	target := &kb.categories[pos]
	for _, t := range c.Topics {
		replaced := false
		for i := range target.Topics {
			if target.Topics[i].Phrase == t.Phrase {
				target.Topics[i].Answer = t.Answer
				replaced = true
				break
			}
		}
		if !replaced {
			target.Topics = append(target.Topics, t)
		}
	}
}

func (kb *KnowledgeBase) index() {
	kb.entries = kb.entries[:0]
	for _, c := range kb.categories {
		for _, t := range c.Topics {
			// an empty pattern would be contained in every query;
			// an empty answer would make an empty reply
			if t.Phrase == "" || t.Answer == "" {
				continue
			}
			kb.entries = append(kb.entries, Entry{
				Category: c.Name,
				Phrase:   t.Phrase,
				Pattern:  strings.ToLower(t.Phrase),
				Answer:   t.Answer,
			})
		}
	}
}

// Match returns the first entry whose pattern is a substring of queryLower.
func (kb *KnowledgeBase) Match(queryLower string) (Entry, bool) {
	if kb == nil {
		return Entry{}, false
	}
	for _, e := range kb.entries {
		if strings.Contains(queryLower, e.Pattern) {
			return e, true
		}
	}
	return Entry{}, false
}

// Merge returns a new knowledge base: categories of other are folded into
// the receiver, overwriting answers of existing topics in place and
// appending anything new. Merging the same data twice is a no-op.
func (kb *KnowledgeBase) Merge(other *KnowledgeBase) *KnowledgeBase {
	merged := NewKnowledgeBase(kb.Categories())
	for _, c := range other.Categories() {
		merged.put(c)
	}
	merged.index()
	return merged
}

// Categories returns a deep copy of the categories in document order.
func (kb *KnowledgeBase) Categories() []Category {
	if kb == nil {
		return nil
	}
	out := make([]Category, len(kb.categories))
	for i, c := range kb.categories {
		out[i] = Category{Name: c.Name, Topics: append([]Topic(nil), c.Topics...)}
	}
	return out
}

// Category looks up one category by name.
func (kb *KnowledgeBase) Category(name string) (Category, bool) {
	for _, c := range kb.Categories() {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Entries returns the match index in the order Match walks it.
func (kb *KnowledgeBase) Entries() []Entry {
	if kb == nil {
		return nil
	}
	return append([]Entry(nil), kb.entries...)
}

// Len is the number of matchable topics.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.entries)
}
