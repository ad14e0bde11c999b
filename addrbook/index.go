package addrbook

import (
	"fmt"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
)

// Index is a full-text search layer over a book. Fuzzy matching degrades on
// large books with long multi-word descriptions; the index tokenizes
// descriptions properly so "kyber staking proxy" finds the right entry no
// matter the word order.
type Index struct {
	index bleve.Index
	byID  map[string]AddressDesc
}

type indexedDoc struct {
	Desc string `json:"desc"`
	Type string `json:"type"`
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = en.AnalyzerName

	defaultMapping := bleve.NewDocumentMapping()
	defaultMapping.AddFieldMappingsAt("desc", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", defaultMapping)
	indexMapping.TypeField = "type"
	indexMapping.DefaultAnalyzer = "en"
	return indexMapping
}

// NewIndex builds an in-memory index over the book's entries. The book is
// small enough (thousands of entries at most) that rebuilding on startup
// beats managing an on-disk index and its staleness.
func NewIndex(b *Book) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("couldn't create address index: %w", err)
	}
	byID := map[string]AddressDesc{}
	batch := index.NewBatch()
	for _, desc := range b.source {
		byID[desc.Address] = desc
		err = batch.Index(desc.Address, indexedDoc{Desc: desc.Desc, Type: "_default"})
		if err != nil {
			return nil, fmt.Errorf("couldn't index %s: %w", desc.Address, err)
		}
	}
	if err = index.Batch(batch); err != nil {
		return nil, fmt.Errorf("couldn't build address index: %w", err)
	}
	return &Index{index: index, byID: byID}, nil
}

// Search returns up to limit entries matching the query, best first.
func (ix *Index) Search(query string, limit int) ([]AddressDesc, error) {
	q := bleve.NewMatchQuery(query)
	q.SetField("desc")
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	res, err := ix.index.Search(req)
	if err != nil {
		return nil, err
	}
	result := []AddressDesc{}
	for _, hit := range res.Hits {
		if desc, ok := ix.byID[hit.ID]; ok {
			result = append(result, desc)
		}
	}
	return result, nil
}

// IndexedBook layers full-text search over a book while keeping the book's
// fuzzy matching as a fallback for typo-heavy input. It satisfies the same
// Find contract as Book.
type IndexedBook struct {
	*Book
	index *Index
}

func NewIndexedBook(b *Book) (*IndexedBook, error) {
	ix, err := NewIndex(b)
	if err != nil {
		return nil, err
	}
	return &IndexedBook{Book: b, index: ix}, nil
}

func (ib *IndexedBook) Find(input string) (string, error) {
	matches, err := ib.index.Search(input, 1)
	if err == nil && len(matches) > 0 {
		return matches[0].Address, nil
	}
	return ib.Book.Find(input)
}
