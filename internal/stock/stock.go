// Package stock holds the built-in filter definitions shipped with the
// binary. They are loaded read-only when no definition files are
// configured.
package stock

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/ivoronin/scenefilter/internal/filterxml"
)

//go:embed data/filters.xml
var filtersXML []byte

var document *filterxml.Document

func init() {
	doc, err := filterxml.ReadDocument(bytes.NewReader(filtersXML))
	if err != nil {
		panic(fmt.Sprintf("failed to load stock filters: %v", err))
	}
	document = doc
}

// Document returns a copy of the stock filter document.
func Document() *filterxml.Document {
	doc := *document
	doc.Filters = append([]filterxml.FilterElement(nil), document.Filters...)
	doc.Groups = append([]filterxml.GroupElement(nil), document.Groups...)
	doc.Active = append([]filterxml.ActiveElement(nil), document.Active...)
	return &doc
}
