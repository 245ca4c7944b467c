package pdfaccess

import (
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

func newPageExtractor(page *model.PdfPage) (*extractor.Extractor, error) {
	return extractor.New(page)
}
