// -----------------------------------------------------------------------
// PDF Access - glyph-level text, fill and page-subset extraction
// Uses unidoc/unipdf for positioned text and fills, pdfcpu for page writes
// -----------------------------------------------------------------------

package pdfaccess

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ternarybob/arbor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/eurostatements/statementcore/pkg/models"
)

// PdfOpenError wraps a failure to parse or open a PDF document: a malformed
// or unsupported document is a recoverable, per-document error, not a
// process-fatal one.
type PdfOpenError struct {
	Cause error
}

func (e *PdfOpenError) Error() string {
	return fmt.Sprintf("pdfaccess: failed to open document: %v", e.Cause)
}

func (e *PdfOpenError) Unwrap() error {
	return e.Cause
}

// Document is an opened PDF, scoped to a single pipeline invocation. It must
// be released with Close on every exit path.
type Document struct {
	reader *model.PdfReader
	raw    []byte
	logger arbor.ILogger
}

// Open parses raw PDF bytes into a Document. Returns *PdfOpenError on any
// parse failure.
func Open(raw []byte, logger arbor.ILogger) (*Document, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &PdfOpenError{Cause: err}
	}

	isEncrypted, err := reader.IsEncrypted()
	if err != nil {
		return nil, &PdfOpenError{Cause: err}
	}
	if isEncrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil || !ok {
			return nil, &PdfOpenError{Cause: fmt.Errorf("document is encrypted and could not be decrypted")}
		}
	}

	return &Document{reader: reader, raw: raw, logger: logger}, nil
}

// Close releases the document. Safe to call multiple times.
func (d *Document) Close() {
	d.reader = nil
}

// Pages returns the number of pages in the document.
func (d *Document) Pages() (int, error) {
	n, err := d.reader.GetNumPages()
	if err != nil {
		return 0, fmt.Errorf("pdfaccess: page count: %w", err)
	}
	return n, nil
}

// PageGlyphs returns the positioned glyph runs on a 1-indexed page, in the
// order unipdf's text extractor recovers them from the content stream.
func (d *Document) PageGlyphs(pageNum int) ([]models.Word, error) {
	page, err := d.reader.GetPage(pageNum)
	if err != nil {
		return nil, fmt.Errorf("pdfaccess: get page %d: %w", pageNum, err)
	}

	ex, err := newPageExtractor(page)
	if err != nil {
		return nil, fmt.Errorf("pdfaccess: new extractor page %d: %w", pageNum, err)
	}

	pageText, _, _, err := ex.ExtractPageText()
	if err != nil {
		return nil, fmt.Errorf("pdfaccess: extract text page %d: %w", pageNum, err)
	}

	marks := pageText.Marks()
	words := make([]models.Word, 0, len(marks.Marks))
	for _, mark := range marks.Marks {
		text := mark.Text
		if text == "" {
			continue
		}
		words = append(words, models.Word{
			X0:   mark.BBox.Llx,
			X1:   mark.BBox.Urx,
			Y0:   mark.BBox.Lly,
			Y1:   mark.BBox.Ury,
			Text: text,
		})
	}
	return words, nil
}

// PageText returns the page's plain text, used by KeyPagesFilter and
// MetadataExtractor, which operate on whole-page text rather than glyphs.
func (d *Document) PageText(pageNum int) (string, error) {
	page, err := d.reader.GetPage(pageNum)
	if err != nil {
		return "", fmt.Errorf("pdfaccess: get page %d: %w", pageNum, err)
	}

	ex, err := newPageExtractor(page)
	if err != nil {
		return "", fmt.Errorf("pdfaccess: new extractor page %d: %w", pageNum, err)
	}

	text, err := ex.ExtractText()
	if err != nil {
		return "", fmt.Errorf("pdfaccess: extract text page %d: %w", pageNum, err)
	}
	return text, nil
}

// PageFills returns the filled rectangles drawn on a page: candidate column
// separators for BlockSegmenter.
func (d *Document) PageFills(pageNum int) ([]models.Fill, error) {
	page, err := d.reader.GetPage(pageNum)
	if err != nil {
		return nil, fmt.Errorf("pdfaccess: get page %d: %w", pageNum, err)
	}
	return extractFills(page, d.logger)
}

// WriteSubset deletes every page not in keep (1-indexed) from the original
// document and returns the resulting PDF bytes. Uses pdfcpu since unipdf's
// write path is not exercised by this pipeline.
func (d *Document) WriteSubset(keep []int) ([]byte, error) {
	if len(keep) == 0 {
		return nil, fmt.Errorf("pdfaccess: WriteSubset called with no pages to keep")
	}

	total, err := d.Pages()
	if err != nil {
		return nil, err
	}

	keepSet := make(map[int]bool, len(keep))
	for _, p := range keep {
		keepSet[p] = true
	}

	var remove []string
	for p := 1; p <= total; p++ {
		if !keepSet[p] {
			remove = append(remove, fmt.Sprintf("%d", p))
		}
	}
	if len(remove) == 0 {
		return d.raw, nil
	}

	var out bytes.Buffer
	if err := api.RemovePages(bytes.NewReader(d.raw), &out, remove, nil); err != nil {
		return nil, fmt.Errorf("pdfaccess: remove pages: %w", err)
	}
	return out.Bytes(), nil
}
