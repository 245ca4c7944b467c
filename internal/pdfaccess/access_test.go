package pdfaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInvalidDocumentReturnsPdfOpenError(t *testing.T) {
	_, err := Open([]byte("not a pdf"), nil)
	require.Error(t, err)

	var openErr *PdfOpenError
	assert.ErrorAs(t, err, &openErr)
}
