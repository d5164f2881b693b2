package roster

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
)

// Preflight checks that the document is structurally readable before the
// extraction pipeline spins up, and returns its page count. Encrypted or
// corrupt bytes fail here with ErrUnreadablePDF.
func Preflight(pdfBytes []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(pdfBytes), nil)
	if err != nil {
		return 0, errors.Wrapf(ErrUnreadablePDF, "preflight: %v", err)
	}
	if count == 0 {
		return 0, errors.Wrap(ErrUnreadablePDF, "document has no pages")
	}
	return count, nil
}
