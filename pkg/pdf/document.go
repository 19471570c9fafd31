package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pyhub-apps/tablestitch/internal/logger"
)

var log = logger.GetLogger("pdf")

// Info is the structural summary pdfcpu reports for a file
type Info struct {
	Version   string
	PageCount int
	Encrypted bool
}

// Inspect parses and validates the file structure with pdfcpu. It does not
// decode page text; it explains why a file cannot be read at all.
func Inspect(filepath string) (info Info, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu: panic while reading %s: %v", filepath, r)
		}
	}()

	ctx, err := api.ReadContextFile(filepath)
	if err != nil {
		return Info{}, errors.Wrap(err, "failed to read PDF context")
	}

	if err := api.ValidateContext(ctx); err != nil {
		return Info{}, errors.Wrap(err, "invalid PDF")
	}

	info = Info{
		PageCount: ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}
	return info, nil
}

// Open opens a PDF file, trying ledongthuc first as it has the most accurate
// text positions, then dslipak. When both fail the pdfcpu structural check
// supplies the reason.
func Open(filepath string) (Document, error) {
	doc, lerr := OpenWithLedongthuc(filepath)
	if lerr == nil {
		return doc, nil
	}
	log.Debug("ledongthuc failed, trying dslipak", zap.String("file", filepath), zap.Error(lerr))

	doc, derr := OpenWithDslipak(filepath)
	if derr == nil {
		return doc, nil
	}
	log.Debug("dslipak failed", zap.String("file", filepath), zap.Error(derr))

	if _, ierr := Inspect(filepath); ierr != nil {
		return nil, errors.Wrapf(ierr, "cannot read %s", filepath)
	}
	return nil, errors.Wrapf(lerr, "cannot decode text of %s (dslipak: %v)", filepath, derr)
}
