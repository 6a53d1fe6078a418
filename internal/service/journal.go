package service

import (
	"log/slog"

	"github.com/mahesh00009/CurToCryptoFrontend/internal/models"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/pkg/errors"
)

var ErrInvalidJournalConfig = errors.New("invalid journal config")

type ConversionRepository interface {
	CreateConversion(conversion *models.Conversion) error
}

// Journal writes every issued conversion to the repository. Write failures
// are logged and never reach the caller.
type Journal struct {
	logger *slog.Logger
	repo   ConversionRepository
	source string
}

type JournalOption func(*Journal)

func WithJournalLogger(l *slog.Logger) JournalOption {
	return func(j *Journal) {
		j.logger = l
	}
}

func WithJournalRepo(r ConversionRepository) JournalOption {
	return func(j *Journal) {
		j.repo = r
	}
}

func WithJournalSource(source string) JournalOption {
	return func(j *Journal) {
		j.source = source
	}
}

func (j *Journal) IsValid() error {
	switch {
	case j.logger == nil:
		return errors.Wrap(ErrInvalidJournalConfig, "logger cannot be nil")
	case j.repo == nil:
		return errors.Wrap(ErrInvalidJournalConfig, "repo cannot be nil")
	case j.source == "":
		return errors.Wrap(ErrInvalidJournalConfig, "source cannot be empty")
	default:
		return nil
	}
}

func NewJournal(opts ...JournalOption) (*Journal, error) {
	j := &Journal{}
	for _, opt := range opts {
		opt(j)
	}
	if err := j.IsValid(); err != nil {
		return nil, err
	}
	return j, nil
}

// WithSource returns a journal sharing the repository under another source tag.
func (j *Journal) WithSource(source string) *Journal {
	cp := *j
	cp.source = source
	return &cp
}

func (j *Journal) RecordConversion(req convert.Request, res convert.Result, err error) {
	record := &models.Conversion{
		Source:  j.source,
		Symbol:  req.Symbol,
		Amount:  req.Amount,
		Convert: req.Convert,
	}
	if err != nil {
		record.Error = err.Error()
	} else {
		record.ConvertedAmount = res.String()
	}

	if werr := j.repo.CreateConversion(record); werr != nil {
		j.logger.Error("failed to journal conversion", "source", j.source, "symbol", req.Symbol, "error", werr)
	}
}
