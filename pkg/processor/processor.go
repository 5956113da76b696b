package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhad/ltcc/internal/models"
	"github.com/xhad/ltcc/pkg/extractor"
	"github.com/xhad/ltcc/pkg/pdfxml"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyBatch means the directory held no documents to extract from.
var ErrEmptyBatch = models.ErrEmptyBatch

const docExtension = ".xml"

type ProcessorConfig struct {
	Dir           string
	MinBoldNodes  int
	Workers       int
	LabelVariants map[string][]string
	Logger        *zap.Logger
	// OnProgress runs after each document; concurrently when Workers > 1.
	OnProgress func(fileName string)
}

type Processor struct {
	config    ProcessorConfig
	extractor *extractor.Extractor
	logger    *zap.Logger
}

func NewWithConfig(config ProcessorConfig) (*Processor, error) {
	if config.Workers == 0 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	e, err := extractor.NewWithConfig(extractor.ExtractorConfig{
		MinBoldNodes:  config.MinBoldNodes,
		LabelVariants: config.LabelVariants,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build extractor: %w", err)
	}

	return &Processor{
		config:    config,
		extractor: e,
		logger:    config.Logger,
	}, nil
}

// ListDocuments returns the regular files in the configured directory with
// an .xml extension, in name order.
func (p *Processor) ListDocuments() ([]string, error) {
	entries, err := os.ReadDir(p.config.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p.config.Dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != docExtension {
			continue
		}
		paths = append(paths, filepath.Join(p.config.Dir, entry.Name()))
	}
	return paths, nil
}

// Process extracts one record per document. Records keep the listing order
// whatever the worker count.
func (p *Processor) Process(ctx context.Context) ([]models.Record, error) {
	paths, err := p.ListDocuments()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no xml documents in %s: %w", p.config.Dir, ErrEmptyBatch)
	}

	records := make([]models.Record, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = p.ProcessFile(path)
			if p.config.OnProgress != nil {
				p.config.OnProgress(filepath.Base(path))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// ProcessFile extracts the record for one document. A document that cannot
// be read still yields a record, with every field unknown.
func (p *Processor) ProcessFile(path string) models.Record {
	name := filepath.Base(path)
	p.logger.Info("parsing " + name)

	doc, err := pdfxml.LoadFile(path)
	if err != nil {
		p.logger.Error("failed to read document", zap.String("file", name), zap.Error(err))
		return models.NewRecord(name)
	}
	if doc.Recovered {
		p.logger.Warn("malformed document, using recovered nodes",
			zap.String("file", name),
			zap.Int("text_nodes", len(doc.Text)),
			zap.Error(doc.Err))
	}

	return p.extractor.ExtractDocument(name, doc)
}
