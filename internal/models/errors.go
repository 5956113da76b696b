package models

import "errors"

// ErrEmptyBatch means a run found nothing to extract or export.
var ErrEmptyBatch = errors.New("empty batch")
