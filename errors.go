package scandex

import "github.com/kailas-cloud/scandex/internal/domain"

// ErrInvalidInput marks rejected search parameters and collections.
// Test with errors.Is.
var ErrInvalidInput = domain.ErrInvalidInput
