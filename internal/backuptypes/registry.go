// Package backuptypes provides dump strategy implementations.
// Import this package to register all built-in strategies.
package backuptypes

import (
	// Import all dump strategies for self-registration
	_ "github.com/dcbak/dcbak/internal/backuptypes/django"
	_ "github.com/dcbak/dcbak/internal/backuptypes/mysql"
)
