package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/exporters"
	"github.com/Aiko543/quotedeck/internal/http"
	"github.com/Aiko543/quotedeck/internal/importers"
	"github.com/Aiko543/quotedeck/internal/picker"
)

// The quotes repository backs every store-shaped interface in the app.
var _ http.QuoteStore = (*quotes.Repository)(nil)
var _ picker.QuoteSource = (*quotes.Repository)(nil)
var _ exporters.QuoteReader = (*quotes.Repository)(nil)
var _ importers.QuoteStore = (*quotes.Repository)(nil)
