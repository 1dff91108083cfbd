package driver

import (
	"chearmyp/internal/observ"
)

// TextMode selects the payload representation of parsed forests.
type TextMode uint8

const (
	// TextBorrowed keeps payloads as slices of the loaded file.
	TextBorrowed TextMode = iota
	// TextOwned copies payloads (and NFC-normalizes them on request).
	TextOwned
)

func (m TextMode) String() string {
	if m == TextOwned {
		return "owned"
	}
	return "borrowed"
}

// DefaultExtension is the file suffix ParseDir collects.
const DefaultExtension = ".chy"

type Options struct {
	MaxDiagnostics int // <= 0 is unlimited
	Text           TextMode
	Normalize      bool   // NFC, owned text only
	Extension      string // ParseDir only; DefaultExtension when empty
	Jobs           int    // ParseDir workers; GOMAXPROCS when <= 0

	Cache    *DiskCache    // nil disables caching
	Progress ProgressSink  // nil disables progress events
	Timer    *observ.Timer // nil disables phase timing
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

// owned reports whether results must not alias file content. Cached
// results are always owned.
func (o Options) owned() bool {
	return o.Text == TextOwned || o.Cache != nil
}
