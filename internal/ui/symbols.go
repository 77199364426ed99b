package ui

// Bracketed markers used in the dashboard chrome and plain-text output.
// They stay legible without color and in fonts lacking box-drawing glyphs.
const (
	SymbolOK      = "[+]" // Source healthy or idle
	SymbolBusy    = "[*]" // Refresh in flight
	SymbolFail    = "[X]" // Source failed
	SymbolWarn    = "[!]" // Footer error marker
	SymbolUnknown = "[?]" // Untracked or unknown
	SymbolTrack   = "[~]" // Upstream tracking
)

// SymbolSelected prefixes the highlighted list row.
const SymbolSelected = "▶ "

// SymbolBullet prefixes an unselected list row.
const SymbolBullet = "- "
