// Package data embeds the acronym dictionary shipped with the binary.
package data

import _ "embed"

// Acronyms is the default dictionary: a JSON object of canonical key to entry.
//
//go:embed acronyms.json
var Acronyms []byte
