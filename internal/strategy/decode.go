package strategy

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decode parses one registry row into its structured form. The compound key
// is split once here at the boundary; nothing downstream re-parses it.
//
// A key with a non-numeric slot segment or an empty role yields a record
// with Malformed set (and Slot -1). Such records are carried through so the
// caller can log them, but they never match a slot bucket.
func Decode(raw RawEntity, entryTitle string) Entity {
	e := Entity{
		EntityID: raw.EntityID,
		Slot:     -1,
	}

	segments := strings.Split(raw.CompoundKey, KeyDelimiter)
	if len(segments) >= 1 {
		e.EntryID = segments[0]
	}
	if len(segments) >= 2 {
		if n, err := strconv.Atoi(segments[1]); err == nil && n >= 0 {
			e.Slot = n
		} else {
			e.Malformed = true
		}
	} else {
		e.Malformed = true
	}
	if len(segments) >= 3 && segments[2] != "" {
		e.Role = Role(segments[2])
	} else {
		e.Malformed = true
	}
	if len(segments) >= 4 {
		e.LockEntityID = segments[3]
	}

	e.Name = resolveName(raw, entryTitle, e.Slot)
	return e
}

// resolveName picks the display name for an entity: user-assigned name,
// then integration-assigned name, then the entity ID. Redundant "Code slot
// N" and entry-title prefixes are stripped so rows read cleanly inside an
// already-labelled slot section; if stripping leaves nothing the unstripped
// name is kept.
func resolveName(raw RawEntity, entryTitle string, slot int) string {
	name := raw.DisplayName
	if name == "" {
		name = raw.FallbackName
	}
	if name == "" {
		name = raw.EntityID
	}

	stripped := name
	if entryTitle != "" {
		stripped = trimPrefixFold(stripped, entryTitle)
		stripped = strings.TrimLeft(stripped, " :-")
	}
	if slot >= 0 {
		stripped = trimPrefixFold(stripped, fmt.Sprintf("code slot %d", slot))
		stripped = strings.TrimLeft(stripped, " :-")
	}
	if stripped == "" {
		stripped = name
	}
	return capitalize(stripped)
}

// trimPrefixFold removes prefix from s under case-insensitive comparison.
func trimPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}

// capitalize upper-cases the first rune only.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
