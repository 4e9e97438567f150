package dictionary

import (
	"fmt"
	"strings"
	"unicode"

	"fedspeak/internal/validation"
)

// IssueKind classifies a data problem found by Audit.
type IssueKind string

// IssueKind constants
const (
	IssueDuplicateKey      IssueKind = "duplicate_key"
	IssueTokenCollision    IssueKind = "token_collision"
	IssueDuplicateFullName IssueKind = "duplicate_full_name"
	IssueUnknownCategory   IssueKind = "unknown_category"
	IssueUnscannableAlias  IssueKind = "unscannable_alias"
	IssueEmptyFullName     IssueKind = "empty_full_name"
	IssueInvalidURL        IssueKind = "invalid_url"
)

// Issue is a single audit finding.
type Issue struct {
	Kind   IssueKind
	Key    string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Key, i.Detail)
}

// Audit reports records that New will silently collapse or that can never be
// matched. It does not change how the dictionary is built.
func Audit(records []Record) []Issue {
	var issues []Issue

	keys := make(map[string]bool, len(records))
	tokens := make(map[string]string, len(records))
	names := make(map[string]string, len(records))

	claim := func(key, token, what string) {
		upper := strings.ToUpper(token)
		if owner, ok := tokens[upper]; ok && owner != key {
			issues = append(issues, Issue{
				Kind:   IssueTokenCollision,
				Key:    key,
				Detail: fmt.Sprintf("%s %q also resolves %q; the later entry wins", what, token, owner),
			})
		}
		tokens[upper] = key
	}

	for _, r := range records {
		if keys[r.Key] {
			issues = append(issues, Issue{
				Kind:   IssueDuplicateKey,
				Key:    r.Key,
				Detail: "key appears more than once; the later entry wins",
			})
		}
		keys[r.Key] = true

		claim(r.Key, r.Key, "key")
		for _, alias := range r.Entry.Aliases {
			claim(r.Key, alias, "alias")
			if strings.IndexFunc(alias, unicode.IsSpace) >= 0 {
				issues = append(issues, Issue{
					Kind:   IssueUnscannableAlias,
					Key:    r.Key,
					Detail: fmt.Sprintf("alias %q contains whitespace and is only reachable by single lookup", alias),
				})
			}
		}

		if strings.TrimSpace(r.Entry.Full) == "" {
			issues = append(issues, Issue{
				Kind:   IssueEmptyFullName,
				Key:    r.Key,
				Detail: "full name is empty",
			})
		} else {
			name := strings.ToLower(r.Entry.Full)
			if owner, ok := names[name]; ok && owner != r.Key {
				issues = append(issues, Issue{
					Kind:   IssueDuplicateFullName,
					Key:    r.Key,
					Detail: fmt.Sprintf("full name %q is shared with %q; the later entry wins", r.Entry.Full, owner),
				})
			}
			names[name] = r.Key
		}

		if r.Entry.URL != "" {
			if ok, msg := validation.ValidateURL(r.Entry.URL); !ok {
				issues = append(issues, Issue{
					Kind:   IssueInvalidURL,
					Key:    r.Key,
					Detail: fmt.Sprintf("url %q: %s", r.Entry.URL, msg),
				})
			}
		}

		if !r.Entry.Category.Valid() {
			issues = append(issues, Issue{
				Kind:   IssueUnknownCategory,
				Key:    r.Key,
				Detail: fmt.Sprintf("category %q is not recognized", r.Entry.Category),
			})
		}
	}

	return issues
}
