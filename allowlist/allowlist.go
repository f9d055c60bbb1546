// Package allowlist decides whether an authenticated email address is
// admitted into the application.
package allowlist

import "strings"

// Decision is the outcome of an admission check.
type Decision int

const (
	// Invalid means the authentication result carried no usable email.
	Invalid Decision = iota
	// Denied means the email is not on the allow list.
	Denied
	// Admitted means the email is an exact member of the allow list.
	Admitted
)

func (d Decision) String() string {
	switch d {
	case Admitted:
		return "admitted"
	case Denied:
		return "denied"
	default:
		return "invalid"
	}
}

// AllowList is an immutable set of admitted email addresses, loaded once
// at startup. Membership is a case-sensitive exact match; an empty list
// admits no one.
type AllowList struct {
	emails map[string]struct{}
}

// Parse builds an AllowList from a comma-delimited string of emails.
// Entries are trimmed of surrounding whitespace, empty entries dropped.
func Parse(s string) AllowList {
	emails := make(map[string]struct{})
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			emails[e] = struct{}{}
		}
	}
	return AllowList{emails: emails}
}

// Len returns the number of admitted emails.
func (a AllowList) Len() int {
	return len(a.emails)
}

// Admit is a pure predicate over an already-authenticated email. Side
// effects such as session mutation belong to the caller.
func (a AllowList) Admit(email string) Decision {
	if email == "" {
		return Invalid
	}
	if _, ok := a.emails[email]; ok {
		return Admitted
	}
	return Denied
}
