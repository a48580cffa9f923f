// SPDX-License-Identifier: MPL-2.0

// Package gitsrc resolves user-supplied Git repository references into
// concrete clone targets and performs the shallow clone of an install.
package gitsrc

import "strings"

// Provider describes a Git hosting provider known to the resolver.
type Provider struct {
	// Host is the canonical host name.
	Host string

	// Abbrev is the short prefix used for the package store namespace
	// (e.g. "gh" in "gh-alice").
	Abbrev string

	// Aliases are the shorthand prefixes accepted in alias references,
	// matched case-insensitively.
	Aliases []string

	// BrowseURLs reports whether full browse URLs from this host are
	// recognized. Hosts without it resolve through the alias form only.
	BrowseURLs bool

	// refPrefix holds the path segments that precede the tree|blob ref
	// marker in browse URLs. GitHub places the marker right after
	// owner/repo; GitLab nests it under a literal "-" segment.
	refPrefix []string
}

// splitRef recognizes the provider's ref marker in the path segments
// following owner/repo. On a match it returns the pinned ref and the
// remaining sub-path segments.
func (p *Provider) splitRef(segments []string) (ref string, sub []string, ok bool) {
	n := len(p.refPrefix)
	if len(segments) < n+2 {
		return "", nil, false
	}
	for i, want := range p.refPrefix {
		if segments[i] != want {
			return "", nil, false
		}
	}
	if segments[n] != "tree" && segments[n] != "blob" {
		return "", nil, false
	}
	return segments[n+1], segments[n+2:], true
}

var providers = []Provider{
	{Host: "github.com", Abbrev: "gh", Aliases: []string{"gh", "github"}, BrowseURLs: true},
	{Host: "gitlab.com", Abbrev: "gl", Aliases: []string{"gl", "gitlab"}, BrowseURLs: true, refPrefix: []string{"-"}},
	{Host: "bitbucket.org", Abbrev: "bb", Aliases: []string{"bb", "bitbucket"}},
}

func providerByAlias(alias string) *Provider {
	for i := range providers {
		for _, a := range providers[i].Aliases {
			if strings.EqualFold(alias, a) {
				return &providers[i]
			}
		}
	}
	return nil
}

func providerByHost(host string) *Provider {
	for i := range providers {
		if providers[i].Host == host {
			return &providers[i]
		}
	}
	return nil
}

// Abbrev returns the store namespace abbreviation for a provider host.
// Unknown hosts fall back to their first DNS label.
func Abbrev(host string) string {
	if p := providerByHost(host); p != nil {
		return p.Abbrev
	}
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "unk"
	}
	return label
}
