// SPDX-License-Identifier: MPL-2.0

package gitsrc

import (
	"fmt"
	"net/url"
	"strings"
)

// Source is the resolved descriptor for a user-supplied Git reference.
// It is produced once per install and immutable afterwards.
type Source struct {
	// CloneURL is the fully qualified HTTPS URL ending in .git.
	CloneURL string

	// Ref is the branch, tag, or commit to pin; empty clones the default
	// branch.
	Ref string

	// PathInRepo is the '/'-separated sub-path of the package inside the
	// repository; empty when the package sits at the repository root.
	PathInRepo string

	// Host is the canonical provider host.
	Host string

	// Owner is the user or organization segment.
	Owner string
}

// parseFunc is one reference grammar. ok reports whether the grammar
// applied; a non-nil error is fatal and stops the strategy chain.
type parseFunc func(reference string) (src *Source, ok bool, err error)

// parsers are tried in order: the shorthand alias grammar first, then
// the full browse-URL grammar. Users commonly type short
// provider/owner/repo triples, while share links from hosting providers
// carry ref and path semantics in their URL structure; both must
// resolve to the same descriptor shape.
var parsers = []parseFunc{parseAlias, parseBrowseURL}

// Resolve parses a repository reference, either a shorthand alias such
// as "gh/alice/widgets/sub/dir" or a full URL such as
// "https://github.com/alice/widgets/tree/v2/pkg", into a Source.
func Resolve(reference string) (*Source, error) {
	for _, parse := range parsers {
		src, ok, err := parse(reference)
		if err != nil {
			return nil, err
		}
		if ok {
			return src, nil
		}
	}
	return nil, fmt.Errorf("unsupported Git source %q: expected an alias like gh/owner/repo or a github.com/gitlab.com URL", reference)
}

// parseAlias handles <provider-alias>/<owner>/<repo>[/<sub-path...>].
// Anything that does not look like a complete alias falls through to
// the URL grammar.
func parseAlias(reference string) (*Source, bool, error) {
	parts := strings.SplitN(reference, "/", 3)
	if len(parts) < 3 {
		return nil, false, nil
	}

	prov := providerByAlias(parts[0])
	owner := parts[1]
	if prov == nil || owner == "" {
		return nil, false, nil
	}

	repo, sub, _ := strings.Cut(parts[2], "/")
	if repo == "" {
		return nil, false, nil
	}

	return &Source{
		CloneURL:   fmt.Sprintf("https://%s/%s/%s.git", prov.Host, owner, repo),
		PathInRepo: sub,
		Host:       prov.Host,
		Owner:      owner,
	}, true, nil
}

// parseBrowseURL handles full repository and browse URLs. The host is
// lower-cased and stripped of a leading "www."; a repository name
// carrying a .git suffix is normalized before the clone URL is
// synthesized. Ref markers are recognized per provider (GitHub
// tree|blob, GitLab -/tree|-/blob).
func parseBrowseURL(reference string) (*Source, bool, error) {
	u, err := url.Parse(reference)
	if err != nil || u.Host == "" {
		return nil, false, nil
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	prov := providerByHost(host)
	if prov == nil || !prov.BrowseURLs {
		return nil, false, fmt.Errorf("unsupported Git provider %q in %q", host, reference)
	}

	segments := pathSegments(u.Path)
	if len(segments) < 2 {
		return nil, false, fmt.Errorf("Git URL %q must include owner and repository", reference)
	}

	owner := segments[0]
	repo := strings.TrimSuffix(segments[1], ".git")
	src := &Source{
		CloneURL: fmt.Sprintf("https://%s/%s/%s.git", host, owner, repo),
		Host:     host,
		Owner:    owner,
	}

	rest := segments[2:]
	if ref, sub, ok := prov.splitRef(rest); ok {
		src.Ref = ref
		src.PathInRepo = strings.Join(sub, "/")
	} else {
		src.PathInRepo = strings.Join(rest, "/")
	}

	return src, true, nil
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
