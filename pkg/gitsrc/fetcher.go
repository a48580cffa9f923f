// SPDX-License-Identifier: MPL-2.0

package gitsrc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Fetcher performs the clone step of an install.
type Fetcher struct {
	auth transport.AuthMethod
}

// NewFetcher creates a fetcher, picking up provider tokens from the
// environment when present.
func NewFetcher() *Fetcher {
	return &Fetcher{auth: authFromEnv()}
}

// authFromEnv configures HTTPS token authentication from well-known
// environment variables. Public repositories work without credentials.
func authFromEnv() transport.AuthMethod {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "x-access-token", Password: token}
	}
	if token := os.Getenv("GITLAB_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "gitlab-ci-token", Password: token}
	}
	if token := os.Getenv("GIT_TOKEN"); token != "" {
		return &http.BasicAuth{Username: "git", Password: token}
	}
	return nil
}

// CloneShallow clones src.CloneURL at depth 1 into destPath. When the
// source pins a ref, it is tried as a branch first and as a tag second,
// matching what `git clone --branch` accepts. A failed attempt cleans
// destPath before the next one.
func (f *Fetcher) CloneShallow(ctx context.Context, src *Source, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create clone parent directory: %w", err)
	}

	base := git.CloneOptions{
		URL:   src.CloneURL,
		Auth:  f.auth,
		Depth: 1,
	}

	if src.Ref == "" {
		if _, err := git.PlainCloneContext(ctx, destPath, false, &base); err != nil {
			return fmt.Errorf("clone %s: %w", src.CloneURL, err)
		}
		return nil
	}

	var lastErr error
	for _, name := range []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(src.Ref),
		plumbing.NewTagReferenceName(src.Ref),
	} {
		opts := base
		opts.ReferenceName = name
		opts.SingleBranch = true
		if _, err := git.PlainCloneContext(ctx, destPath, false, &opts); err != nil {
			lastErr = err
			_ = os.RemoveAll(destPath)
			continue
		}
		return nil
	}
	return fmt.Errorf("clone %s at ref %q: %w", src.CloneURL, src.Ref, lastErr)
}
