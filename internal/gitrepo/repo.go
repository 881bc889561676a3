package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// RepoConfig locates a remote repository and its local clone path.
type RepoConfig struct {
	URL     string
	Path    string
	Remote  string        // default: origin
	Timeout time.Duration // per git command, default: 2m
}

// Repo shells out to the git CLI for every operation. Ingestion only
// needs read access at a fixed revision, so clones are blobless and
// tag-free to keep the cache small.
type Repo struct {
	cfg RepoConfig
}

func New(cfg RepoConfig) *Repo {
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Repo{cfg: cfg}
}

func (r *Repo) git(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		if detail != "" {
			return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, detail)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// Ensure clones the repository when the local path does not exist yet,
// and fetches from the remote otherwise. It returns the absolute clone
// path.
func (r *Repo) Ensure(ctx context.Context) (string, error) {
	abs, err := filepath.Abs(r.cfg.Path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		_, err := r.git(ctx, "", "clone", "--filter=blob:none", "--no-tags", r.cfg.URL, abs)
		return abs, err
	}
	if _, err := r.git(ctx, abs, "fetch", "--prune", r.cfg.Remote); err != nil {
		return "", err
	}
	return abs, nil
}

// HeadSHA resolves the current HEAD commit.
func (r *Repo) HeadSHA(ctx context.Context) (string, error) {
	out, err := r.git(ctx, r.cfg.Path, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ListFiles returns every repo-relative path tracked at ref.
func (r *Repo) ListFiles(ctx context.Context, ref string) ([]string, error) {
	out, err := r.git(ctx, r.cfg.Path, "ls-tree", "-r", "--name-only", ref)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// ShowFile reads the blob at ref:path without touching the worktree.
func (r *Repo) ShowFile(ctx context.Context, ref, path string) ([]byte, error) {
	out, err := r.git(ctx, r.cfg.Path, "show", ref+":"+path)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
