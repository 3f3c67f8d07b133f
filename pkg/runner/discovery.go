package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds template files matching opts under the given working
// directory. It returns a deterministically sorted list of absolute file
// paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("compile include patterns: %w", err)
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("compile exclude patterns: %w", err)
	}

	matcher := fileMatcher{
		workDir:    workDir,
		extensions: opts.effectiveConfig().Extensions(),
		include:    include,
		exclude:    exclude,
	}

	// Use a map for deduplication.
	seen := make(map[string]struct{})
	var files []string

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			discovered, err := walkDirectory(ctx, absPath, matcher, opts.FollowSymlinks)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				if _, ok := seen[f]; !ok {
					seen[f] = struct{}{}
					files = append(files, f)
				}
			}
		} else if matcher.matchesFile(absPath) {
			if _, ok := seen[absPath]; !ok {
				seen[absPath] = struct{}{}
				files = append(files, absPath)
			}
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// compileGlobs compiles patterns with '/' as the path separator, so '*'
// stays within one path component and '**' crosses components.
//
// A leading "**/" compiles to a form that demands at least one parent
// component, but the gitignore convention it imitates also matches at the
// root ("**/drafts/**" must exclude "drafts/wip.html"). Each such pattern
// is therefore compiled twice, with and without the prefix.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		normalized := filepath.ToSlash(pattern)

		variants := []string{normalized}
		if rest, ok := strings.CutPrefix(normalized, "**/"); ok {
			variants = append(variants, rest)
		}

		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", pattern, err)
			}
			globs = append(globs, g)
		}
	}
	return globs, nil
}

// fileMatcher bundles the inclusion criteria used during a walk.
type fileMatcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

// matchesFile checks if a file path matches the inclusion criteria.
func (m fileMatcher) matchesFile(path string) bool {
	if !m.hasMatchingExtension(path) {
		return false
	}

	relPath := m.relative(path)
	if matchesAny(m.exclude, relPath) {
		return false
	}
	if len(m.include) > 0 && !matchesAny(m.include, relPath) {
		return false
	}

	return true
}

// matchesExcludedDir checks if a directory path matches an exclude pattern.
// The trailing-slash form is tried as well, so "drafts/**" prunes the
// "drafts" directory itself instead of descending into it.
func (m fileMatcher) matchesExcludedDir(path string) bool {
	relPath := m.relative(path)
	return matchesAny(m.exclude, relPath) || matchesAny(m.exclude, relPath+"/")
}

// relative returns the slash-separated path relative to the working
// directory, for glob matching.
func (m fileMatcher) relative(path string) string {
	relPath, err := filepath.Rel(m.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

func (m fileMatcher) hasMatchingExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range m.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesAny matches the relative path, and its base name as a fallback so
// bare patterns like "*.bak" work anywhere in the tree.
func matchesAny(globs []glob.Glob, relPath string) bool {
	base := relPath
	if idx := strings.LastIndexByte(relPath, '/'); idx >= 0 {
		base = relPath[idx+1:]
	}
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// walkDirectory recursively walks a directory and returns matching template
// files.
func walkDirectory(ctx context.Context, root string, matcher fileMatcher, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Handle permission errors gracefully.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			// Skip hidden directories (except root).
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if matcher.matchesExcludedDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				// Broken symlink, skip silently.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the symlink TARGET to avoid infinite recursion,
				// since WalkDir uses Lstat on the root.
				subFiles, err := walkDirectory(ctx, realPath, matcher, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
			// File symlink: continue to check as a regular file.
		}

		// Skip hidden files.
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if matcher.matchesFile(path) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
