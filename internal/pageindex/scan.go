package pageindex

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/inful/mdfp"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/routes"
)

// markerSegment folders group pages on disk without contributing a route
// segment. Kept in sync with the content path generator.
const markerSegment = "(docs)"

// Root is one content tree feeding the index.
type Root struct {
	// Dir is the filesystem root to walk.
	Dir string
	// RoutePrefix is prepended to every route derived from this root
	// (e.g. the report namespace marker pair for the reports tree).
	RoutePrefix routes.Route
}

// Scanner builds a page index by walking content roots.
type Scanner struct {
	roots         []Root
	baseURL       string
	defaultLocale string
}

// NewScanner creates a scanner over the given roots. baseURL is prepended to
// canonical URLs and may be empty for site-relative URLs.
func NewScanner(baseURL, defaultLocale string, roots ...Root) *Scanner {
	return &Scanner{roots: roots, baseURL: strings.TrimSuffix(baseURL, "/"), defaultLocale: defaultLocale}
}

// localeSuffixRe matches a two-letter language code between the basename and
// the extension, e.g. "setup.fr.mdx". Longer dotted name parts stay part of
// the page name.
var localeSuffixRe = regexp.MustCompile(`^[a-z]{2}$`)

// Build walks all roots and returns a fresh index. Roots that do not exist
// are skipped with a warning so a partial checkout still yields an index.
func (s *Scanner) Build(ctx context.Context) (*Index, error) {
	var pages []Page
	for _, root := range s.roots {
		if _, err := os.Stat(root.Dir); os.IsNotExist(err) {
			slog.Warn("Content root not found, skipping", logfields.Path(root.Dir))
			continue
		}
		rootPages, err := s.walkRoot(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("scan content root %s: %w", root.Dir, err)
		}
		pages = append(pages, rootPages...)
	}

	ix := NewIndex(s.defaultLocale, pages)
	slog.Info("Page index built", slog.Int("pages", ix.Len()), slog.Int("roots", len(s.roots)))
	return ix, nil
}

func (s *Scanner) walkRoot(ctx context.Context, root Root) ([]Page, error) {
	var pages []Page

	err := filepath.WalkDir(root.Dir, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			// Hidden directories are never content.
			if strings.HasPrefix(d.Name(), ".") && fullPath != root.Dir {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext != ".mdx" && ext != ".md" {
			return nil
		}

		rel, err := filepath.Rel(root.Dir, fullPath)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", fullPath, err)
		}

		page, ok := s.buildPage(root, fullPath, filepath.ToSlash(rel))
		if ok {
			pages = append(pages, page)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// buildPage derives the logical content path, route and canonical URL for one
// file. Returns ok=false for files that do not map to a page.
func (s *Scanner) buildPage(root Root, fullPath, rel string) (Page, bool) {
	segments := strings.Split(rel, "/")

	// Marker folders group files on disk but are invisible in routes.
	logical := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == markerSegment {
			continue
		}
		logical = append(logical, seg)
	}
	if len(logical) == 0 {
		return Page{}, false
	}

	name := logical[len(logical)-1]
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	locale := ""
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		if tagPart := base[i+1:]; localeSuffixRe.MatchString(tagPart) {
			if tag, err := language.Parse(tagPart); err == nil {
				locale = tag.String()
				base = base[:i]
			}
		}
	}

	logical[len(logical)-1] = base + ext
	contentPath := strings.Join(append(root.RoutePrefix.Clone(), logical...), "/")

	// Route: strip the extension, drop a trailing "index" segment.
	routeSegs := append(root.RoutePrefix.Clone(), logical[:len(logical)-1]...)
	if base != "index" {
		routeSegs = append(routeSegs, base)
	}

	url := s.baseURL + "/" + routes.Route(routeSegs).String()
	if len(routeSegs) == 0 {
		url = s.baseURL + "/"
	}

	title, fingerprint := inspectContent(fullPath)

	return Page{
		ContentPath: contentPath,
		URL:         url,
		Dir:         dirOf(contentPath),
		Locale:      locale,
		Title:       title,
		Fingerprint: fingerprint,
		FilePath:    fullPath,
	}, true
}

func dirOf(contentPath string) string {
	d := path.Dir(contentPath)
	if d == "." {
		return ""
	}
	return d
}

// inspectContent reads the file once to extract the frontmatter title and the
// content fingerprint. Both are best effort; a page without frontmatter is
// still indexed.
func inspectContent(fullPath string) (title, fingerprint string) {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return "", ""
	}

	frontmatterRaw, body := markdown.SplitFrontmatter(content)
	fingerprint = mdfp.CalculateFingerprintFromParts(frontmatterRaw, body)

	if frontmatterRaw != "" {
		var fields map[string]any
		if err := yaml.Unmarshal([]byte(frontmatterRaw), &fields); err == nil {
			if t, ok := fields["title"].(string); ok {
				title = t
			}
		}
	}
	return title, fingerprint
}
