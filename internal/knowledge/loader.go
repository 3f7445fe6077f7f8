package knowledge

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/pkg/log"
)

const (
	documentExt   = ".md"
	untitledTitle = "Untitled"
)

// categoryRules are checked in order against the lowercased relative path.
var categoryRules = []struct {
	marker   string
	category core.Category
}{
	{"educational principles", core.CategoryPrinciples},
	{"ai development", core.CategoryAIDevelopment},
	{"quick reference", core.CategoryQuickReference},
	{"tool templates", core.CategoryTemplates},
}

// Load reads every markdown document under root. A missing root and unreadable
// documents are logged and skipped, so Load always returns a usable store.
func Load(ctx context.Context, root string) *Store {
	logger := log.FromCtx(ctx).With().Str("component", "knowledge").Str("root", root).Logger()

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Warn().Err(err).Msg("knowledge directory not found")
		return NewStore(nil)
	}

	var docs []core.Document
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("failed to read knowledge entry")
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != documentExt {
			return nil
		}

		doc, err := loadDocument(root, path)
		if err != nil {
			logger.Error().Err(err).Str("path", path).Msg("failed to load document")
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, fs.SkipDir) {
		logger.Error().Err(walkErr).Msg("knowledge walk aborted")
	}

	store := NewStore(docs)
	logger.Info().Int("documents", store.Len()).Msg("loaded knowledge base documents")
	return store
}

func loadDocument(root, path string) (core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Document{}, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return core.Document{}, err
	}

	content := string(data)
	return core.Document{
		Key:      DocumentKey(rel),
		Title:    ExtractTitle(content),
		Content:  content,
		Path:     path,
		Category: DetermineCategory(rel),
	}, nil
}

// DocumentKey turns a root-relative path into a key: extension stripped, '/' separators.
func DocumentKey(relPath string) string {
	key := filepath.ToSlash(relPath)
	key = strings.ReplaceAll(key, `\`, "/")
	return strings.TrimSuffix(key, filepath.Ext(key))
}

// ExtractTitle returns the text of the first "# " heading line, or "Untitled".
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return untitledTitle
}

// DetermineCategory classifies a document by its root-relative path.
func DetermineCategory(relPath string) core.Category {
	p := strings.ToLower(filepath.ToSlash(relPath))
	for _, rule := range categoryRules {
		if strings.Contains(p, rule.marker) {
			return rule.category
		}
	}
	return core.CategoryGeneral
}
