// Package service implements the engine's operation surface. Every operation
// has the same shape: decode params, load the document, locate, mutate, save,
// report. Both transports (MCP and line-delimited JSON-RPC) call into here.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docbench/engine/internal/appdirs"
	"docbench/engine/internal/diff"
	"docbench/engine/internal/docx"
	"docbench/engine/internal/edit"
	"docbench/engine/internal/errinfo"
	"docbench/engine/internal/logging"
	"docbench/engine/internal/settings"
)

type Service struct {
	logger  *slog.Logger
	store   *settings.Store
	dataDir string
}

func New(logger *slog.Logger, store *settings.Store, dataDir string) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{logger: logger, store: store, dataDir: dataDir}
}

// MutationReport is the uniform result of every mutating operation.
type MutationReport struct {
	Message     string      `json:"message"`
	Path        string      `json:"path"`
	Count       int         `json:"count"`
	Diff        []diff.Hunk `json:"diff,omitempty"`
	DiffSkipped bool        `json:"diff_skipped,omitempty"`
}

// NormalizePath trims the input and appends the .docx extension when the
// path has none.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}
	if filepath.Ext(path) == "" {
		path += ".docx"
	}
	return path
}

func (s *Service) loadDocument(path string) (*docx.Document, *errinfo.ErrorInfo) {
	if strings.TrimSpace(path) == "" {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLoad, "path must not be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errinfo.DocNotFound(path)
		}
		return nil, errinfo.FileReadFailed(path, err.Error())
	}
	if info.IsDir() {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLoad, fmt.Sprintf("path is a directory: %s", path))
	}
	doc, err := docx.Load(path)
	if err != nil {
		return nil, errinfo.DocCorrupt(path, err.Error())
	}
	return doc, nil
}

func (s *Service) saveDocument(doc *docx.Document) *errinfo.ErrorInfo {
	if s.store != nil {
		if cfg, err := s.store.Load(); err == nil && cfg.BackupOnSave {
			if err := s.backup(doc.Path()); err != nil {
				s.logger.Warn("doc.backup_failed", "path", doc.Path(), "error", err.Error())
			}
		}
	}
	if err := doc.Save(); err != nil {
		return errinfo.FileWriteFailed(doc.Path(), err.Error())
	}
	s.logger.Debug("doc.saved", "path", doc.Path())
	return nil
}

func (s *Service) backup(path string) error {
	dir := appdirs.BackupsDir(s.dataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	name := fmt.Sprintf("%s.%s.bak", filepath.Base(path), time.Now().UTC().Format("20060102T150405"))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

func (s *Service) report(doc *docx.Document, message string, count int, before []string) MutationReport {
	rep := MutationReport{Message: message, Path: doc.Path(), Count: count}
	maxRows := 0
	if s.store != nil {
		if cfg, err := s.store.Load(); err == nil {
			maxRows = cfg.MaxDiffRows
		}
	}
	hunks, skipped := diff.ParagraphDiffWithLimit(before, paragraphTexts(doc), maxRows)
	rep.Diff = hunks
	rep.DiffSkipped = skipped
	return rep
}

// resolveStyle validates a caller-supplied style display name against the
// document's style table. An empty name falls back to the configured default
// body style.
func (s *Service) resolveStyle(doc *docx.Document, name string) (string, *errinfo.ErrorInfo) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.defaultStyle(), nil
	}
	if _, ok := doc.Styles().IDByName(name); !ok {
		return "", errinfo.StyleNotFound(fmt.Sprintf("style '%s' is not defined in the document", name))
	}
	return name, nil
}

func (s *Service) defaultStyle() string {
	if s.store != nil {
		if cfg, err := s.store.Load(); err == nil && strings.TrimSpace(cfg.DefaultStyle) != "" {
			return cfg.DefaultStyle
		}
	}
	return docx.DefaultStyleName
}

func paragraphTexts(doc *docx.Document) []string {
	paras := doc.Paragraphs()
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text()
	}
	return out
}

// coreError maps the mutation core's typed errors onto error envelopes.
func coreError(err error) *errinfo.ErrorInfo {
	switch typed := err.(type) {
	case *edit.IndexError:
		return errinfo.InvalidIndex(typed.Error())
	case *edit.RangeError:
		return errinfo.InvalidRange(typed.Error())
	case *edit.NotFoundError:
		if typed.Kind == "header" {
			return errinfo.HeaderNotFound(typed.Error())
		}
		return errinfo.AnchorNotFound(typed.Error())
	default:
		return errinfo.ValidationFailed(errinfo.PhaseMutate, err.Error())
	}
}
