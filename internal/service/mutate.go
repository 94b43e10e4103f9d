package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"docbench/engine/internal/docx"
	"docbench/engine/internal/edit"
	"docbench/engine/internal/errinfo"
)

func decode(params json.RawMessage, dst any) *errinfo.ErrorInfo {
	if len(params) == 0 {
		return errinfo.ValidationFailed(errinfo.PhaseLoad, "missing params")
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return errinfo.ValidationFailed(errinfo.PhaseLoad, err.Error())
	}
	return nil
}

type createParams struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

func (s *Service) DocumentCreate(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p createParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	path := NormalizePath(p.Path)
	if path == "" {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLoad, "path must not be empty")
	}
	doc, err := docx.New(p.Title)
	if err != nil {
		return nil, errinfo.ValidationFailed(errinfo.PhaseMutate, err.Error())
	}
	if p.Title != "" {
		doc.AddParagraph(p.Title, "Title")
	}
	if err := doc.SaveAs(path); err != nil {
		return nil, errinfo.FileWriteFailed(path, err.Error())
	}
	s.logger.Debug("doc.created", "path", path)
	return MutationReport{
		Message: fmt.Sprintf("Document %s created successfully", filepath.Base(path)),
		Path:    path,
	}, nil
}

type searchReplaceParams struct {
	Path    string `json:"path"`
	Find    string `json:"find"`
	Replace string `json:"replace"`
}

func (s *Service) SearchAndReplace(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p searchReplaceParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	if p.Find == "" {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, "find must not be empty")
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	before := paragraphTexts(doc)
	count := edit.ReplaceEverywhere(doc, p.Find, p.Replace)
	if count == 0 {
		// Nothing changed; skip the rewrite.
		return MutationReport{
			Message: fmt.Sprintf("No occurrences of '%s' found.", p.Find),
			Path:    doc.Path(),
		}, nil
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Replaced %d occurrence(s) of '%s' with '%s'.", count, p.Find, p.Replace)
	return s.report(doc, msg, count, before), nil
}

type replaceParagraphParams struct {
	Path          string `json:"path"`
	Index         int    `json:"index"`
	Text          string `json:"text"`
	PreserveStyle *bool  `json:"preserve_style"`
	ParseMarkup   bool   `json:"parse_markup"`
}

func (s *Service) ReplaceParagraph(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p replaceParagraphParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	before := paragraphTexts(doc)
	if err := edit.ReplaceParagraph(doc, p.Index, p.Text, p.ParseMarkup); err != nil {
		return nil, coreError(err)
	}
	if p.PreserveStyle != nil && !*p.PreserveStyle {
		doc.Paragraphs()[p.Index].StyleID = ""
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Replaced paragraph %d.", p.Index)
	return s.report(doc, msg, 1, before), nil
}

type rangeParams struct {
	Path          string   `json:"path"`
	Start         int      `json:"start"`
	End           int      `json:"end"`
	Paragraphs    []string `json:"paragraphs"`
	Style         string   `json:"style"`
	PreserveStyle bool     `json:"preserve_style"`
}

func (s *Service) ReplaceParagraphRange(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p rangeParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	before := paragraphTexts(doc)
	style := strings.TrimSpace(p.Style)
	if style != "" || !p.PreserveStyle {
		// preserve_style without an explicit name carries the replaced
		// paragraph's own style instead of the configured default.
		if style, errInfo = s.resolveStyle(doc, style); errInfo != nil {
			return nil, errInfo
		}
	}
	removed, err := edit.ReplaceRange(doc, p.Start, p.End, p.Paragraphs, style, p.PreserveStyle)
	if err != nil {
		return nil, coreError(err)
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Replaced paragraphs %d-%d (%d removed, %d inserted).", p.Start, p.End, removed, len(p.Paragraphs))
	return s.report(doc, msg, removed, before), nil
}

func (s *Service) DeleteParagraphRange(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p rangeParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	before := paragraphTexts(doc)
	removed, err := edit.DeleteRange(doc, p.Start, p.End)
	if err != nil {
		return nil, coreError(err)
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Deleted paragraphs %d-%d (%d removed).", p.Start, p.End, removed)
	return s.report(doc, msg, removed, before), nil
}

type sectionParams struct {
	Path       string   `json:"path"`
	Header     string   `json:"header"`
	Paragraphs []string `json:"paragraphs"`
	Style      string   `json:"style"`
}

func (s *Service) ReplaceSection(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p sectionParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	if strings.TrimSpace(p.Header) == "" {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, "header must not be empty")
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	before := paragraphTexts(doc)
	style, errInfo := s.resolveStyle(doc, p.Style)
	if errInfo != nil {
		return nil, errInfo
	}
	_, removed, err := edit.ReplaceHeaderBlock(doc, p.Header, p.Paragraphs, style)
	if err != nil {
		return nil, coreError(err)
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Replaced section '%s' (%d removed, %d inserted).", p.Header, removed, len(p.Paragraphs))
	return s.report(doc, msg, removed, before), nil
}

func (s *Service) DeleteSection(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p sectionParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	if strings.TrimSpace(p.Header) == "" {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, "header must not be empty")
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	before := paragraphTexts(doc)
	_, removed, err := edit.DeleteHeaderBlock(doc, p.Header)
	if err != nil {
		return nil, coreError(err)
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Deleted section '%s' content (%d paragraphs).", p.Header, removed)
	return s.report(doc, msg, removed, before), nil
}

type anchorBlockParams struct {
	Path        string   `json:"path"`
	StartAnchor string   `json:"start_anchor"`
	EndAnchor   string   `json:"end_anchor"`
	Paragraphs  []string `json:"paragraphs"`
	Style       string   `json:"style"`
}

func (s *Service) ReplaceBetweenAnchors(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p anchorBlockParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	if strings.TrimSpace(p.StartAnchor) == "" || strings.TrimSpace(p.EndAnchor) == "" {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, "start_anchor and end_anchor must not be empty")
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	before := paragraphTexts(doc)
	style, errInfo := s.resolveStyle(doc, p.Style)
	if errInfo != nil {
		return nil, errInfo
	}
	removed, err := edit.ReplaceAnchorBlock(doc, p.StartAnchor, p.EndAnchor, p.Paragraphs, style)
	if err != nil {
		return nil, coreError(err)
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Replaced content between anchors (%d blocks removed, %d paragraphs inserted).", removed, len(p.Paragraphs))
	return s.report(doc, msg, removed, before), nil
}
