package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"docbench/engine/internal/docx"
	"docbench/engine/internal/edit"
	"docbench/engine/internal/errinfo"
)

type insertParams struct {
	Path           string   `json:"path"`
	Text           string   `json:"text"`
	Items          []string `json:"items"`
	Level          int      `json:"level"`
	ListType       string   `json:"list_type"`
	AnchorText     string   `json:"anchor_text"`
	AnchorIndex    *int     `json:"anchor_index"`
	Position       string   `json:"position"`
	Style          string   `json:"style"`
	CopyFormatFrom *int     `json:"copy_format_from"`
}

// insertAt places texts relative to the requested anchor and returns the body
// index of the first inserted paragraph. Without an anchor the paragraphs are
// appended at the end of the body.
func insertAt(doc *docx.Document, p insertParams, texts []string, style string, numbering *docx.Numbering) (int, *errinfo.ErrorInfo) {
	before := false
	switch strings.ToLower(strings.TrimSpace(p.Position)) {
	case "", "after":
	case "before":
		before = true
	default:
		return 0, errinfo.ValidationFailed(errinfo.PhaseLocate, fmt.Sprintf("position must be 'before' or 'after', got '%s'", p.Position))
	}

	switch {
	case p.AnchorText != "":
		anchor, err := edit.InsertParagraphsNear(doc, p.AnchorText, texts, style, before, numbering)
		if err != nil {
			return 0, coreError(err)
		}
		if before {
			return anchor, nil
		}
		return anchor + 1, nil
	case p.AnchorIndex != nil:
		anchor := *p.AnchorIndex
		if err := edit.InsertParagraphsAt(doc, anchor, texts, style, before, numbering); err != nil {
			return 0, coreError(err)
		}
		if before {
			return anchor, nil
		}
		return anchor + 1, nil
	default:
		first := len(doc.Paragraphs())
		for _, text := range texts {
			para := doc.AddParagraph(text, style)
			if numbering != nil {
				n := *numbering
				para.Numbering = &n
			}
		}
		return first, nil
	}
}

func (s *Service) InsertParagraph(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p insertParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	beforeTexts := paragraphTexts(doc)

	var copied *docx.RunProps
	if p.CopyFormatFrom != nil {
		paras := doc.Paragraphs()
		src := *p.CopyFormatFrom
		if src < 0 || src >= len(paras) {
			return nil, errinfo.InvalidIndex(fmt.Sprintf("invalid paragraph index: %d. Document has %d paragraphs.", src, len(paras)))
		}
		if runs := paras[src].Runs(); len(runs) > 0 {
			props := edit.CopyFormatting(runs[0].Props)
			copied = &props
		}
	}

	style, errInfo := s.resolveStyle(doc, p.Style)
	if errInfo != nil {
		return nil, errInfo
	}
	first, errInfo := insertAt(doc, p, []string{p.Text}, style, nil)
	if errInfo != nil {
		return nil, errInfo
	}
	if copied != nil {
		for _, r := range doc.Paragraphs()[first].Runs() {
			r.Props = edit.CopyFormatting(*copied)
		}
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Inserted paragraph at index %d.", first)
	return s.report(doc, msg, 1, beforeTexts), nil
}

func (s *Service) InsertHeading(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p insertParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	level := p.Level
	if level == 0 {
		level = 1
	}
	if level < 1 || level > 9 {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, fmt.Sprintf("level (%d) must be between 1 and 9", level))
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	beforeTexts := paragraphTexts(doc)
	style := fmt.Sprintf("Heading %d", level)
	first, errInfo := insertAt(doc, p, []string{p.Text}, style, nil)
	if errInfo != nil {
		return nil, errInfo
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Inserted level %d heading at index %d.", level, first)
	return s.report(doc, msg, 1, beforeTexts), nil
}

func (s *Service) InsertList(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p insertParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	if len(p.Items) == 0 {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, "items must not be empty")
	}
	numbering := &docx.Numbering{NumID: docx.BulletNumID}
	switch strings.ToLower(strings.TrimSpace(p.ListType)) {
	case "", "bullet":
	case "number":
		numbering.NumID = docx.DecimalNumID
	default:
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, fmt.Sprintf("list_type must be 'bullet' or 'number', got '%s'", p.ListType))
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	beforeTexts := paragraphTexts(doc)
	first, errInfo := insertAt(doc, p, p.Items, "List Paragraph", numbering)
	if errInfo != nil {
		return nil, errInfo
	}
	if errInfo := s.saveDocument(doc); errInfo != nil {
		return nil, errInfo
	}
	msg := fmt.Sprintf("Inserted %d list item(s) at index %d.", len(p.Items), first)
	return s.report(doc, msg, len(p.Items), beforeTexts), nil
}
