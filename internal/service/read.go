package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"docbench/engine/internal/docx"
	"docbench/engine/internal/edit"
	"docbench/engine/internal/errinfo"
)

type pathParams struct {
	Path           string `json:"path"`
	Index          int    `json:"index"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Header         string `json:"header"`
	IncludeOutline bool   `json:"include_outline"`
	IncludeHeading *bool  `json:"include_heading"`
}

type paragraphInfo struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Style     string `json:"style"`
	IsHeading bool   `json:"is_heading"`
}

type outlineEntry struct {
	Index int    `json:"index"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

func (s *Service) GetDocumentInfo(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	core := doc.Core()
	words := 0
	for _, text := range allTexts(doc) {
		words += len(strings.Fields(text))
	}
	info := map[string]any{
		"path":             doc.Path(),
		"title":            core.Title,
		"author":           core.Creator,
		"subject":          core.Subject,
		"keywords":         core.Keywords,
		"last_modified_by": core.LastModifiedBy,
		"created":          core.Created,
		"modified":         core.Modified,
		"paragraph_count":  len(doc.Paragraphs()),
		"table_count":      len(doc.Tables()),
		"word_count":       words,
	}
	if p.IncludeOutline {
		var outline []outlineEntry
		for i, para := range doc.Paragraphs() {
			name := doc.StyleNameOf(para)
			if docx.IsHeadingStyle(name) {
				outline = append(outline, outlineEntry{Index: i, Level: docx.HeadingLevel(name), Text: para.Text()})
			}
		}
		info["outline"] = outline
	}
	return info, nil
}

func (s *Service) GetDocumentText(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	return map[string]any{"text": strings.Join(allTexts(doc), "\n")}, nil
}

func (s *Service) GetDocumentStructure(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	var paragraphs []map[string]any
	for i, para := range doc.Paragraphs() {
		paragraphs = append(paragraphs, map[string]any{
			"index":   i,
			"style":   doc.StyleNameOf(para),
			"preview": truncateRunes(para.Text(), 100),
		})
	}
	var tables []map[string]any
	for i, table := range doc.Tables() {
		rows := len(table.Rows)
		preview := make([][]string, 0, 3)
		for r := 0; r < rows && r < 3; r++ {
			row := table.Rows[r]
			cells := make([]string, 0, 3)
			for c := 0; c < len(row.Cells) && c < 3; c++ {
				cells = append(cells, truncateRunes(row.Cells[c].Text(), 20))
			}
			preview = append(preview, cells)
		}
		tables = append(tables, map[string]any{
			"index":   i,
			"rows":    rows,
			"columns": table.Columns(),
			"preview": preview,
		})
	}
	return map[string]any{"paragraphs": paragraphs, "tables": tables}, nil
}

func (s *Service) GetDocumentXML(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	return map[string]any{"xml": string(doc.DocumentXML())}, nil
}

func (s *Service) GetParagraph(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	paras := doc.Paragraphs()
	if p.Index < 0 || p.Index >= len(paras) {
		return nil, errinfo.InvalidIndex(fmt.Sprintf("invalid paragraph index: %d. Document has %d paragraphs.", p.Index, len(paras)))
	}
	return describeParagraph(doc, p.Index), nil
}

func (s *Service) GetParagraphRange(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	paras := doc.Paragraphs()
	if err := edit.ValidateRange(p.Start, p.End, len(paras)); err != nil {
		return nil, errinfo.InvalidRange(err.Error())
	}
	out := make([]paragraphInfo, 0, p.End-p.Start+1)
	for i := p.Start; i <= p.End; i++ {
		out = append(out, describeParagraph(doc, i))
	}
	return map[string]any{"paragraphs": out}, nil
}

func (s *Service) GetSection(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	hb, err := edit.FindHeaderBlock(doc, p.Header)
	if err != nil {
		return nil, coreError(err)
	}
	includeHeading := p.IncludeHeading == nil || *p.IncludeHeading
	first := hb.ContentStart
	if includeHeading {
		first = hb.Header
	}
	var out []paragraphInfo
	for i := first; i <= hb.ContentEnd; i++ {
		out = append(out, describeParagraph(doc, i))
	}
	return map[string]any{
		"header_index":  hb.Header,
		"level":         hb.Level,
		"content_start": hb.ContentStart,
		"content_end":   hb.ContentEnd,
		"next_heading":  hb.NextHeading,
		"paragraphs":    out,
	}, nil
}

type findTextParams struct {
	Path                 string `json:"path"`
	Query                string `json:"query"`
	MatchCase            *bool  `json:"match_case"`
	WholeWord            bool   `json:"whole_word"`
	IncludeParagraphText bool   `json:"include_paragraph_text"`
}

type occurrence struct {
	ParagraphIndex int    `json:"paragraph_index"`
	InTable        bool   `json:"in_table,omitempty"`
	TableIndex     int    `json:"table_index,omitempty"`
	CharOffset     int    `json:"char_offset"`
	Context        string `json:"context"`
	ParagraphText  string `json:"paragraph_text,omitempty"`
}

func (s *Service) FindText(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p findTextParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	if p.Query == "" {
		return nil, errinfo.ValidationFailed(errinfo.PhaseLocate, "query must not be empty")
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	matchCase := p.MatchCase == nil || *p.MatchCase

	var found []occurrence
	for i, para := range doc.Paragraphs() {
		found = append(found, findInText(para.Text(), p.Query, matchCase, p.WholeWord, occurrence{ParagraphIndex: i}, p.IncludeParagraphText)...)
	}
	for ti, table := range doc.Tables() {
		for pi, para := range table.AllParagraphs() {
			base := occurrence{ParagraphIndex: pi, InTable: true, TableIndex: ti}
			found = append(found, findInText(para.Text(), p.Query, matchCase, p.WholeWord, base, p.IncludeParagraphText)...)
		}
	}
	return map[string]any{"query": p.Query, "count": len(found), "occurrences": found}, nil
}

func findInText(text, query string, matchCase, wholeWord bool, base occurrence, includeText bool) []occurrence {
	haystack, needle := text, query
	if !matchCase {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}
	var out []occurrence
	from := 0
	for {
		rel := strings.Index(haystack[from:], needle)
		if rel < 0 {
			break
		}
		at := from + rel
		from = at + len(needle)
		if wholeWord && !isWholeWord(haystack, at, len(needle)) {
			continue
		}
		occ := base
		occ.CharOffset = at
		occ.Context = contextAround(text, at, len(needle))
		if includeText {
			occ.ParagraphText = text
		}
		out = append(out, occ)
	}
	return out
}

func isWholeWord(text string, at, length int) bool {
	if at > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:at])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if at+length < len(text) {
		r, _ := utf8.DecodeRuneInString(text[at+length:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func contextAround(text string, at, length int) string {
	start := at - 40
	if start < 0 {
		start = 0
	}
	for start > 0 && text[start]&0xC0 == 0x80 {
		start--
	}
	end := at + length + 40
	if end > len(text) {
		end = len(text)
	}
	for end < len(text) && text[end]&0xC0 == 0x80 {
		end++
	}
	return text[start:end]
}

func (s *Service) GetStyles(ctx context.Context, params json.RawMessage) (any, *errinfo.ErrorInfo) {
	var p pathParams
	if errInfo := decode(params, &p); errInfo != nil {
		return nil, errInfo
	}
	doc, errInfo := s.loadDocument(NormalizePath(p.Path))
	if errInfo != nil {
		return nil, errInfo
	}
	return map[string]any{"styles": doc.Styles().List()}, nil
}

func describeParagraph(doc *docx.Document, index int) paragraphInfo {
	para := doc.Paragraphs()[index]
	style := doc.StyleNameOf(para)
	return paragraphInfo{
		Index:     index,
		Text:      para.Text(),
		Style:     style,
		IsHeading: docx.IsHeadingStyle(style),
	}
}

// allTexts returns body paragraph texts followed by table-cell texts.
func allTexts(doc *docx.Document) []string {
	out := paragraphTexts(doc)
	for _, table := range doc.Tables() {
		for _, para := range table.AllParagraphs() {
			out = append(out, para.Text())
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
