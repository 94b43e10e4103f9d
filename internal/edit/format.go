package edit

import "docbench/engine/internal/docx"

// CopyFormatting clones the character formatting of src for use on a new
// run. Tri-state toggles are carried whether set or not; font name, size and
// color only when present. Raw property extras stay behind, they may encode
// run-specific state that does not transfer.
func CopyFormatting(src docx.RunProps) docx.RunProps {
	dst := docx.RunProps{
		FontName: src.FontName,
		FontSize: src.FontSize,
		Color:    src.Color,
	}
	if src.Bold != nil {
		v := *src.Bold
		dst.Bold = &v
	}
	if src.Italic != nil {
		v := *src.Italic
		dst.Italic = &v
	}
	if src.Underline != nil {
		v := *src.Underline
		dst.Underline = &v
	}
	return dst
}
