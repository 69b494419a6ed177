// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

import "strings"

func (n *Node) parseBlockScalar(ctx Context, start int) int {
	n.ctx = ctx
	src := ctx.src.Text
	offset := n.parseBlockHeader(start)
	offset = EndOfWhiteSpace(src, offset)
	offset = n.parseComment(offset)
	if ch := at(src, offset); ch != eof && ch != '\n' {
		n.Error = NewError(SyntaxError, n, "Block scalar header includes extra characters")
		offset = EndOfLine(src, offset)
	}
	return n.parseBlockValue(offset)
}

func (n *Node) parseBlockHeader(start int) int {
	src := n.text()
	offset := start + 1
	bi := ""
	for {
		ch := at(src, offset)
		switch ch {
		case '-':
			n.Chomping = Strip
		case '+':
			n.Chomping = Keep
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			bi += string(rune(ch))
		default:
			n.BlockIndent = 0
			for _, d := range bi {
				n.BlockIndent = n.BlockIndent*10 + int(d-'0')
				if n.BlockIndent > 1000 {
					break
				}
			}
			n.Header = Range{start, offset}
			return offset
		}
		offset++
	}
}

func (n *Node) parseBlockValue(start int) int {
	src := n.text()
	indent := n.ctx.Indent
	explicit := n.BlockIndent != 0
	bi := indent
	if explicit {
		bi = indent + n.BlockIndent - 1
	}
	offset, valueEnd := start, start
	minBlockIndent := 1
	for at(src, offset) == '\n' {
		offset++
		if AtDocumentBoundary(src, offset, 0) {
			break
		}
		end, ok := EndOfBlockIndent(src, bi, offset)
		if !ok {
			break
		}
		ch := at(src, end)
		lineIndent := end - (offset + indent)
		if n.BlockIndent == 0 {
			if ch != '\n' && ch != eof {
				if lineIndent < minBlockIndent {
					n.Error = NewError(SemanticError, n, "Block scalars with more-indented leading empty lines must use an explicit indentation indicator")
				}
				n.BlockIndent = lineIndent
			} else if lineIndent > minBlockIndent {
				minBlockIndent = lineIndent
			}
		} else if ch != eof && ch != '\n' && lineIndent < n.BlockIndent {
			if ch == '#' {
				break
			}
			if n.Error == nil {
				which := "first line"
				if explicit {
					which = "explicit indentation indicator"
				}
				n.Error = NewError(SemanticError, n, "Block scalars must not be less indented than their "+which)
			}
		}
		if ch == '\n' {
			offset = end
		} else {
			valueEnd = EndOfLine(src, end)
			offset = valueEnd
		}
	}
	if n.Chomping != Keep {
		offset = valueEnd
		if at(src, valueEnd) != eof {
			offset = valueEnd + 1
		}
	}
	n.ValueRange = Range{min(start+1, offset), offset}
	return offset
}

func (n *Node) blockValue() string {
	src := n.text()
	start, end := n.ValueRange.Start, n.ValueRange.End
	if end <= start {
		return ""
	}
	lastNewLine := -1
	for ch := at(src, end-1); ch == '\n' || ch == '\t' || ch == ' '; ch = at(src, end-1) {
		end--
		if end <= start {
			if n.Chomping == Keep {
				break
			}
			return ""
		}
		if ch == '\n' {
			lastNewLine = end
		}
	}
	keepStart := end + 1
	if lastNewLine != -1 {
		if n.Chomping == Keep {
			keepStart = lastNewLine
			end = n.ValueRange.End
		} else {
			end = lastNewLine
		}
	}
	bi := n.ctx.Indent + n.BlockIndent
	folded := n.Kind == BlockFoldedNode
	atStart := true
	prevMoreIndented := false
	sep := ""
	var b strings.Builder
	for i := start; i < end && i < len(src); i++ {
		for j := 0; j < bi && at(src, i) == ' '; j++ {
			i++
		}
		ch := at(src, i)
		if ch == eof {
			break
		}
		if ch == '\n' {
			if sep == "\n" {
				b.WriteByte('\n')
			} else {
				sep = "\n"
			}
			continue
		}
		lineEnd := EndOfLine(src, i)
		line := src[i:lineEnd]
		i = lineEnd
		if folded && (ch == ' ' || ch == '\t') && i < keepStart {
			if sep == " " {
				sep = "\n"
			} else if !prevMoreIndented && !atStart && sep == "\n" {
				sep = "\n\n"
			}
			b.WriteString(sep)
			b.WriteString(line)
			sep = ""
			if lineEnd < len(src) {
				sep = "\n"
			}
			prevMoreIndented = true
		} else {
			b.WriteString(sep)
			b.WriteString(line)
			if folded && i < keepStart {
				sep = " "
			} else {
				sep = "\n"
			}
			prevMoreIndented = false
		}
		if atStart && line != "" {
			atStart = false
		}
	}
	if n.Chomping == Strip {
		return b.String()
	}
	return b.String() + "\n"
}
