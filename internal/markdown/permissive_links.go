package markdown

import "strings"

// extractPermissiveLinks finds inline, image and reference-definition
// destinations that contain whitespace, which CommonMark parsers reject.
// Fenced code blocks, indented code and inline code spans are skipped.
func extractPermissiveLinks(body []byte) []Link {
	inCodeBlock := false
	activeFence := ""

	out := make([]Link, 0)
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "```")
			continue
		}
		if strings.HasPrefix(trimmed, "~~~") {
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "~~~")
			continue
		}
		if inCodeBlock || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		clean := stripInlineCodeSpans(line)

		for i := 0; i+1 < len(clean); i++ {
			if clean[i] != ']' || clean[i+1] != '(' {
				continue
			}
			kind, target, ok := inlineTargetAt(clean, i)
			if ok && containsWhitespace(target) {
				out = append(out, Link{Kind: kind, Destination: target})
			}
		}
		if l, ok := referenceDefinitionTarget(clean); ok {
			out = append(out, l)
		}
	}

	return out
}

// inlineTargetAt extracts the destination of the link or image whose "]("
// separator starts at position i.
func inlineTargetAt(line string, i int) (LinkKind, string, bool) {
	kind := LinkKindInline
	for j := i - 1; j >= 0; j-- {
		if line[j] == '[' {
			if j > 0 && line[j-1] == '!' {
				kind = LinkKindImage
			}
			break
		}
		if j == 0 {
			return "", "", false
		}
	}

	end := strings.IndexByte(line[i+2:], ')')
	if end == -1 {
		return "", "", false
	}
	return kind, line[i+2 : i+2+end], true
}

func referenceDefinitionTarget(line string) (Link, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") {
		return Link{}, false
	}
	label, after, ok := strings.Cut(trimmed, "]:")
	if !ok {
		return Link{}, false
	}
	// Footnote definitions ([^1]: ...) are not reference link definitions.
	if strings.HasPrefix(strings.TrimSpace(label), "[^") {
		return Link{}, false
	}

	target := strings.TrimSpace(after)
	if before, _, ok := strings.Cut(target, " \""); ok {
		target = before
	} else if before, _, ok := strings.Cut(target, " '"); ok {
		target = before
	}
	target = strings.TrimSpace(target)
	if target == "" || !containsWhitespace(target) {
		return Link{}, false
	}
	return Link{Kind: LinkKindReferenceDefinition, Destination: target}, true
}

func containsWhitespace(s string) bool {
	return strings.ContainsAny(s, " \t")
}

func toggleFencedBlock(inCodeBlock bool, activeFence, fence string) (bool, string) {
	if !inCodeBlock {
		return true, fence
	}
	if activeFence == fence {
		return false, ""
	}
	return inCodeBlock, activeFence
}

// stripInlineCodeSpans blanks out `code` spans so their contents are not
// mistaken for link syntax. Delimiters and span bytes are replaced with
// spaces to keep byte offsets stable.
func stripInlineCodeSpans(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}

	out := []byte(s)
	for i := 0; i < len(out); {
		if out[i] != '`' {
			i++
			continue
		}
		run := 1
		for i+run < len(out) && out[i+run] == '`' {
			run++
		}
		marker := strings.Repeat("`", run)
		closeRel := strings.Index(s[i+run:], marker)
		if closeRel == -1 {
			// Unclosed code span, leave the rest of the line alone.
			break
		}
		for j := i; j < i+run+closeRel+run; j++ {
			out[j] = ' '
		}
		i += run + closeRel + run
	}
	return string(out)
}
