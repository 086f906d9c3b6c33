package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Edit is a targeted byte-range replacement. Start and End are offsets into
// the original source, End exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping edits to source and returns the result.
// Offsets refer to the original source.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out bytes.Buffer
	out.Grow(len(source))

	pos := 0
	for _, e := range sorted {
		if e.Start < pos {
			return nil, fmt.Errorf("overlapping edit at offset %d", e.Start)
		}
		if e.End < e.Start || e.End > len(source) {
			return nil, fmt.Errorf("edit range [%d,%d) out of bounds", e.Start, e.End)
		}
		out.Write(source[pos:e.Start])
		out.Write(e.Replacement)
		pos = e.End
	}
	out.Write(source[pos:])

	return out.Bytes(), nil
}

// inlineLinkRe matches inline links and images; the destination (without an
// optional title) is the second submatch.
var inlineLinkRe = regexp.MustCompile(`!?\[[^\]]*\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

// RewriteLinks passes every inline link and image destination through resolve
// and replaces the ones that change. Destinations inside fenced code blocks
// are left alone. The body is returned unchanged when nothing resolves
// differently.
func RewriteLinks(body []byte, resolve func(string) string) []byte {
	fences := fencedBlockRanges(body)
	inFence := func(off int) bool {
		for _, r := range fences {
			if off >= r[0] && off < r[1] {
				return true
			}
		}
		return false
	}

	var edits []Edit
	for _, m := range inlineLinkRe.FindAllSubmatchIndex(body, -1) {
		start, end := m[2], m[3]
		if inFence(start) {
			continue
		}
		dest := string(body[start:end])
		if resolved := resolve(dest); resolved != dest {
			edits = append(edits, Edit{Start: start, End: end, Replacement: []byte(resolved)})
		}
	}
	if len(edits) == 0 {
		return body
	}

	out, err := ApplyEdits(body, edits)
	if err != nil {
		// Regex matches cannot overlap; treat a failure as no-op.
		return body
	}
	return out
}

// fencedBlockRanges returns the byte ranges of ``` and ~~~ fenced blocks.
func fencedBlockRanges(body []byte) [][2]int {
	var ranges [][2]int

	inCodeBlock := false
	activeFence := ""
	blockStart := 0

	off := 0
	for _, line := range strings.SplitAfter(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		for _, fence := range []string{"```", "~~~"} {
			if !strings.HasPrefix(trimmed, fence) {
				continue
			}
			wasIn := inCodeBlock
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, fence)
			if !wasIn && inCodeBlock {
				blockStart = off
			} else if wasIn && !inCodeBlock {
				ranges = append(ranges, [2]int{blockStart, off + len(line)})
			}
			break
		}
		off += len(line)
	}
	if inCodeBlock {
		ranges = append(ranges, [2]int{blockStart, len(body)})
	}
	return ranges
}
