package layout

// paginate slices wrapped lines into fixed-capacity pages in original
// order. Chunks beyond maxPages are dropped; the size selector already
// guarantees the budget, so the truncation here is a defensive final
// enforcement, and any dropped lines are exactly the trailing overflow.
func paginate(lines []Line, linesPerPage, maxPages int) [][]Line {
	if linesPerPage < 1 {
		linesPerPage = 1
	}
	var chunks [][]Line
	for start := 0; start < len(lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, lines[start:end])
	}
	if maxPages > 0 && len(chunks) > maxPages {
		chunks = chunks[:maxPages]
	}
	return chunks
}
