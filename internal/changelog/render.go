package changelog

import (
	"io"

	"github.com/mkchlog/mkchlog/internal/config"
)

// Render writes the changelog as markdown. Sections and subsections
// appear in configuration order, entries in classification order. An
// entry with a description becomes its own heading over a paragraph, an
// entry without one becomes a bullet. Sections with nothing to show are
// left out entirely, including their descriptions.
func Render(w io.Writer, sections *config.SectionTree, entries []*Entry) error {
	buckets := make(map[string][]*Entry)
	for _, e := range entries {
		id := e.Section.leaf()
		buckets[id] = append(buckets[id], e)
	}

	bw := &blockWriter{w: w}
	for _, id := range sections.TopLevel() {
		sec, ok := sections.Get(id)
		if !ok || !hasEntries(buckets, sec) {
			continue
		}
		bw.block("## " + sec.Title)
		if sec.Description != "" {
			bw.block(sec.Description)
		}
		writeEntries(bw, buckets[sec.ID], "### ")

		for _, subID := range sec.Subsections {
			if len(buckets[subID]) == 0 {
				continue
			}
			sub, ok := sections.Get(subID)
			if !ok {
				continue
			}
			bw.block("### " + sub.Title)
			if sub.Description != "" {
				bw.block(sub.Description)
			}
			writeEntries(bw, buckets[subID], "#### ")
		}
	}
	return bw.err
}

func hasEntries(buckets map[string][]*Entry, sec *config.Section) bool {
	if len(buckets[sec.ID]) > 0 {
		return true
	}
	for _, subID := range sec.Subsections {
		if len(buckets[subID]) > 0 {
			return true
		}
	}
	return false
}

func writeEntries(bw *blockWriter, entries []*Entry, heading string) {
	for _, e := range entries {
		if e.Description == "" {
			bw.block("* " + e.Title)
			continue
		}
		bw.block(heading + e.Title)
		bw.block(e.Description)
	}
}

// blockWriter emits markdown blocks separated by single blank lines. The
// first write error sticks and later calls become no-ops.
type blockWriter struct {
	w     io.Writer
	wrote bool
	err   error
}

func (b *blockWriter) block(text string) {
	if b.err != nil {
		return
	}
	if b.wrote {
		if _, err := io.WriteString(b.w, "\n"); err != nil {
			b.err = err
			return
		}
	}
	_, b.err = io.WriteString(b.w, text+"\n")
	b.wrote = true
}
