package rangediff

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	removedBlockSign = `<span class="removed-block"> - </span>`
	addedBlockSign   = `<span class="added-block"> + </span>`
)

// blockStatus tells the line renderer which side of a change block a
// line belongs to.
type blockStatus int

const (
	blockRemoved blockStatus = iota
	blockAdded
)

// sink is the write-capable target the renderer emits into. It latches
// the first write error so rendering code stays free of error plumbing.
type sink struct {
	w   io.Writer
	err error
}

func (s *sink) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (s *sink) writef(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// DocumentParams carries the request parameters the rendered chrome
// needs: repository coordinates, the four range endpoints, and the host
// the page is served from (for the bookmarklet).
type DocumentParams struct {
	Owner   string
	Repo    string
	OldBase string
	OldHead string
	NewBase string
	NewHead string
	Host    string
}

// Renderer turns two compare file lists into one self-contained HTML
// document. It is a pure text transformation: all fallible work happens
// upstream, the renderer itself only fails if the sink does.
type Renderer struct {
	logger zerolog.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(logger zerolog.Logger) *Renderer {
	return &Renderer{
		logger: logger.With().Str("component", "RangeDiffRenderer").Logger(),
	}
}

// RenderDocument runs the full pipeline over the two file lists and
// writes one HTML document to w. It returns the number of files that
// actually differed; zero means the document carries the "No
// differences." placeholder instead of file sections.
func (r *Renderer) RenderDocument(w io.Writer, p DocumentParams, oldFiles, newFiles []File) (int, error) {
	s := &sink{w: w}

	// Sort by filename so the output matches GitHub's compare UI order.
	SortFiles(oldFiles)
	SortFiles(newFiles)

	r.writeHeader(s, p)

	changed := 0
	for _, pair := range AlignPairs(oldFiles, newFiles) {
		if r.renderFile(s, p, pair) {
			changed++
		}
	}

	if changed == 0 {
		s.write("<p>No differences.</p>\n")
	}

	s.write("\n</body>\n</html>\n")

	if s.err != nil {
		return 0, s.err
	}

	r.logger.Debug().
		Int("files_changed", changed).
		Int("old_files", len(oldFiles)).
		Int("new_files", len(newFiles)).
		Msg("Rendered range-diff document")

	return changed, nil
}

// renderFile diffs one file pair and emits its collapsible section.
// Files whose diffs are identical after marker normalization produce no
// output; the return value reports whether a section was written.
func (r *Renderer) renderFile(s *sink, p DocumentParams, pair FilePair) bool {
	oldPatch := NormalizeMarkers(pair.Filename, pair.OldPatch)
	newPatch := NormalizeMarkers(pair.Filename, pair.NewPatch)

	in := NewInterner()
	oldTokens := in.InternLines(oldPatch)
	newTokens := in.InternLines(newPatch)

	hunks := NewSequenceDiffer(in).Diff(oldTokens, newTokens)
	if !HasChanges(hunks) {
		return false
	}

	beforeHref := fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", p.Owner, p.Repo, p.OldHead, pair.Filename)
	afterHref := fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", p.Owner, p.Repo, p.NewHead, pair.Filename)

	s.writef(`<details open=""><summary>%s <a href="%s">before</a> <a href="%s">after</a></summary><pre class="diff-content">`,
		html.EscapeString(pair.Filename), html.EscapeString(beforeHref), html.EscapeString(afterHref))

	for i := 0; i < len(hunks); i++ {
		h := hunks[i]
		switch h.Kind {
		case HunkContext:
			for _, t := range h.Tokens {
				r.writeContextLine(s, in.Text(t))
			}
		case HunkRemoved:
			var added []Token
			if i+1 < len(hunks) && hunks[i+1].Kind == HunkAdded {
				added = hunks[i+1].Tokens
				i++
			}
			r.renderBlock(s, in, h.Tokens, added)
		case HunkAdded:
			r.renderBlock(s, in, nil, h.Tokens)
		}
	}

	s.write("</pre></details>\n")
	return true
}

// renderBlock emits one change block: the full removed side first, then
// the full added side, mirroring git range-diff's layout. Word-level
// highlighting is attempted only when the two sides have the same line
// count; an unequal block has no unambiguous pairing and renders as
// whole lines.
func (r *Renderer) renderBlock(s *sink, in *Interner, removed, added []Token) {
	removedLines := make([]string, len(removed))
	for i, t := range removed {
		removedLines[i] = in.Text(t)
	}
	addedLines := make([]string, len(added))
	for i, t := range added {
		addedLines[i] = in.Text(t)
	}

	oldSpans, newSpans := HighlightWords(removedLines, addedLines)

	for i, line := range removedLines {
		var spans []WordSpan
		if oldSpans != nil {
			spans = oldSpans[i]
		}
		r.writeBlockLine(s, blockRemoved, line, spans)
	}
	for i, line := range addedLines {
		var spans []WordSpan
		if newSpans != nil {
			spans = newSpans[i]
		}
		r.writeBlockLine(s, blockAdded, line, spans)
	}
}

// writeBlockLine emits one line of a change block with its sign column
// and, when the line itself adds or removes, a highlight class. Context
// lines dragged into a block only get the sign column, so readers are
// not distracted by churn that cancels out.
func (r *Renderer) writeBlockLine(s *sink, status blockStatus, line string, spans []WordSpan) {
	switch status {
	case blockRemoved:
		s.write(removedBlockSign)
	case blockAdded:
		s.write(addedBlockSign)
	}
	s.write(" ")

	class := lineClass(status, line)
	if class != "" {
		s.writef(`<span class="%s">`, class)
	}
	r.writeLineText(s, status, line, spans)
	if class != "" {
		s.write("</span>")
	}
	if !strings.HasSuffix(line, "\n") {
		s.write("\n")
	}
}

// lineClass implements the four-way classification of a patch line
// within a change block: the same `+` line reads as an addition inside
// the added block but as "removes the added line" inside the removed
// block, and a `-` line inside the removed block cancels out entirely.
func lineClass(status blockStatus, line string) string {
	isAdd := strings.HasPrefix(line, "+")
	isRemove := strings.HasPrefix(line, "-")
	if !isAdd && !isRemove {
		return ""
	}
	switch {
	case status == blockAdded && isAdd:
		return "added-line"
	case status == blockAdded && isRemove:
		return "removed-line"
	case status == blockRemoved && isAdd:
		return "removed-line"
	default:
		return ""
	}
}

// writeLineText escapes and writes the line body, wrapping changed
// word spans when word highlighting is active for the block.
func (r *Renderer) writeLineText(s *sink, status blockStatus, line string, spans []WordSpan) {
	if spans == nil {
		s.write(html.EscapeString(line))
		return
	}

	wordClass := "removed-word"
	if status == blockAdded {
		wordClass = "added-word"
	}
	for _, span := range spans {
		if span.Changed {
			s.writef(`<span class="%s">%s</span>`, wordClass, html.EscapeString(span.Text))
		} else {
			s.write(html.EscapeString(span.Text))
		}
	}
}

func (r *Renderer) writeContextLine(s *sink, text string) {
	s.write("    ")
	s.write(html.EscapeString(text))
	if !strings.HasSuffix(text, "\n") {
		s.write("\n")
	}
}

// writeHeader emits the document head, inline styles, the title line
// and the legend with the bookmarklet link.
func (r *Renderer) writeHeader(s *sink, p DocumentParams) {
	title := fmt.Sprintf("range-diff of %s...%s %s...%s", p.OldBase, p.OldHead, p.NewBase, p.NewHead)

	s.writef(`<!DOCTYPE html>
<html lang="en" translate="no">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
    body {
      font: 14px SFMono-Regular, Consolas, Liberation Mono, Menlo, monospace;
    }
    details {
      white-space: pre;
    }
    summary {
      font-weight: 800;
      overflow-wrap: break-word;
      white-space: normal;
    }
    .diff-content {
      overflow-x: auto;
    }
    .removed-block {
      background-color: rgb(255, 206, 203);
      white-space: pre;
    }
    .added-block {
      background-color: rgb(172, 238, 187);
      white-space: pre;
    }
    .removed-line {
      color: #DE0000;
    }
    .added-line {
      color: #2F6500;
    }
    .removed-word {
      background-color: rgb(255, 183, 178);
    }
    .added-word {
      background-color: rgb(140, 222, 160);
    }
    @media (prefers-color-scheme: dark) {
      body {
        background: #0C0C0C;
        color: #CCC;
      }
      a {
        color: #41a6ff;
      }
      .removed-block {
        background-color: rgba(248, 81, 73, 0.1);
      }
      .added-block {
        background-color: rgba(46, 160, 67, 0.15);
      }
      .removed-line {
        color: #F34848;
      }
      .added-line {
        color: #86D03C;
      }
      .removed-word {
        background-color: rgba(248, 81, 73, 0.35);
      }
      .added-word {
        background-color: rgba(46, 160, 67, 0.4);
      }
    }
    </style>
</head>
<body>
`, html.EscapeString(title))

	s.writef("<h3>range-diff of %s<wbr>...%s %s<wbr>...%s</h3>\n",
		html.EscapeString(p.OldBase), html.EscapeString(p.OldHead),
		html.EscapeString(p.NewBase), html.EscapeString(p.NewHead))

	s.writef(`<p>Bookmarklet: <a href="%s" title="Drag-and-drop me on the bookmarks bar, and use me on GitHub compare page.">range-diff</a> <span title="This javascript bookmark can be used to access this page with the right URL. To use it drag-on-drop the range-diff link to your bookmarks bar and click on it when you are on GitHub's compare page to use range-diff compare.">&#128712;</span> | %s&nbsp;<span class="added-line">+</span> adds a line | %s&nbsp;<span class="removed-line">-</span> removes a line | %s&nbsp;<span class="removed-line">+</span> removes the added line | %s&nbsp;- cancel the removal</p>
`, html.EscapeString(Bookmarklet(p.Host)), addedBlockSign, addedBlockSign, removedBlockSign, removedBlockSign)
}

// Bookmarklet builds the self-routing javascript bookmark for the given
// host. Only a localhost host gets plain http; anything else is assumed
// to be served over TLS.
func Bookmarklet(host string) string {
	protocol := "https"
	if strings.HasPrefix(host, "localhost:") {
		protocol = "http"
	}

	return fmt.Sprintf(`javascript:(() => {
    const githubUrlPattern = /^https:\/\/github\.com\/([^\/]+)\/([^\/]+)\/compare\/([^\/]+[.]{2}[^\/]+)$/;
    const match = window.location.href.match(githubUrlPattern);
    if (!match) {alert('Invalid GitHub Compare URL format.\nExpected: https://github.com/ORG_NAME/REPO_NAME/compare/BASESHA..HEADSHA'); return;}
    const [, orgName, repoName, basehead] = match; window.location = `+"`%s://%s/gh-range-diff/${orgName}/${repoName}/${basehead}`"+`;
})();`, protocol, host)
}
