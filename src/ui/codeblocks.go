package ui

import (
	"regexp"
	"strings"

	"github.com/Protocol-Lattice/lattice-tutor/src/prompts"
	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// CodeBlock is a fenced code region lifted out of Markdown.
type CodeBlock struct {
	Lang string
	Body string
}

// Lines counts the lines of the block body.
func (b CodeBlock) Lines() int {
	if b.Body == "" {
		return 0
	}
	return strings.Count(b.Body, "\n") + 1
}

// Fences open and close at the start of a line. The info string may carry
// attributes after the language, as in "```js title=a.js".
var fenceRe = regexp.MustCompile("(?ms)^ {0,3}```([^`\\n]*)\\n(.*?)\\n?^ {0,3}```[ \\t]*$")

// ExtractCodeBlocks returns the closed fenced blocks in s. A fence still
// open at the end of s is ignored, so a streaming buffer only yields blocks
// that are complete.
func ExtractCodeBlocks(s string) []CodeBlock {
	var out []CodeBlock
	for _, m := range fenceRe.FindAllStringSubmatch(s, -1) {
		var lang string
		if info := strings.Fields(m[1]); len(info) > 0 {
			lang = strings.ToLower(info[0])
		}
		out = append(out, CodeBlock{Lang: lang, Body: m[2]})
	}
	return out
}

// BlocksFor returns the code blocks a mode's output offers for copying.
// Generator output without fences is treated as one block of raw code.
func BlocksFor(mode tutor.Mode, text, language string) []CodeBlock {
	if mode == tutor.ModeQuiz {
		return nil
	}
	blocks := ExtractCodeBlocks(text)
	if len(blocks) == 0 && mode == tutor.ModeGenerate && strings.TrimSpace(text) != "" && !strings.Contains(text, "```") {
		blocks = []CodeBlock{{Lang: prompts.FenceLanguage(language), Body: strings.TrimRight(text, "\n")}}
	}
	return blocks
}

// Explainable reports whether code blocks in mode's output can be sent to
// the explainer.
func Explainable(mode tutor.Mode) bool {
	return mode == tutor.ModeLearn || mode == tutor.ModeGenerate || mode == tutor.ModeProjects
}
