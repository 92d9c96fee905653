package ui

import (
	"time"

	"github.com/atotto/clipboard"
)

// CopyConfirmation is how long the "copied" marker stays on a code block.
const CopyConfirmation = 2 * time.Second

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
