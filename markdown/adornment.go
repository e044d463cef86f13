package markdown

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/hnimtadd/escpos/printer/style"
)

// Adornments stick to glyphs the printer's code page can render.
const (
	bullet      = "∙ "
	taskDone    = "[■] "
	taskPending = "[ ] "
	rule        = "------------"
)

func (ls *listState) marker() string {
	if !ls.ordered {
		return bullet
	}
	m := fmt.Sprintf("%d. ", ls.index)
	ls.index++
	return m
}

func taskMarker(checked bool) string {
	if checked {
		return taskDone
	}
	return taskPending
}

// hasTaskCheckBox reports whether the item starts with a task marker,
// in which case the marker replaces the usual bullet.
func hasTaskCheckBox(item ast.Node) bool {
	block := item.FirstChild()
	if block == nil {
		return false
	}
	_, ok := block.FirstChild().(*east.TaskCheckBox)
	return ok
}

// adorn prints a structural marker in bold, then restores the context
// format.
func (in *Interpreter) adorn(text string) error {
	if err := in.receipt.SetDecoration(style.TextDecoration{Bold: true}); err != nil {
		return err
	}
	if err := in.receipt.AddText(text); err != nil {
		return err
	}
	return in.applyFormat()
}
