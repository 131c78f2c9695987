package notifier

import (
	"github.com/bluby/brew-parser/internal/formula"
)

// Notifier defines the interface for announcing newly added formulas
type Notifier interface {
	// Notify posts notifications for the given formulas
	Notify(formulas []formula.Formula) error
}
