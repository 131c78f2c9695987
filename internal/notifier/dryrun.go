package notifier

import (
	"fmt"

	"github.com/bluby/brew-parser/internal/formula"
)

// DryRunNotifier prints what would be tweeted without actually posting
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the tweets that would be posted
func (n *DryRunNotifier) Notify(formulas []formula.Formula) error {
	for i, f := range formulas {
		tweet := formatTweet(f)
		fmt.Printf("--- Tweet %d/%d ---\n", i+1, len(formulas))
		fmt.Println(tweet)
		fmt.Printf("\n(Length: %d characters)\n\n", len(tweet))
	}
	return nil
}
