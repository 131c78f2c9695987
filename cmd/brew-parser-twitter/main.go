package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bluby/brew-parser/internal/formula"
	"github.com/bluby/brew-parser/internal/notifier"
)

var (
	diffFile  = flag.String("diff-file", "", "Path to diff JSON file (or read from stdin)")
	dryRun    = flag.Bool("dry-run", false, "Print tweets without posting")
	maxTweets = flag.Int("max-tweets", 10, "Maximum number of tweets to post")
)

func main() {
	flag.Parse()

	// Read the diff from file or stdin
	var reader io.Reader
	if *diffFile != "" {
		f, err := os.Open(*diffFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening diff file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	// Only the added bucket is announced
	var result struct {
		Added []formula.Formula `json:"added"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if len(result.Added) == 0 {
		fmt.Println("No new formulas to tweet")
		os.Exit(0)
	}

	formulas := result.Added
	if len(formulas) > *maxTweets {
		formulas = formulas[:*maxTweets]
	}

	var n notifier.Notifier
	if *dryRun {
		n = notifier.NewDryRunNotifier()
	} else {
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		n = tw
	}

	if err := n.Notify(formulas); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting tweets: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Posted %d tweets\n", len(formulas))
}
