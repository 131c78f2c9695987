package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/bluby/brew-parser/internal/formula"
)

const maxTweetLength = 280

// TwitterNotifier posts newly added formulas to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per formula
func (n *TwitterNotifier) Notify(formulas []formula.Formula) error {
	for i, f := range formulas {
		tweet := formatTweet(f)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for formula %s: %w", f.Name, err)
		}

		// Rate limiting: wait between tweets
		if i < len(formulas)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet formats a formula as a tweet
func formatTweet(f formula.Formula) string {
	tweet := "New Homebrew formula!\n\n"
	tweet += f.Name

	if v := f.StableVersion(); v != "" {
		tweet += fmt.Sprintf(" %s", v)
	}
	tweet += "\n"

	if f.Desc != "" {
		tweet += fmt.Sprintf("%s\n", f.Desc)
	}

	if f.Homepage != "" {
		tweet += fmt.Sprintf("\n%s\n", f.Homepage)
	}

	tweet += "\nInstall: brew install " + f.Name
	tweet += "\n#Homebrew #macOS"

	if len(tweet) > maxTweetLength {
		tweet = tweet[:maxTweetLength-3] + "..."
	}

	return tweet
}
