// internal/generation/prompt.go
package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Visual prompts (image and living image) share one denylist; sound has a
// music-specific one. Matching is case-insensitive substring containment:
// no tokenization, no stemming. "a happy otter" passes; "harry potter"
// does not.
var visualBlockedTerms = []string{
	"disney", "marvel", "dc comics", "batman", "superman", "spiderman",
	"harry potter", "star wars", "lord of the rings", "pokemon", "nintendo",
	"mickey mouse", "pixar", "dreamworks", "studio ghibli",
	"taylor swift", "beyonce", "drake", "kanye", "eminem", "rihanna",
	"ariana grande", "justin bieber", "ed sheeran", "billie eilish",
	"trump", "biden", "obama", "celebrity", "famous person",
	"elon musk", "jeff bezos", "mark zuckerberg",
	"in the style of", "like picasso", "like van gogh", "like monet",
	"like banksy", "like warhol", "greg rutkowski", "artgerm",
	"nsfw", "nude", "naked", "explicit", "sexual", "porn",
}

var soundBlockedTerms = []string{
	"taylor swift", "beyonce", "drake", "kanye", "eminem", "rihanna",
	"ariana grande", "justin bieber", "ed sheeran", "billie eilish",
	"beatles", "elvis", "michael jackson", "madonna", "prince",
	"in the style of", "cover of", "remix of", "sounds like",
	"voice of", "celebrity voice", "famous singer",
	"copyrighted", "trademark", "licensed music",
	"nsfw", "explicit", "profanity",
}

func blockedTermsFor(kind Kind) []string {
	if kind == KindSound {
		return soundBlockedTerms
	}
	return visualBlockedTerms
}

// ValidatePrompt checks a prompt against the per-kind denylist and length
// bounds. The returned error text is safe to surface to the caller.
func ValidatePrompt(kind Kind, prompt string) error {
	lower := strings.ToLower(prompt)
	for _, term := range blockedTermsFor(kind) {
		if strings.Contains(lower, term) {
			return fmt.Errorf("Content policy violation: %q is not allowed", term)
		}
	}
	if len(prompt) < 3 {
		return errors.New("Prompt too short")
	}
	if len(prompt) > 500 {
		return errors.New("Prompt too long (max 500 characters)")
	}
	return nil
}
