package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePrompt_LengthBounds(t *testing.T) {
	// Exactly 3 characters is the shortest accepted prompt.
	assert.NoError(t, ValidatePrompt(KindImage, "owl"))
	assert.Error(t, ValidatePrompt(KindImage, "ow"))
	assert.Error(t, ValidatePrompt(KindImage, ""))

	// Exactly 500 is fine, 501 is not.
	assert.NoError(t, ValidatePrompt(KindImage, strings.Repeat("a", 500)))

	err := ValidatePrompt(KindImage, strings.Repeat("a", 501))
	require.Error(t, err)
	assert.Equal(t, "Prompt too long (max 500 characters)", err.Error())
}

func TestValidatePrompt_SubstringMatching(t *testing.T) {
	// Substring containment, not word matching: "harry potter" is blocked
	// wherever it appears, but "otter" on its own never trips it.
	err := ValidatePrompt(KindImage, "harry potter wizard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "harry potter")

	assert.NoError(t, ValidatePrompt(KindImage, "a happy otter"))
}

func TestValidatePrompt_CaseInsensitive(t *testing.T) {
	assert.Error(t, ValidatePrompt(KindImage, "DISNEY castle at dusk"))
	assert.Error(t, ValidatePrompt(KindImage, "A painting In The Style Of someone"))
}

func TestValidatePrompt_TermsCheckedBeforeLength(t *testing.T) {
	// A too-short prompt containing a blocked term reports the policy
	// violation, not the length error.
	long := "nsfw " + strings.Repeat("a", 600)
	err := ValidatePrompt(KindImage, long)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Content policy violation")
}

func TestValidatePrompt_PerKindLists(t *testing.T) {
	// "disney" is only on the visual list.
	assert.Error(t, ValidatePrompt(KindImage, "disney soundtrack vibes"))
	assert.Error(t, ValidatePrompt(KindLiving, "disney soundtrack vibes"))
	assert.NoError(t, ValidatePrompt(KindSound, "disney soundtrack vibes"))

	// "beatles" is only on the sound list.
	assert.Error(t, ValidatePrompt(KindSound, "something by the beatles"))
	assert.NoError(t, ValidatePrompt(KindImage, "something by the beatles"))
}

func TestValidatePrompt_SoundSpecificTerms(t *testing.T) {
	assert.Error(t, ValidatePrompt(KindSound, "a cover of my favorite song"))
	assert.Error(t, ValidatePrompt(KindSound, "voice of a famous person"))
	assert.NoError(t, ValidatePrompt(KindSound, "gentle rain on a tin roof"))
}
