package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// Boilerplate the bulletins append to every case. Stripped verbatim.
var boilerplatePhrases = []string{
	"Our greatest resource in solving homicide cases is information from witnesses, family, friends and the community.",
	"If you have any information regarding this case, please contact the Boston Police Department",
	"Anyone with information is asked to contact",
}

var (
	phonePattern     = regexp.MustCompile(`\d{3}-\d{3}-\d{4}`)
	tollFreePattern  = regexp.MustCompile(`1-800-\d{3}-\d{4}`)
	leadingPunct     = regexp.MustCompile(`^[,.\-\s]+`)
	addressPrefix    = regexp.MustCompile(`(?i)^\d+\s+[A-Za-z\s]+?(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Circle|Way|Place|Pl)[^.]*?\.\s*`)
	streetFragment   = regexp.MustCompile(`(?i)^(?:AKA\s+[^.]*?\s+)?\d*\s*[A-Za-z\s]*?(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Circle|Way|Place|Pl|Hill)\s*(?:&\s*[A-Za-z\s]*?(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Circle|Way|Place|Pl))?\s*`)
	identifiedAged   = regexp.MustCompile(`(?i)The victim was later identified as [^,]+,\s*(\d+),?\s*and was pronounced deceased\.?\s*`)
	identifiedNoAge  = regexp.MustCompile(`(?i)The victim was later identified as [^,]+,?\s*and was pronounced deceased\.?\s*`)
	identifiedTrail  = regexp.MustCompile(`(?i)The victim was later identified as [^,]+,\s*\d+\.?\s*`)
	mannerOfDeath    = regexp.MustCompile(`(?i)The manner of death of [^.]+ was determined to be (?:a )?homicide by the Office of the Chief Medical Examiner\.?\s*`)
	rebuildAge       = regexp.MustCompile(`(?i)(\d+)[\s-]year[\s-]old`)
	rebuildShot      = regexp.MustCompile(`(?i)shot`)
	rebuildStabbed   = regexp.MustCompile(`(?i)stabbed`)
	rebuildBodyFound = regexp.MustCompile(`(?i)found.*body`)
	rebuildTime      = regexp.MustCompile(`(?i)(?:at\s+)?(?:approximately\s+)?(\d{1,2}:\d{2}(?:\s*[ap]m)?|\d{1,2}\s*[ap]m)`)
)

// redundantPhrases rewrites recurring narrative openings into shorter forms
var redundantPhrases = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)^(?:The\s+)?victim\s+`), ""},
	{regexp.MustCompile(`(?i)^(?:A|An)\s+(\d+)[\s-]year[\s-]old\s+(?:man|woman|male|female)\s+`), "A ${1}-year-old "},
	{regexp.MustCompile(`(?i)^(?:Police|Officers)\s+(?:found|discovered)\s+(?:the\s+body\s+of\s+)?`), "Police found "},
	{regexp.MustCompile(`(?i)^(?:The\s+)?body\s+of\s+(?:a|an)\s+`), "The body of a "},
}

// DescriptionNormalizer condenses a case narrative: boilerplate and contact
// phone numbers go, prefix material already captured by the other extractors
// goes, two canned bulletin sentences are rewritten, and a too-short result
// is rebuilt from whatever the original text still yields. Output is capped.
type DescriptionNormalizer struct {
	respondedPrefix *regexp.Regexp
	datePrefix      *regexp.Regexp
	minLen          int
	maxLen          int
}

// NewDescriptionNormalizer creates a normalizer for bulletins of the given
// target year. Results shorter than minLen are rebuilt; results longer than
// maxLen are truncated with an ellipsis.
func NewDescriptionNormalizer(year, minLen, maxLen int) *DescriptionNormalizer {
	return &DescriptionNormalizer{
		respondedPrefix: regexp.MustCompile(fmt.Sprintf(
			`(?i)^[^.]*?(?:On\s+(?:%s)\s+\d{1,2},?\s*%d,?\s*)?(?:the\s+)?Boston Police Department responded to[^.]*\.\s*`,
			MonthNames, year)),
		datePrefix: regexp.MustCompile(fmt.Sprintf(
			`(?i)^(?:On\s+)?(?:%s)\s+\d{1,2},?\s*%d[^.]*?\.\s*`, MonthNames, year)),
		minLen: minLen,
		maxLen: maxLen,
	}
}

// Normalize returns the condensed description for a block of case text.
// victimName, when known, anchors removal of the name prefix the bulletins
// repeat at the start of each narrative.
func (n *DescriptionNormalizer) Normalize(text, victimName string) string {
	original := text

	desc := collapseWhitespace(text)

	for _, phrase := range boilerplatePhrases {
		desc = strings.ReplaceAll(desc, phrase, "")
	}
	desc = phonePattern.ReplaceAllString(desc, "")
	desc = tollFreePattern.ReplaceAllString(desc, "")

	desc = n.respondedPrefix.ReplaceAllString(desc, "")
	if victimName != "" && victimName != model.UnknownName {
		namePrefix := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(victimName) + `[^.]*?\.\s*`)
		desc = namePrefix.ReplaceAllString(desc, "")
	}
	desc = addressPrefix.ReplaceAllString(desc, "")
	desc = n.datePrefix.ReplaceAllString(desc, "")
	desc = streetFragment.ReplaceAllString(desc, "")

	desc = identifiedAged.ReplaceAllString(desc, "The ${1}-year-old was pronounced deceased. ")
	desc = identifiedNoAge.ReplaceAllString(desc, "The victim was pronounced deceased. ")
	desc = identifiedTrail.ReplaceAllString(desc, "")
	desc = mannerOfDeath.ReplaceAllString(desc, "The death was ruled a homicide. ")

	for _, rp := range redundantPhrases {
		desc = rp.pattern.ReplaceAllString(desc, rp.replacement)
	}

	desc = strings.TrimSpace(collapseWhitespace(desc))
	desc = leadingPunct.ReplaceAllString(desc, "")
	desc = capitalizeFirst(desc)

	if len(desc) < n.minLen {
		desc = n.rebuild(original, desc)
	}

	if len(desc) > n.maxLen {
		desc = desc[:n.maxLen] + "..."
	}

	return strings.TrimSpace(desc)
}

// rebuild reconstructs a minimal sentence from details still extractable
// from the original text when cleanup has eaten too much of the narrative
func (n *DescriptionNormalizer) rebuild(original, cleaned string) string {
	var details []string
	if m := rebuildAge.FindStringSubmatch(original); m != nil {
		details = append(details, m[1]+" years old")
	}

	var circumstances []string
	if rebuildShot.MatchString(original) {
		circumstances = append(circumstances, "shot")
	}
	if rebuildStabbed.MatchString(original) {
		circumstances = append(circumstances, "stabbed")
	}
	if rebuildBodyFound.MatchString(original) {
		circumstances = append(circumstances, "body discovered")
	}

	if m := rebuildTime.FindStringSubmatch(original); m != nil {
		details = append(details, "at "+m[1])
	}

	if len(circumstances) > 0 {
		desc := "Victim was " + strings.Join(circumstances, " and ")
		if len(details) > 0 {
			desc += " (" + strings.Join(details, ", ") + ")"
		}
		return desc + ". The death was ruled a homicide."
	}
	if len(cleaned) < 20 {
		return "Victim of homicide. Investigation ongoing."
	}
	return cleaned
}

// capitalizeFirst uppercases a leading lowercase letter
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return s
}
