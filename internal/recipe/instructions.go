package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

// stepSeparator is the line break MealDB uses inside strInstructions.
const stepSeparator = "\r\n"

var stepPrefix = regexp.MustCompile(`^[0-9]+\.\s*`)

// NormalizeInstructions splits a raw instruction block into numbered steps.
// Empty segments are dropped and any existing "N." prefix is replaced so that
// numbering always follows position.
func NormalizeInstructions(raw string) []string {
	if raw == "" {
		return nil
	}
	segments := strings.Split(raw, stepSeparator)
	steps := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		text := stepPrefix.ReplaceAllString(segment, "")
		steps = append(steps, strconv.Itoa(len(steps)+1)+". "+text)
	}
	return steps
}
