// Package competence extracts structured competence-fulfillment annotations
// from free-text organizational notes. Lecturers declare fulfillments in a
// hash-delimited section, e.g.
//
//	#### KMK #### KMK I.1: 40% KMK II.2: 60% ####
package competence

import (
	"regexp"
	"strconv"
	"strings"
)

// Fulfillment is one parsed competence annotation. The id is normalised by
// replacing spaces and dots with underscores ("KMK I.1" → "KMK_I_1").
type Fulfillment struct {
	CompID      string
	Fulfillment int
}

var (
	// sectionPattern matches a heading delimited by repeated marker
	// characters followed by the annotated body.
	sectionPattern = regexp.MustCompile(`(#+ \w* #+)(.[^#]+)(#+)`)
	// annotationPattern matches a single "<CODE> <ROMAN>.<N>: <PCT>%" entry.
	annotationPattern = regexp.MustCompile(`((?:KMK|LPO|DGfE) [IV]+\.\d): (\d{1,3})%`)

	idSeparators = strings.NewReplacer(" ", "_", ".", "_")
)

// Parse scans text for annotation sections and returns every fulfillment
// found inside them. It returns an empty slice, never an error, when no
// section or no annotation matches.
func Parse(text string) []Fulfillment {
	result := []Fulfillment{}
	for _, section := range sectionPattern.FindAllStringSubmatch(text, -1) {
		for _, annotation := range annotationPattern.FindAllStringSubmatch(section[2], -1) {
			percent, err := strconv.Atoi(annotation[2])
			if err != nil {
				continue
			}
			result = append(result, Fulfillment{
				CompID:      NormalizeID(annotation[1]),
				Fulfillment: percent,
			})
		}
	}
	return result
}

// NormalizeID rewrites a raw competence id into its canonical stored form.
func NormalizeID(id string) string {
	return idSeparators.Replace(id)
}
