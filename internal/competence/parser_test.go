package competence

import (
	"fmt"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleSection(t *testing.T) {
	text := "#### KMK #### KMK I.1: 40% KMK II.2: 60% ####"

	result := Parse(text)
	require.Len(t, result, 2)
	assert.Equal(t, Fulfillment{CompID: "KMK_I_1", Fulfillment: 40}, result[0])
	assert.Equal(t, Fulfillment{CompID: "KMK_II_2", Fulfillment: 60}, result[1])
}

func TestParseEmbeddedInProse(t *testing.T) {
	text := "Die Veranstaltung findet wöchentlich statt.\n" +
		"## Kompetenzen ## LPO IV.3: 25% ##\n" +
		"Anmeldung über das Vorlesungsverzeichnis."

	result := Parse(text)
	require.Len(t, result, 1)
	assert.Equal(t, "LPO_IV_3", result[0].CompID)
	assert.Equal(t, 25, result[0].Fulfillment)
}

func TestParseAllFrameworkPrefixes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"KMK I.1", "KMK_I_1"},
		{"LPO II.2", "LPO_II_2"},
		{"DGfE III.3", "DGfE_III_3"},
		{"KMK IV.4", "KMK_IV_4"},
		{"KMK V.5", "KMK_V_5"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			text := fmt.Sprintf("## K ## %s: 10%% ##", tc.raw)
			result := Parse(text)
			require.Len(t, result, 1)
			assert.Equal(t, tc.want, result[0].CompID)
		})
	}
}

func TestParseNoSection(t *testing.T) {
	result := Parse("KMK I.1: 40% without any section markers")
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestParseSectionWithoutAnnotations(t *testing.T) {
	result := Parse("#### Hinweise #### keine Angaben ####")
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestParseEmptyText(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestParseIgnoresUnknownFramework(t *testing.T) {
	result := Parse("## K ## ABC I.1: 40% KMK I.2: 60% ##")
	require.Len(t, result, 1)
	assert.Equal(t, "KMK_I_2", result[0].CompID)
}

func TestParsePercentBounds(t *testing.T) {
	result := Parse("## K ## KMK I.1: 100% KMK I.2: 5% ##")
	require.Len(t, result, 2)
	assert.Equal(t, 100, result[0].Fulfillment)
	assert.Equal(t, 5, result[1].Fulfillment)
}

func TestParseManyAnnotations(t *testing.T) {
	body := ""
	for i := 1; i <= 9; i++ {
		body += fmt.Sprintf("KMK I.%d: %d%% ", i, i*10)
	}
	text := "#### KMK #### " + body + "####"

	result := Parse(text)
	require.Len(t, result, 9)
	for i, f := range result {
		assert.Equal(t, fmt.Sprintf("KMK_I_%d", i+1), f.CompID)
		assert.Equal(t, (i+1)*10, f.Fulfillment)
	}
}

func TestParseSynthesizedAnnotations(t *testing.T) {
	frameworks := []string{"KMK", "LPO", "DGfE"}
	numerals := []string{"I", "II", "III", "IV", "V"}

	property := func(seed int64) bool {
		r := rand.New(rand.NewSource(seed))
		n := 1 + r.Intn(24)

		body := ""
		expected := make([]Fulfillment, 0, n)
		for i := 0; i < n; i++ {
			code := fmt.Sprintf("%s %s.%d",
				frameworks[r.Intn(len(frameworks))],
				numerals[r.Intn(len(numerals))],
				r.Intn(10))
			percent := r.Intn(101)
			body += fmt.Sprintf("%s: %d%% ", code, percent)
			expected = append(expected, Fulfillment{CompID: NormalizeID(code), Fulfillment: percent})
		}

		result := Parse("#### Kompetenzen #### " + body + "####")
		if len(result) != n {
			return false
		}
		for i := range result {
			if result[i] != expected[i] {
				return false
			}
		}
		return true
	}

	require.NoError(t, quick.Check(property, nil))
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "KMK_I_1", NormalizeID("KMK I.1"))
	assert.Equal(t, "DGfE_III_2", NormalizeID("DGfE III.2"))
	assert.Equal(t, "plain", NormalizeID("plain"))
}
