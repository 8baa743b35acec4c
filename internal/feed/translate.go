package feed

import "strings"

// courseTypes is the controlled vocabulary translating the feed's short type
// codes. Unknown codes fall back to "Sonstige Lehrveranstaltung".
var courseTypes = map[string]string{
	"AG":   "Arbeitsgemeinschaft",
	"BS":   "Blockseminar",
	"E":    "Exkursion",
	"FP":   "feldarchäologisches Praktikum",
	"FPR":  "Forschungspraktikum",
	"FS":   "Forschungsseminar",
	"GK":   "Grundkurs",
	"K":    "Kolloquium",
	"OS":   "Oberseminar",
	"PROJ": "Projekt",
	"PUE":  "Praktikum/Übung",
	"S":    "Seminar",
	"TU":   "Tutorium",
	"Ü":    "Übung",
	"V":    "Vorlesung",
	"VS":   "Vertiefungsseminar",
	"SL":   "Sonstige Lehrveranstaltung",
	"PS":   "Proseminar",
	"HS":   "Hauptseminar",
	"R":    "Repetitorium",
	"KK":   "Klausurenkurs",
	"P":    "Praktikum",
	"PROP": "Propädeutikum",
	"GS":   "Geländeseminar",
	"LFP":  "Lehrforschungsprojekt",
	"PJS":  "Projektseminar",
	"Q":    "Quellenkundliche Übung",
	"KGP":  "Kleingruppenprojekt",
	"SA":   "Sprachpraktische Ausbildung",
	"AL":   "Action Learing",
	"SU":   "Seminaristischer Unterricht",
}

const defaultCourseType = "Sonstige Lehrveranstaltung"

// translateCourseType expands a short type code. Codes concatenated with "/"
// are translated individually and joined with " und ".
func translateCourseType(code string) string {
	parts := strings.Split(code, "/")
	translated := make([]string, 0, len(parts))
	for _, part := range parts {
		name, ok := courseTypes[part]
		if !ok {
			name = defaultCourseType
		}
		translated = append(translated, name)
	}
	return strings.Join(translated, " und ")
}

var repeatRhythms = map[string]string{
	"s1": "Einzeltermin",
	"w1": "Wöchentlich",
	"w2": "Alle zwei Wochen",
	"bd": "Blocktermin",
	"d1": "Täglich",
}

var repeatWeekdays = map[string]string{
	"0": "So",
	"1": "Mo",
	"2": "Di",
	"3": "Mi",
	"4": "Do",
	"5": "Fr",
	"6": "Sa",
}

// translateRepeat decodes a repetition code ("w1 2,4") into a human-readable
// rhythm plus weekday string ("Wöchentlich Di Do"). An unknown weekday digit
// resets the weekday part collected so far; later valid digits still count.
func translateRepeat(code string) string {
	fields := strings.SplitN(code, " ", 2)

	rhythm := repeatRhythms[fields[0]]

	var weekday string
	if len(fields) == 2 {
		for _, day := range strings.Split(fields[1], ",") {
			name, ok := repeatWeekdays[day]
			if !ok {
				weekday = ""
				continue
			}
			weekday += " " + name
		}
	}

	return rhythm + weekday
}

// padTime normalises a clock value to HH:MM.
func padTime(t string) string {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 || len(parts[0]) == 2 {
		return t
	}
	return "0" + t
}
