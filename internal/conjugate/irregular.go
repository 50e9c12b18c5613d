package conjugate

import (
	"strings"

	"github.com/ymaeda/katsuyo/internal/kana"
)

// The two irregular verbs get no generative rule: their paradigms are
// enumerated in full, which trades a little table for guaranteed
// correctness. Compound suru verbs (勉強する) keep their prefix and swap the
// trailing する.

// suruParadigm replaces the trailing する of the reading.
var suruParadigm = map[FormTag]string{
	FormDictionary:       "する",
	FormNegative:         "しない",
	FormPast:             "した",
	FormPastNegative:     "しなかった",
	FormTe:               "して",
	FormMasu:             "します",
	FormMasuNegative:     "しません",
	FormMasuPast:         "しました",
	FormMasuPastNegative: "しませんでした",
	FormPotential:        "できる",
	FormPassive:          "される",
	FormCausative:        "させる",
	FormImperative:       "しろ",
	FormVolitional:       "しよう",
	FormBa:               "すれば",
	FormTara:             "したら",
	FormProhibitive:      "するな",
	FormTai:              "したい",
}

// kuruParadigm replaces the trailing くる. The script tail is enumerated too
// because 来る mutates the kana under the kanji (きて is written 来て).
var kuruParadigm = map[FormTag]struct{ reading, script string }{
	FormDictionary:       {"くる", "来る"},
	FormNegative:         {"こない", "来ない"},
	FormPast:             {"きた", "来た"},
	FormPastNegative:     {"こなかった", "来なかった"},
	FormTe:               {"きて", "来て"},
	FormMasu:             {"きます", "来ます"},
	FormMasuNegative:     {"きません", "来ません"},
	FormMasuPast:         {"きました", "来ました"},
	FormMasuPastNegative: {"きませんでした", "来ませんでした"},
	FormPotential:        {"こられる", "来られる"},
	FormPassive:          {"こられる", "来られる"},
	FormCausative:        {"こさせる", "来させる"},
	FormImperative:       {"こい", "来い"},
	FormVolitional:       {"こよう", "来よう"},
	FormBa:               {"くれば", "来れば"},
	FormTara:             {"きたら", "来たら"},
	FormProhibitive:      {"くるな", "来るな"},
	FormTai:              {"きたい", "来たい"},
}

func (w *word) kuruForm(tag FormTag) Form {
	entry := kuruParadigm[tag]
	readingForm := w.stem() + entry.reading

	var script string
	switch {
	case strings.HasSuffix(w.dictForm, "来る"):
		script = strings.TrimSuffix(w.dictForm, "来る") + entry.script
	case strings.HasSuffix(w.dictForm, "くる"):
		script = strings.TrimSuffix(w.dictForm, "くる") + entry.reading
	default:
		script = readingForm
	}
	return Form{
		Script:    script,
		Reading:   readingForm,
		Romanized: kana.Romanize(readingForm),
	}
}
