package conjugate

// i-adjectives strip the final い and take fixed suffixes.
var iAdjectiveSuffixes = map[FormTag]string{
	FormNegative:     "くない",
	FormPast:         "かった",
	FormPastNegative: "くなかった",
	FormTe:           "くて",
	FormAdverbial:    "く",
	FormBa:           "ければ",
	FormTara:         "かったら",
}

// na-adjectives inflect through the copula; the stem is untouched, so these
// suffixes append to the full reading.
var naAdjectiveSuffixes = map[FormTag]string{
	FormDictionary:   "",
	FormNegative:     "じゃない",
	FormPast:         "だった",
	FormPastNegative: "じゃなかった",
	FormTe:           "で",
	FormAdverbial:    "に",
	FormBa:           "なら",
	FormTara:         "だったら",
}

func (w *word) iAdjectiveReading(tag FormTag) string {
	if tag == FormDictionary {
		return w.reading
	}
	return w.stem() + iAdjectiveSuffixes[tag]
}
