package conjugate

// ichidanSuffixes append directly to the stem; the stem never mutates.
var ichidanSuffixes = map[FormTag]string{
	FormNegative:         "ない",
	FormPast:             "た",
	FormPastNegative:     "なかった",
	FormTe:               "て",
	FormMasu:             "ます",
	FormMasuNegative:     "ません",
	FormMasuPast:         "ました",
	FormMasuPastNegative: "ませんでした",
	FormPotential:        "られる",
	FormPassive:          "られる",
	FormCausative:        "させる",
	FormImperative:       "ろ",
	FormVolitional:       "よう",
	FormBa:               "れば",
	FormTara:             "たら",
	FormTai:              "たい",
}

func (w *word) ichidanReading(tag FormTag) string {
	switch tag {
	case FormDictionary:
		return w.reading
	case FormProhibitive:
		return w.reading + "な"
	}
	return w.stem() + ichidanSuffixes[tag]
}
