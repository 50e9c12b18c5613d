package conjugate

import "strings"

// godanRow holds the stem alternants for one consonant row. The dictionary
// form's final mora selects the row; a/i/e alternants build most forms, the o
// alternant builds the volitional, and te is the euphonic (onbin) te-series
// suffix.
type godanRow struct {
	a, i, e, o rune
	te         string
}

var godanRows = map[rune]godanRow{
	'う': {'わ', 'い', 'え', 'お', "って"}, // bare-vowel row negates with わ
	'く': {'か', 'き', 'け', 'こ', "いて"},
	'ぐ': {'が', 'ぎ', 'げ', 'ご', "いで"},
	'す': {'さ', 'し', 'せ', 'そ', "して"},
	'つ': {'た', 'ち', 'て', 'と', "って"},
	'ぬ': {'な', 'に', 'ね', 'の', "んで"},
	'ぶ': {'ば', 'び', 'べ', 'ぼ', "んで"},
	'む': {'ま', 'み', 'め', 'も', "んで"},
	'る': {'ら', 'り', 'れ', 'ろ', "って"},
}

// teSuffix resolves the te-series suffix, consulting the lexical exception
// table by dictionary form before the row's regular rule. 行く is the
// canonical exception: geminate plus plain て despite its k-row ending.
func (w *word) teSuffix(row godanRow) string {
	if override, ok := w.engine.teExceptions[w.dictForm]; ok {
		return override
	}
	return row.te
}

// taSuffix is the te-series suffix with て/で shifted to た/だ.
func taSuffix(te string) string {
	if strings.HasSuffix(te, "で") {
		return strings.TrimSuffix(te, "で") + "だ"
	}
	return strings.TrimSuffix(te, "て") + "た"
}

func (w *word) godanReading(tag FormTag) string {
	runes := []rune(w.reading)
	row := godanRows[runes[len(runes)-1]]
	stem := w.stem()

	switch tag {
	case FormDictionary:
		return w.reading
	case FormNegative:
		return stem + string(row.a) + "ない"
	case FormPast:
		return stem + taSuffix(w.teSuffix(row))
	case FormPastNegative:
		return stem + string(row.a) + "なかった"
	case FormTe:
		return stem + w.teSuffix(row)
	case FormMasu:
		return stem + string(row.i) + "ます"
	case FormMasuNegative:
		return stem + string(row.i) + "ません"
	case FormMasuPast:
		return stem + string(row.i) + "ました"
	case FormMasuPastNegative:
		return stem + string(row.i) + "ませんでした"
	case FormPotential:
		return stem + string(row.e) + "る"
	case FormPassive:
		return stem + string(row.a) + "れる"
	case FormCausative:
		return stem + string(row.a) + "せる"
	case FormImperative:
		return stem + string(row.e)
	case FormVolitional:
		return stem + string(row.o) + "う"
	case FormBa:
		return stem + string(row.e) + "ば"
	case FormTara:
		return stem + taSuffix(w.teSuffix(row)) + "ら"
	case FormProhibitive:
		return w.reading + "な"
	case FormTai:
		return stem + string(row.i) + "たい"
	}
	return w.reading
}
