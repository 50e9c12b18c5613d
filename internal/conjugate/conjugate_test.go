package conjugate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymaeda/katsuyo/internal/kana"
)

func TestIchidanBasicForms(t *testing.T) {
	tests := []struct {
		tag         FormTag
		wantReading string
		wantScript  string
	}{
		{FormDictionary, "みる", "見る"},
		{FormNegative, "みない", "見ない"},
		{FormPast, "みた", "見た"},
		{FormTe, "みて", "見て"},
		{FormMasu, "みます", "見ます"},
		{FormPotential, "みられる", "見られる"},
		{FormImperative, "みろ", "見ろ"},
		{FormVolitional, "みよう", "見よう"},
		{FormBa, "みれば", "見れば"},
		{FormTara, "みたら", "見たら"},
		{FormProhibitive, "みるな", "見るな"},
	}
	for _, tt := range tests {
		form, err := Conjugate("見る", "みる", ClassIchidan, tt.tag)
		require.NoError(t, err, "tag %s", tt.tag)
		assert.Equal(t, tt.wantReading, form.Reading, "reading for %s", tt.tag)
		assert.Equal(t, tt.wantScript, form.Script, "script for %s", tt.tag)
	}
}

func TestGodanEuphonicBranches(t *testing.T) {
	tests := []struct {
		dict    string
		reading string
		wantTe  string
	}{
		{"書く", "かく", "かいて"},  // k-row: lengthened-i + plain te
		{"泳ぐ", "およぐ", "およいで"}, // g-row: lengthened-i + voiced te
		{"話す", "はなす", "はなして"}, // s-row
		{"待つ", "まつ", "まって"},  // t-row geminate
		{"死ぬ", "しぬ", "しんで"},  // n-row nasal
		{"遊ぶ", "あそぶ", "あそんで"}, // b-row nasal
		{"飲む", "のむ", "のんで"},  // m-row nasal
		{"取る", "とる", "とって"},  // r-row geminate
		{"買う", "かう", "かって"},  // bare-vowel row geminate
	}
	for _, tt := range tests {
		form, err := Conjugate(tt.dict, tt.reading, ClassGodan, FormTe)
		require.NoError(t, err)
		assert.Equal(t, tt.wantTe, form.Reading, "te-form of %s", tt.dict)
	}
}

func TestGodanLexicalException(t *testing.T) {
	form, err := Conjugate("行く", "いく", ClassGodan, FormTe)
	require.NoError(t, err)
	assert.Equal(t, "いって", form.Reading, "行く overrides the k-row rule")
	assert.Equal(t, "行って", form.Script)

	past, err := Conjugate("行く", "いく", ClassGodan, FormPast)
	require.NoError(t, err)
	assert.Equal(t, "いった", past.Reading)

	tara, err := Conjugate("行く", "いく", ClassGodan, FormTara)
	require.NoError(t, err)
	assert.Equal(t, "いったら", tara.Reading)

	// A regular k-row verb is unaffected.
	regular, err := Conjugate("書く", "かく", ClassGodan, FormTe)
	require.NoError(t, err)
	assert.Equal(t, "かいて", regular.Reading)
}

func TestGodanStemAlternants(t *testing.T) {
	tests := []struct {
		tag         FormTag
		wantReading string
		wantScript  string
	}{
		{FormNegative, "かかない", "書かない"},
		{FormPastNegative, "かかなかった", "書かなかった"},
		{FormMasu, "かきます", "書きます"},
		{FormMasuPastNegative, "かきませんでした", "書きませんでした"},
		{FormPotential, "かける", "書ける"},
		{FormPassive, "かかれる", "書かれる"},
		{FormCausative, "かかせる", "書かせる"},
		{FormImperative, "かけ", "書け"},
		{FormVolitional, "かこう", "書こう"},
		{FormBa, "かけば", "書けば"},
		{FormTara, "かいたら", "書いたら"},
		{FormTai, "かきたい", "書きたい"},
	}
	for _, tt := range tests {
		form, err := Conjugate("書く", "かく", ClassGodan, tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.wantReading, form.Reading, "reading for %s", tt.tag)
		assert.Equal(t, tt.wantScript, form.Script, "script for %s", tt.tag)
	}
}

func TestGodanUVerbNegative(t *testing.T) {
	// The bare-vowel row negates with わ, not あ.
	form, err := Conjugate("買う", "かう", ClassGodan, FormNegative)
	require.NoError(t, err)
	assert.Equal(t, "かわない", form.Reading)
	assert.Equal(t, "買わない", form.Script)
}

func TestSuruParadigm(t *testing.T) {
	tests := []struct {
		tag         FormTag
		wantReading string
	}{
		{FormDictionary, "する"},
		{FormNegative, "しない"},
		{FormPast, "した"},
		{FormTe, "して"},
		{FormMasu, "します"},
		{FormPotential, "できる"},
		{FormPassive, "される"},
		{FormImperative, "しろ"},
		{FormVolitional, "しよう"},
		{FormBa, "すれば"},
	}
	for _, tt := range tests {
		form, err := Conjugate("する", "する", ClassSuru, tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.wantReading, form.Reading)
	}
}

func TestCompoundSuru(t *testing.T) {
	form, err := Conjugate("勉強する", "べんきょうする", ClassSuru, FormMasu)
	require.NoError(t, err)
	assert.Equal(t, "べんきょうします", form.Reading)
	assert.Equal(t, "勉強します", form.Script)

	pot, err := Conjugate("勉強する", "べんきょうする", ClassSuru, FormPotential)
	require.NoError(t, err)
	assert.Equal(t, "べんきょうできる", pot.Reading)
	assert.Equal(t, "勉強できる", pot.Script)
}

func TestKuruParadigm(t *testing.T) {
	tests := []struct {
		tag         FormTag
		wantReading string
		wantScript  string
	}{
		{FormDictionary, "くる", "来る"},
		{FormNegative, "こない", "来ない"},
		{FormPast, "きた", "来た"},
		{FormTe, "きて", "来て"},
		{FormMasu, "きます", "来ます"},
		{FormPotential, "こられる", "来られる"},
		{FormImperative, "こい", "来い"},
		{FormBa, "くれば", "来れば"},
	}
	for _, tt := range tests {
		form, err := Conjugate("来る", "くる", ClassKuru, tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.wantReading, form.Reading)
		assert.Equal(t, tt.wantScript, form.Script)
	}
}

func TestIAdjective(t *testing.T) {
	tests := []struct {
		tag         FormTag
		wantReading string
		wantScript  string
	}{
		{FormDictionary, "たかい", "高い"},
		{FormNegative, "たかくない", "高くない"},
		{FormPast, "たかかった", "高かった"},
		{FormPastNegative, "たかくなかった", "高くなかった"},
		{FormTe, "たかくて", "高くて"},
		{FormAdverbial, "たかく", "高く"},
		{FormBa, "たかければ", "高ければ"},
		{FormTara, "たかかったら", "高かったら"},
	}
	for _, tt := range tests {
		form, err := Conjugate("高い", "たかい", ClassIAdjective, tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.wantReading, form.Reading)
		assert.Equal(t, tt.wantScript, form.Script)
	}
}

func TestNaAdjective(t *testing.T) {
	tests := []struct {
		tag         FormTag
		wantReading string
		wantScript  string
	}{
		{FormDictionary, "しずか", "静か"},
		{FormNegative, "しずかじゃない", "静かじゃない"},
		{FormPast, "しずかだった", "静かだった"},
		{FormTe, "しずかで", "静かで"},
		{FormAdverbial, "しずかに", "静かに"},
		{FormBa, "しずかなら", "静かなら"},
	}
	for _, tt := range tests {
		form, err := Conjugate("静か", "しずか", ClassNaAdjective, tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.wantReading, form.Reading)
		assert.Equal(t, tt.wantScript, form.Script)
	}
}

func TestGenerateAllCoversExactTagSet(t *testing.T) {
	cases := []struct {
		dict    string
		reading string
		class   Class
	}{
		{"見る", "みる", ClassIchidan},
		{"書く", "かく", ClassGodan},
		{"する", "する", ClassSuru},
		{"来る", "くる", ClassKuru},
		{"高い", "たかい", ClassIAdjective},
		{"静か", "しずか", ClassNaAdjective},
	}
	for _, c := range cases {
		table, err := GenerateAll(c.dict, c.reading, c.class)
		require.NoError(t, err)
		tags := TagsFor(c.class)
		require.Len(t, table, len(tags), "class %s", c.class)
		for _, tag := range tags {
			_, ok := table[tag]
			assert.True(t, ok, "class %s missing tag %s", c.class, tag)
		}
	}
}

func TestRomanizedDerivesFromReading(t *testing.T) {
	table, err := GenerateAll("行く", "いく", ClassGodan)
	require.NoError(t, err)
	for tag, form := range table {
		assert.Equal(t, kana.Romanize(form.Reading), form.Romanized, "tag %s", tag)
	}
}

func TestIchidanStemIsPrefixOfEveryForm(t *testing.T) {
	table, err := GenerateAll("食べる", "たべる", ClassIchidan)
	require.NoError(t, err)
	for tag, form := range table {
		assert.True(t, strings.HasPrefix(form.Reading, "たべ"), "tag %s reading %s", tag, form.Reading)
	}
}

func TestUnsupportedForm(t *testing.T) {
	_, err := Conjugate("高い", "たかい", ClassIAdjective, FormMasu)
	var ufe *UnsupportedFormError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, FormMasu, ufe.Tag)

	_, err = Conjugate("見る", "みる", ClassIchidan, FormTag("bogus"))
	require.ErrorAs(t, err, &ufe)
}

func TestInconsistentWordShape(t *testing.T) {
	var se *ShapeError

	// godan reading not ending in a u-row mora
	_, err := Conjugate("見ない", "みない", ClassGodan, FormTe)
	require.ErrorAs(t, err, &se)

	// ichidan reading not ending in る
	_, err = Conjugate("書く", "かく", ClassIchidan, FormTe)
	require.ErrorAs(t, err, &se)

	// reading with non-kana content
	_, err = Conjugate("見る", "見る", ClassIchidan, FormTe)
	require.ErrorAs(t, err, &se)

	// suru class without する
	_, err = GenerateAll("書く", "かく", ClassSuru)
	require.ErrorAs(t, err, &se)

	// unknown class
	_, err = GenerateAll("書く", "かく", Class("quadrigrade"))
	require.ErrorAs(t, err, &se)
}

func TestScriptFallbackWhenTailsDiverge(t *testing.T) {
	// Grafting only needs the trailing kana to agree, however messy the stem.
	form, err := Conjugate("蹴っ飛ばす", "けとばす", ClassGodan, FormTe)
	require.NoError(t, err)
	assert.Equal(t, "けとばして", form.Reading)
	assert.Equal(t, "蹴っ飛ばして", form.Script)

	odd, err := Conjugate("XYZ", "かく", ClassGodan, FormTe)
	require.NoError(t, err)
	assert.Equal(t, "かいて", odd.Script, "diverged script falls back to kana")
}

func TestInjectedExceptionTable(t *testing.T) {
	engine := New(WithTeExceptions(map[string]string{"問く": "って"}))
	form, err := engine.Conjugate("問く", "とく", ClassGodan, FormTe)
	require.NoError(t, err)
	assert.Equal(t, "とって", form.Reading)

	// The injected table fully replaces the default.
	iku, err := engine.Conjugate("行く", "いく", ClassGodan, FormTe)
	require.NoError(t, err)
	assert.Equal(t, "いいて", iku.Reading)
}
