package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Doubleday", want: "doubleday"},
		{name: "accents", in: "Rebelión en la granja", want: "rebelion-en-la-granja"},
		{name: "enye", in: "España", want: "espana"},
		{name: "punctuation runs", in: "  Stephen   King!! ", want: "stephen-king"},
		{name: "already normalized", in: "stephen-king", want: "stephen-king"},
		{name: "digits", in: "1984 Edición 2", want: "1984-edicion-2"},
		{name: "empty", in: "", want: ""},
		{name: "only symbols", in: "¿?¡!", want: ""},
		{name: "sharp s", in: "Straße", want: "strasse"},
		{name: "nordic", in: "Søren Kierkegaard", want: "soren-kierkegaard"},
		{name: "ligature", in: "Ælfric", want: "aelfric"},
		{name: "oe ligature", in: "Cœur", want: "coeur"},
		{name: "stroke letters", in: "Łódź Đakovo", want: "lodz-dakovo"},
		{name: "cyrillic", in: "Война и мир", want: "voina-i-mir"},
		{name: "cyrillic country", in: "Россия", want: "rossiya"},
		{name: "greek", in: "Ελλάδα", want: "ellada"},
		{name: "cjk has no transliteration", in: "東京", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"Rebelión en la granja Doubleday", "Ficción -- Niños", "Ñandú", "a__b", "Straße", "Война и мир", "Ελλάδα"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestBook(t *testing.T) {
	assert.Equal(t, "rebelion-en-la-granja-doubleday", Book("Rebelión en la granja", "Doubleday"))
}
