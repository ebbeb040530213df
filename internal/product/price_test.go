package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1500", want: "1500"},
		{in: " 19.99 ", want: "19.99"},
		{in: "0", want: "0"},
		{in: "2.345", want: "2.35"},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "12,50", wantErr: true},
		{in: "9999999999.99", want: "9999999999.99"},
		{in: "9999999999.994", want: "9999999999.99"},
		{in: "9999999999.995", wantErr: true},
		{in: "99999999999999", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePrice(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestForm_Product(t *testing.T) {
	p, err := Form{Name: "  Headphones ", Price: "2500", ImageURL: "img"}.Product()
	require.NoError(t, err)
	assert.Equal(t, "Headphones", p.Name)
	assert.Equal(t, "2500", p.Price.String())
	assert.Equal(t, "img", p.ImageURL)

	_, err = Form{Name: " ", Price: "1"}.Product()
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = Form{Name: "x", Price: "ten"}.Product()
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = Form{Name: "x", Price: "99999999999999"}.Product()
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = Form{Name: strings.Repeat("n", MaxNameLen+1), Price: "1"}.Product()
	assert.ErrorIs(t, err, ErrNameTooLong)

	p, err = Form{Name: strings.Repeat("ñ", MaxNameLen), Price: "1"}.Product()
	require.NoError(t, err)
	assert.Equal(t, MaxNameLen, len([]rune(p.Name)))

	_, err = Form{Name: "x", Price: "1", ImageURL: strings.Repeat("u", MaxImageURLLen+1)}.Product()
	assert.ErrorIs(t, err, ErrImageURLTooLong)
}
