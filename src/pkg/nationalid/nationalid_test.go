package nationalid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
	}{
		{"valid", "1101700203450", nil},
		{"valid with separators", "1-1017-00203-45-0", nil},
		{"valid alternate", "1234567890121", nil},
		{"wrong check digit", "1101700203451", ErrInvalidChecksum},
		{"too short", "110170020345", ErrInvalidLength},
		{"too long", "11017002034500", ErrInvalidLength},
		{"empty", "", ErrInvalidLength},
		{"letters only", "abcdefghijklm", ErrInvalidLength},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.id)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "1101700203450", Normalize("1-1017-00203-45-0"))
	assert.Equal(t, "1234", Normalize(" 12 34 "))
	assert.Equal(t, "", Normalize("abc"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1-1017-00203-45-0", Format("1101700203450"))
	// anything that is not 13 digits passes through normalized
	assert.Equal(t, "12345", Format("123-45"))
}
