package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "a@x.com"},
		{name: "valid with subdomain", email: "user.name+tag@mail.example.co.uk"},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "ax.com", wantErr: true},
		{name: "no domain", email: "a@", wantErr: true},
		{name: "no tld", email: "a@x", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	// No strength policy: short passwords are accepted, only presence and the
	// bcrypt input limit are enforced.
	assert.NoError(t, ValidatePassword("pw1"))
	assert.NoError(t, ValidatePassword(strings.Repeat("x", 72)))

	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
}
