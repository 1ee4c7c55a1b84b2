package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTrustedProvider(t *testing.T) {
	tests := []struct {
		domain string
		want   bool
	}{
		{"gmail.com", true},
		{"GMAIL.COM", true},
		{"yahoo.co.jp", true},
		{"mail.ru", true},
		{"uol.com.br", true},
		{"well-run-company.com", false},
		{"gmail.com.evil.net", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrustedProvider(tt.domain))
		})
	}
}

func TestIsDisposableDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   bool
	}{
		{"Blocklisted burner", "mailinator.com", true},
		{"Blocklisted burner uppercase", "YOPMAIL.COM", true},
		{"Guerrilla family", "guerrillamail.de", true},
		{"Unlisted clone caught by token", "my-temp-mail.xyz", true},
		{"Token embedded mid-domain", "freshspamcatcher.io", true},
		{"Ten minute variant", "new10minutebox.net", true},
		{"Legit consumer provider", "gmail.com", false},
		{"Plain business domain", "well-run-company.com", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDisposableDomain(tt.domain))
		})
	}
}
