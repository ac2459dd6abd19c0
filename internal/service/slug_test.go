package service_test

import (
	"testing"

	"github.com/pkordes/panda-market/internal/service"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Vintage Camera", "vintage-camera"},
		{"trims surrounding whitespace", "  lamp  ", "lamp"},
		{"collapses inner whitespace runs", "old \t wooden\nchair", "old-wooden-chair"},
		{"collapses hyphen runs", "blu--ray -- player", "blu-ray-player"},
		{"strips punctuation", "50% off!! (today)", "50-off-today"},
		{"keeps digits", "iphone 13 pro", "iphone-13-pro"},
		{"no leading or trailing hyphen", "--hello--", "hello"},
		{"non-latin characters drop out", "의자 chair", "chair"},
		{"entirely non-latin input becomes empty", "의자", ""},
		{"empty input", "", ""},
		{"only punctuation", "!!! ???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, service.Slugify(tt.in))
		})
	}
}
