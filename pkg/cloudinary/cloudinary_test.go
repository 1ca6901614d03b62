package cloudinary

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestPublicIDSlugifiesName(t *testing.T) {
	id := PublicID("My Essay (final).PNG")
	require.Regexp(t, `^my-essay--final-[0-9a-f]{8}$`, id)
}

func TestPublicIDFallsBackForEmptyName(t *testing.T) {
	require.Regexp(t, `^attachment-[0-9a-f]{8}$`, PublicID("  .png"))
	require.NotEqual(t, PublicID("a.png"), PublicID("a.png"))
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{CloudName: "demo"}, zerolog.Nop())
	require.Error(t, err)
}
