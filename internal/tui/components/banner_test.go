package components

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBannerEmptyMessageRendersNothing(t *testing.T) {
	require.Empty(t, ErrorBanner("  ").View())
	require.Empty(t, NewBanner("", BannerInfo).View())
}

func TestBannerDismissHint(t *testing.T) {
	view := ErrorBanner("Session expired. Please login again.").View()
	require.Contains(t, view, "Session expired. Please login again.")
	require.Contains(t, view, DismissHint)

	view = SuccessBanner("Preferences saved successfully!").View()
	require.Contains(t, view, "Preferences saved successfully!")
	require.NotContains(t, view, DismissHint)
}
