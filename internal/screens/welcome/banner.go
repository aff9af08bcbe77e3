package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/levelup/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗██╗   ██╗███████╗██╗     ██╗   ██╗██████╗
 ██║     ██╔════╝██║   ██║██╔════╝██║     ██║   ██║██╔══██╗
 ██║     █████╗  ██║   ██║█████╗  ██║     ██║   ██║██████╔╝
 ██║     ██╔══╝  ╚██╗ ██╔╝██╔══╝  ██║     ██║   ██║██╔═══╝
 ███████╗███████╗ ╚████╔╝ ███████╗███████╗╚██████╔╝██║
 ╚══════╝╚══════╝  ╚═══╝  ╚══════╝╚══════╝ ╚═════╝ ╚═╝`

const bannerCompact = "L E V E L U P"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 60

// RenderBanner returns the title banner, or a compact one when width is
// too narrow for the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
