package ui

// RenderRadarPanel wraps radar content with a styled border and a range
// readout title. The scope itself is drawn by the radar package.
func RenderRadarPanel(width, height int, rangeLabel, radarContent, legend string) string {
	title := StylePanelTitle.Render("PPI  " + rangeLabel)
	content := title + "\n" + radarContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}
