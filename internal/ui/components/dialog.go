package components

const dialogWidth = 44

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	body := titleStyle.Render(SanitizeOneLine(title)) + "\n\n" +
		labelStyle.Render(SanitizeText(message)) + "\n" +
		labelStyle.Render("y: confirm | n: cancel")
	return rounded(colorBorder, 1).Width(dialogWidth).Render(body)
}
