package tui

// ExportTarget is where converted images should go
type ExportTarget string

const (
	ExportNone  ExportTarget = ""
	ExportLocal ExportTarget = "local"
	ExportDrive ExportTarget = "drive"
)

// RunExportSelector asks where to save the converted images
func RunExportSelector(resultCount int) (ExportTarget, error) {
	title := "Save converted images?"
	if resultCount == 1 {
		title = "Save converted image?"
	}

	options := []MenuOption{
		{Label: "Save to Current Device (zip)", Value: string(ExportLocal)},
		{Label: "Save to Google Drive", Value: string(ExportDrive)},
		{Label: "Skip", Value: string(ExportNone)},
	}

	selected, err := RunMenu(title, options)
	if err != nil {
		return ExportNone, err
	}
	return ExportTarget(selected), nil
}
