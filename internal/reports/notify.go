package reports

import (
	"errors"

	"qa-report/report/render"
)

// Notice is the user-facing outcome of a download.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

const (
	TitleSuccess   = "Success"
	TitleNoData    = "No Data"
	TitleDataError = "Data Error"
	TitleFileError = "File Error"
)

// Notify maps a download outcome to a notice. A nil err reports savedPath.
func Notify(err error, savedPath string) Notice {
	switch {
	case err == nil:
		return Notice{Title: TitleSuccess, Message: "Report successfully saved to:\n" + savedPath}
	case errors.Is(err, ErrNotFound):
		return Notice{Title: TitleNoData, Message: "No report data was found for the selected analysis."}
	case errors.Is(err, render.ErrRender):
		return Notice{Title: TitleFileError, Message: "Failed to generate the report file:\n" + err.Error()}
	default:
		return Notice{Title: TitleDataError, Message: "Could not retrieve the report data from the database:\n" + err.Error()}
	}
}
