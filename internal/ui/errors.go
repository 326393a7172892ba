package ui

import (
	"fmt"

	"github.com/five82/galley/internal/mealdb"
)

// errorDisplay is the user-facing text for a failed fetch.
type errorDisplay struct {
	Title    string
	Message  string
	Recovery string
}

const (
	errorTitle        = "Error"
	errorDefault      = "An unknown error occurred"
	networkError      = "Network error occurred while fetching data."
	networkRecovery   = "Check your internet connection and try again."
	decodingError     = "Error occurred while decoding the data."
	decodingRecovery  = "There was an issue decoding the data. Please try again later."
	retryRecovery     = "Press r to try again."
	categoryRecovery  = "Press c to pick another category."
	configRecovery    = "Check api_base_url in ~/.config/galley/config.toml."
	notFoundError     = "A recipe listed in this category could not be found."
	serverErrorFormat = "The recipe service responded with status %d."
)

// describeError maps a fetch error onto display copy.
func describeError(err error) errorDisplay {
	if err == nil {
		return errorDisplay{}
	}
	switch mealdb.KindOf(err) {
	case mealdb.KindTransport:
		return errorDisplay{Title: errorTitle, Message: networkError, Recovery: networkRecovery}
	case mealdb.KindDecoding, mealdb.KindMalformedID, mealdb.KindTooManyIngredients:
		return errorDisplay{Title: errorTitle, Message: decodingError, Recovery: decodingRecovery}
	case mealdb.KindServer:
		return errorDisplay{
			Title:    errorTitle,
			Message:  fmt.Sprintf(serverErrorFormat, mealdb.StatusCode(err)),
			Recovery: retryRecovery,
		}
	case mealdb.KindNotFound:
		return errorDisplay{Title: errorTitle, Message: notFoundError, Recovery: categoryRecovery}
	case mealdb.KindInvalidRequestTarget:
		return errorDisplay{Title: errorTitle, Message: err.Error(), Recovery: configRecovery}
	default:
		return errorDisplay{Title: errorTitle, Message: errorDefault, Recovery: retryRecovery}
	}
}
