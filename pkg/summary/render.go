package summary

import (
	"errors"

	"briefly/pkg/article"
)

// FailureMessage is the user-facing text for an error returned by Service.
// Article fetch failures carry their cause; everything else is generic.
func FailureMessage(err error) string {
	var fetchErr *article.FetchError
	if errors.As(err, &fetchErr) {
		return articleFailurePrefix + fetchErr.Error()
	}
	return requestFailure
}

func Render(text string, err error) string {
	if err != nil {
		return FailureMessage(err)
	}
	return text
}
