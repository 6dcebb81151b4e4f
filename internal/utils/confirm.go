package utils

import (
	"github.com/AlecAivazis/survey/v2"
)

// Confirm asks a yes/no question, defaulting to no.
func Confirm(msg string) (bool, error) {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: msg, Default: false}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
