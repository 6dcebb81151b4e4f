package utils

import (
	"github.com/AlecAivazis/survey/v2"
)

// Prompt asks for a single required line of input.
func Prompt(msg, help string) (string, error) {
	var answer string
	q := &survey.Input{Message: msg, Help: help}
	if err := survey.AskOne(q, &answer, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return answer, nil
}
