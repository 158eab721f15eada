package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate runs struct-tag validation over any request DTO and flattens the
// result into plain messages the response envelope can carry.
func Validate(req any) []string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var messages []string
	for _, fe := range err.(validator.ValidationErrors) {
		messages = append(messages, fe.Field()+" failed on the '"+fe.Tag()+"' rule")
	}
	return messages
}
