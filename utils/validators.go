package utils

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"main/model"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("notifytime", ValidateNotifyTimeRule)
	v.RegisterValidation("recurrencetype", ValidateRecurrenceTypeRule)
}

// ValidateNotifyTimeRule accepts a HH:mm clock string.
func ValidateNotifyTimeRule(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

// ValidateRecurrenceTypeRule accepts one of the five recurrence type tags.
func ValidateRecurrenceTypeRule(fl validator.FieldLevel) bool {
	switch model.RecurrenceType(fl.Field().String()) {
	case model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceMonthly,
		model.RecurrenceYearly, model.RecurrenceCustom:
		return true
	}
	return false
}
