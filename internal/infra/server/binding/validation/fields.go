package validation

import (
	"github.com/gin-gonic/gin/binding"

	"github.com/wikid/wikid/internal/domain/locale"

	"github.com/rs/zerolog/log"
	"gopkg.in/go-playground/validator.v9"
)

func SetUpValidators() {
	log.Info().Msg("Setting up custom validators")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation(LocaleNameValidatorTag, LocaleNameValidator)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up Locale name validator")
		}
	}
}

var LocaleNameValidatorTag = "localeName"
var LocaleNameValidator validator.Func = func(fl validator.FieldLevel) bool {
	localeName, ok := fl.Field().Interface().(locale.Name)
	if ok {
		if _, err := locale.NameFromString(string(localeName)); err != nil {
			fl.Field()
			return false
		}
	}
	return true
}
